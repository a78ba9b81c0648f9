package routes

import (
	"github.com/bigy003/Compta-sub000/internal/auth"
	"github.com/bigy003/Compta-sub000/internal/handlers"
	"github.com/bigy003/Compta-sub000/internal/middleware"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, useCases *usecases.UseCases, jwtService *auth.JWTService) {
	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(useCases.User, jwtService)
	authGroup := router.Group("/api/v1")
	{
		authGroup.POST("/auth/register", authHandler.Register)
		authGroup.POST("/auth/login", authHandler.Login)
		authGroup.POST("/auth/refresh", middleware.AuthMiddleware(jwtService), authHandler.RefreshToken)
		authGroup.POST("/auth/change-password", middleware.AuthMiddleware(jwtService), authHandler.ChangePassword)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(jwtService))
	{
		accountHandler := handlers.NewAccountHandler(useCases.Account)
		balanceHandler := handlers.NewBalanceHandler(useCases.Balance)
		discrepancyHandler := handlers.NewDiscrepancyHandler(useCases.Discrepancy)
		matchingHandler := handlers.NewMatchingHandler(useCases.Matching)
		reconciliationHandler := handlers.NewReconciliationHandler(useCases.Reconciliation)
		ruleHandler := handlers.NewRuleHandler(useCases.Rule)

		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.CreateAccount)
			accounts.GET("", accountHandler.ListAccounts)
			accounts.GET("/:id/balance", balanceHandler.GetBankBalance)
			accounts.GET("/:id/transactions", accountHandler.ListTransactions)
			accounts.GET("/:id/discrepancies", discrepancyHandler.GetDiscrepancies)
			accounts.POST("/:id/reconcile", reconciliationHandler.ReconcileAccount)
		}

		v1.GET("/balance/accounting", balanceHandler.GetAccountingBalance)

		v1.POST("/discrepancies/:id/resolve", discrepancyHandler.ResolveDiscrepancy)

		transactions := v1.Group("/transactions")
		{
			transactions.GET("/:id/candidates/entries", matchingHandler.GetEntryCandidates)
			transactions.GET("/:id/candidates/invoices", matchingHandler.GetInvoiceCandidates)
			transactions.POST("/:id/unlink", reconciliationHandler.UnlinkTransaction)
		}

		reconciliations := v1.Group("/reconciliations")
		{
			reconciliations.POST("", reconciliationHandler.CreateReconciliation)
			reconciliations.GET("", reconciliationHandler.ListReconciliations)
			reconciliations.POST("/:id/validate", reconciliationHandler.ValidateReconciliation)
			reconciliations.POST("/:id/reject", reconciliationHandler.RejectReconciliation)
		}

		rules := v1.Group("/rules")
		{
			rules.POST("", ruleHandler.CreateRule)
			rules.GET("", ruleHandler.ListRules)
			rules.PUT("/:id", ruleHandler.UpdateRule)
			rules.DELETE("/:id", ruleHandler.DeleteRule)
		}
	}
}
