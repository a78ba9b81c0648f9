package handlers

import (
	"net/http"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

type BalanceHandler struct {
	balanceUseCase usecases.BalanceUseCase
}

func NewBalanceHandler(balanceUseCase usecases.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{balanceUseCase: balanceUseCase}
}

// GetBankBalance godoc
// @Summary Get bank balance
// @Description Replay the account's transactions over its opening balance up to the as_of date
// @Tags balances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bank account ID"
// @Param as_of query string false "As-of date (RFC3339 or YYYY-MM-DD, defaults to now)"
// @Success 200 {object} dto.APIResponse{data=dto.BankBalanceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts/{id}/balance [get]
func (h *BalanceHandler) GetBankBalance(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}
	asOf, ok := asOfQuery(c)
	if !ok {
		return
	}

	balance, err := h.balanceUseCase.BankBalance(cid, accountID, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute bank balance")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Bank balance computed successfully",
		Data: dto.BankBalanceResponse{
			BankAccountID: accountID,
			AsOf:          asOf,
			Balance:       balance,
		},
	})
}

// GetAccountingBalance godoc
// @Summary Get accounting balance
// @Description Compute the balance of the company's bank control account from its ledger entries
// @Tags balances
// @Produce json
// @Security BearerAuth
// @Param as_of query string false "As-of date (RFC3339 or YYYY-MM-DD, defaults to now)"
// @Success 200 {object} dto.APIResponse{data=dto.AccountingBalanceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 412 {object} dto.ErrorResponse "Bank control account not configured"
// @Failure 500 {object} dto.ErrorResponse
// @Router /balance/accounting [get]
func (h *BalanceHandler) GetAccountingBalance(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	asOf, ok := asOfQuery(c)
	if !ok {
		return
	}

	balance, err := h.balanceUseCase.AccountingBalance(cid, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute accounting balance")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Accounting balance computed successfully",
		Data: dto.AccountingBalanceResponse{
			AsOf:    asOf,
			Balance: balance,
		},
	})
}
