package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bigy003/Compta-sub000/internal/auth"
	"github.com/bigy003/Compta-sub000/internal/config"
	"github.com/bigy003/Compta-sub000/internal/database"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/bigy003/Compta-sub000/internal/routes"
	"github.com/bigy003/Compta-sub000/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.LoadConfig()
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Initialize()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	repos := repositories.NewRepositories(db)

	useCases := usecases.NewUseCases(repos)

	jwtService := auth.NewJWTService(cfg.App.JWTSecret, "reconciliation-engine")

	router := gin.Default()

	routes.SetupRoutes(router, useCases, jwtService)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s:%s in %s mode",
		cfg.Server.Host, cfg.Server.Port, cfg.App.Environment)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server:", err)
	}
}
