package main

import (
	"log"

	"github.com/Nhlapo2003/wings-Application/config"
	"github.com/Nhlapo2003/wings-Application/internal/delivery"
	"github.com/Nhlapo2003/wings-Application/internal/repository"
	"github.com/Nhlapo2003/wings-Application/internal/usecase"
	"github.com/Nhlapo2003/wings-Application/pkg/db"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := config.NewLogger("info")
	cfg := config.LoadConfig(logger)
	logger = config.NewLogger(cfg.LogLevel)

	logger.Info("Starting Wings Cafe backend...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// Repository layer
	productRepo := repository.NewPostgresProductRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	saleRepo := repository.NewPostgresSaleRepository(database, logger)
	logger.Info("Repositories initialized.")

	// Usecase layer
	productUseCase := usecase.NewProductUseCase(productRepo, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, logger)
	saleUseCase := usecase.NewSaleUseCase(saleRepo, productRepo, logger)
	logger.Info("Use cases initialized.")

	productHandler := delivery.NewProductHandler(productUseCase, logger)
	userHandler := delivery.NewUserHandler(userUseCase, logger)
	saleHandler := delivery.NewSaleHandler(saleUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))

	productHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	saleHandler.RegisterRoutes(router)
	logger.Info("API routes registered.")

	logger.Infof("Starting backend server on port %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
