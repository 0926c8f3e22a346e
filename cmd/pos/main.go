package main

import (
	"time"

	"github.com/Nhlapo2003/wings-Application/config"
	serverdelivery "github.com/Nhlapo2003/wings-Application/internal/delivery"
	"github.com/Nhlapo2003/wings-Application/internal/pos/client"
	posdelivery "github.com/Nhlapo2003/wings-Application/internal/pos/delivery"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := config.NewLogger("info")
	cfg := config.LoadConfig(logger)
	logger = config.NewLogger(cfg.LogLevel)

	logger.Info("Starting Wings Cafe POS terminal...")
	logger.Infof("Backend target: %s", cfg.BackendURL)

	backend := client.NewHTTPBackend(cfg.BackendURL, time.Duration(cfg.RequestTimeout)*time.Second, logger)
	sessions := posdelivery.NewSessionManager(backend, logger)

	terminalHandler := posdelivery.NewTerminalHandler(sessions, backend, logger)
	proxyHandler := posdelivery.NewProxyHandler(backend, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(serverdelivery.RequestLogger(logger))

	terminalHandler.RegisterRoutes(router)
	proxyHandler.RegisterRoutes(router)
	logger.Info("Terminal routes registered.")

	logger.Infof("Starting POS terminal on port %s", cfg.PosPort)
	if err := router.Run(cfg.PosPort); err != nil {
		logger.Fatalf("Failed to start POS terminal: %v", err)
	}
}
