// Package main is the entry point for the milkledger API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"milkledger/internal/domain/auth"
	"milkledger/internal/domain/farm"
	"milkledger/internal/domain/ledger"
	"milkledger/internal/domain/reports"
	"milkledger/internal/domain/stock"
	v1 "milkledger/internal/infrastructure/http/v1"
	"milkledger/internal/infrastructure/storage/postgres"
	"milkledger/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting milkledger server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)
	ledgerRepo := postgres.NewLedgerRepo(txManager)
	farmRepo := postgres.NewFarmRepo(txManager)

	// --- Services ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(auth.Config{
		Operator:     getEnv("OPERATOR_NAME", "admin"),
		PasswordHash: mustEnv("OPERATOR_PASSWORD_HASH"),
	}, jwtService)

	ledgerService := ledger.NewService(ledgerRepo, txManager)
	farmService := farm.NewService(farmRepo)
	stockService := stock.NewService(farmRepo, ledgerRepo)
	reportsService := reports.NewService(ledgerRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		AuthService:    authService,
		LedgerService:  ledgerService,
		FarmService:    farmService,
		StockService:   stockService,
		ReportsService: reportsService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	postgres.LogPoolStats(ctx, pool)

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
