package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yuehongzhang001/ark/internal/api/handlers"
	"github.com/yuehongzhang001/ark/internal/api/router"
	"github.com/yuehongzhang001/ark/internal/infra/arkfunds"
	"github.com/yuehongzhang001/ark/internal/infra/database/postgres"
	"github.com/yuehongzhang001/ark/internal/infra/yahoo"
	"github.com/yuehongzhang001/ark/internal/pkg/config"
	"github.com/yuehongzhang001/ark/internal/pkg/logger"
	"github.com/yuehongzhang001/ark/internal/service/enrich"
)

const (
	serviceName    = "ark-api"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("version", serviceVersion).
		Msg("🚀 Starting ARK API Server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbPool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Initialize repositories
	priceRepo := postgres.NewPriceRepository(dbPool)
	noteRepo := postgres.NewNoteRepository(dbPool)
	symbolRepo := postgres.NewSymbolRepository(dbPool)

	// Initialize external clients
	yahooClient := yahoo.NewClient(cfg.Yahoo.BaseURL)
	arkClient := arkfunds.NewClient(cfg.ArkFunds.BaseURL)

	// Initialize services
	enrichSvc := enrich.NewService(priceRepo, yahooClient, &enrich.Config{
		MaxConcurrent: cfg.Enrich.MaxConcurrent,
	})

	// Initialize handlers
	tradesHandler := handlers.NewTradesHandler(arkClient, enrichSvc)
	stockHandler := handlers.NewStockHandler(yahooClient)
	notesHandler := handlers.NewNotesHandler(noteRepo)
	symbolsHandler := handlers.NewSymbolsHandler(symbolRepo)

	// Build router
	httpRouter := router.New(&router.Config{
		Mode:           cfg.Server.Mode,
		Logging:        cfg.Logging,
		TradesHandler:  tradesHandler,
		StockHandler:   stockHandler,
		NotesHandler:   notesHandler,
		SymbolsHandler: symbolsHandler,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", addr).
			Msg("🎯 API Server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("🛑 Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("👋 ARK API Server stopped")
}
