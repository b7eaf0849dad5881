package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"gbank/internal/backend"
	"gbank/internal/cli"
	apphttp "gbank/internal/http"
	applog "gbank/internal/log"
	"gbank/internal/sheets"
	gsheet "gbank/internal/sheets/google"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.NewFactory(logger.Logger).Create(backend.Config{
		Type:          backend.Type(cfg.DataBackend),
		SQLiteDBPath:  cfg.SQLiteDBPath,
		DataDirectory: cfg.DataDirectory,
	})
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// Statement push is optional: without a spreadsheet ID the endpoint
	// answers 503 and everything else works.
	var statements sheets.StatementWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		statements = client
		logger.Info("Google Sheets statement push enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets statement push disabled")
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Store:              result.Store,
		Statements:         statements,
		Logger:             logger.WithComponent(applog.ComponentHTTP),
		CacheTTL:           cfg.CacheTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting gbank server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
