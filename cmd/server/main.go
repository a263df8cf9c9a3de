// Package main implements the entry point for the listkeep API server,
// which serves shared todo lists and their tasks over HTTP backed by
// MongoDB.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/listkeep/listkeep-api/internal/config"
)

func main() {
	// Local development reads a .env file; a missing file is fine.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	slog.Info("server configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"google_signin_enabled", cfg.Auth.GoogleClientID != "",
		"api_key_enabled", cfg.Auth.APIKey != "")

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
