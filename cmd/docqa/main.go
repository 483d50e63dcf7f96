package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"docqa/internal/app"
	"docqa/internal/config"
	"docqa/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	eng, err := app.AssembleEngine(cfg, logger)
	if err != nil {
		log.Fatalf("failed to assemble engine: %v", err)
	}

	// Build on startup; a failure is a warning, not fatal. The index is
	// built lazily on the first request instead.
	if _, err := eng.BuildIndex(context.Background()); err != nil {
		logger.Warn("failed to load data on startup; use /api/reload or the first request will retry", "error", err)
	}

	srv := server.New(eng, cfg.Ollama.BaseURL, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("listening", "addr", addr, "document_dir", eng.DocumentDir())
	log.Fatal(http.ListenAndServe(addr, srv.Routes()))
}
