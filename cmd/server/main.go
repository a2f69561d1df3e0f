// Package main is the entry point for the students-rooms API server.
//
// main stays minimal: read configuration, build the logger, start the
// server. All actual logic lives in the internal packages.
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/students-rooms-api/internal/config"
	"github.com/sakif/students-rooms-api/internal/server"
)

func main() {
	cfg := config.MustLoad()

	level := slog.LevelInfo
	if cfg.Env == "dev" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	srv, err := server.New(server.Config{
		Addr:    cfg.Addr,
		DataDir: cfg.DataDir,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
