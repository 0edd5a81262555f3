package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/agentstate"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/backend"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/config"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/control"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/page"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/watch"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("linkflow agent starting", "backend", cfg.BackendURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable agent settings
	persisted, err := agentstate.Load(cfg.StatePath)
	if err != nil {
		slog.Error("failed to load agent state", "error", err)
		os.Exit(1)
	}

	// Browser session
	surface := page.NewLive(page.LiveConfig{
		Selectors:  page.LinkedInSelectors(),
		URL:        cfg.PageURL,
		ProfileDir: cfg.ChromeProfile,
		Headless:   cfg.Headless,
		Logger:     slog.Default(),
	})
	if err := surface.Start(ctx); err != nil {
		slog.Error("failed to start browser session", "error", err)
		os.Exit(1)
	}
	defer surface.Stop()

	// Watcher
	client := backend.NewClient(cfg.BackendURL, slog.Default())
	watcher := watch.New(watch.Config{
		Surface:      surface,
		Replier:      client,
		Persisted:    persisted,
		PollInterval: cfg.PollInterval,
		StagingDelay: cfg.StagingDelay,
		Logger:       slog.Default(),
	})
	go watcher.Run(ctx)

	// Control API
	srv := control.NewServer(cfg.ControlPort, watcher, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("control server error", "error", err)
		}
	}()

	slog.Info("linkflow agent ready",
		"control_port", cfg.ControlPort,
		"enabled", persisted.AIEnabled)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("linkflow agent stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
