package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/api"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/config"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/embed"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/ingest"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/intent"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/respond"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/retrieval"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("linkflow starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL, cfg.VectorTable)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx, cfg.EmbedDims); err != nil {
		slog.Error("failed to ensure vector schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected", "table", cfg.VectorTable)

	// Gemini client
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set — every tier will serve fallback responses")
	}
	llm := gemini.NewClient(cfg.GeminiAPIKey)

	// Embedding provider
	embedder, err := embed.New(embed.Config{
		Provider:     cfg.EmbedProvider,
		Model:        cfg.EmbedModel,
		Dimensions:   cfg.EmbedDims,
		GeminiClient: llm,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
	})
	if err != nil {
		slog.Error("failed to build embedder", "error", err)
		os.Exit(1)
	}
	slog.Info("embedder ready", "provider", cfg.EmbedProvider, "dims", embedder.Dimensions())

	// Reply pipeline
	classifier := intent.NewClassifier(llm, cfg.LowModel, slog.Default())
	summarizer := retrieval.NewSummarizer(llm, cfg.MidModel, slog.Default())
	retriever := retrieval.NewService(embedder, db, summarizer, cfg.RetrievalTopK, slog.Default())
	router := respond.NewRouter(llm, classifier, retriever, summarizer,
		cfg.LowModel, cfg.MidModel, cfg.PowModel, slog.Default())

	// Ingestion queue + worker
	queue, err := ingest.Connect(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer queue.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	worker := ingest.NewWorker(embedder, db, cfg.ChunkSize, cfg.ChunkOverlap, cfg.WorkerConcurrency, slog.Default())
	if err := worker.Start(ctx, queue); err != nil {
		slog.Error("failed to start ingestion worker", "error", err)
		os.Exit(1)
	}
	defer worker.Stop()
	slog.Info("ingestion worker started", "concurrency", cfg.WorkerConcurrency)

	// HTTP API
	srv := api.NewServer(cfg.Port, router, queue, cfg.WorkerConcurrency, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("linkflow ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("linkflow stopped")
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
