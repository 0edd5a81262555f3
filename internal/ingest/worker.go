package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/store"
)

// DocumentEmbedder is the ingestion-side embedding dependency.
type DocumentEmbedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float64, error)
	Dimensions() int
}

// ChunkStore is the vector-store write contract.
type ChunkStore interface {
	UpsertChunks(ctx context.Context, chunks []store.Chunk) error
	VectorSize(ctx context.Context) (int, error)
}

// Worker consumes ingestion jobs: chunk, embed, upsert. Failures are logged and
// surfaced back to the queue's own retry policy; there is no custom retry here.
// Jobs are independent and may finish out of enqueue order.
type Worker struct {
	embedder     DocumentEmbedder
	chunks       ChunkStore
	chunkSize    int
	chunkOverlap int
	concurrency  int
	logger       *slog.Logger

	jobs chan Job
	done chan struct{}
}

func NewWorker(embedder DocumentEmbedder, chunks ChunkStore, chunkSize, chunkOverlap, concurrency int, logger *slog.Logger) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{
		embedder:     embedder,
		chunks:       chunks,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		concurrency:  concurrency,
		logger:       logger,
		jobs:         make(chan Job, concurrency*2),
		done:         make(chan struct{}),
	}
}

// Start subscribes to the queue and launches the bounded worker pool. The pool
// size caps concurrent embedding calls so the provider and store are not
// overwhelmed.
func (w *Worker) Start(ctx context.Context, queue *Queue) error {
	if err := queue.Subscribe(w.Handle); err != nil {
		return err
	}

	for i := 0; i < w.concurrency; i++ {
		go w.run(ctx)
	}

	w.logger.Info("ingestion worker started", "concurrency", w.concurrency)
	return nil
}

// Handle accepts one job for processing. It is the queue-subscription callback
// but is exported so tests and in-process callers can feed jobs directly.
func (w *Worker) Handle(job Job) {
	select {
	case w.jobs <- job:
	case <-w.done:
	}
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			if err := w.Process(ctx, job); err != nil {
				// Failure goes back to the broker's retry policy.
				w.logger.Error("job failed", "job_id", job.ID, "error", err)
			}
		}
	}
}

// Stop prevents further job intake.
func (w *Worker) Stop() {
	close(w.done)
}

// Process runs one job to completion: split the document, verify the embedder
// and store agree on dimensionality, embed every chunk, write them in one
// batch.
func (w *Worker) Process(ctx context.Context, job Job) error {
	if job.Text == "" {
		return fmt.Errorf("job %s: document text is required", job.ID)
	}

	parts := SplitText(job.Text, w.chunkSize, w.chunkOverlap)
	if len(parts) == 0 {
		return fmt.Errorf("job %s: document produced no chunks", job.ID)
	}

	w.logger.Info("processing job", "job_id", job.ID, "chunks", len(parts))

	// Dimensionality is a configuration invariant: a mismatch means the store
	// was provisioned for a different embedding model, and the job must fail
	// rather than write garbage vectors.
	if size, err := w.chunks.VectorSize(ctx); err != nil {
		w.logger.Warn("could not read store vector size; proceeding", "error", err)
	} else if size != w.embedder.Dimensions() {
		return fmt.Errorf("job %s: embedder produces %d dims but store expects %d",
			job.ID, w.embedder.Dimensions(), size)
	}

	now := time.Now().UTC()
	chunks := make([]store.Chunk, 0, len(parts))
	for _, text := range parts {
		emb, err := w.embedder.EmbedDocument(ctx, text)
		if err != nil {
			return fmt.Errorf("job %s: embed chunk: %w", job.ID, err)
		}
		chunks = append(chunks, store.Chunk{
			ID:         uuid.New(),
			Text:       text,
			Source:     job.Metadata.Source,
			DocumentAt: job.Metadata.Timestamp,
			IngestedAt: now,
			Embedding:  emb,
		})
	}

	if err := w.chunks.UpsertChunks(ctx, chunks); err != nil {
		return fmt.Errorf("job %s: upsert chunks: %w", job.ID, err)
	}

	w.logger.Info("job completed", "job_id", job.ID, "chunks", len(chunks))
	return nil
}
