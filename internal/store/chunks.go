package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Chunk is one embedded piece of saved conversation context.
type Chunk struct {
	ID         uuid.UUID
	Text       string
	Source     string
	DocumentAt time.Time // timestamp carried on the ingestion job
	IngestedAt time.Time // set when the worker embedded the chunk
	Embedding  []float64
}

// Result is one similarity-search hit.
type Result struct {
	Text   string
	Source string
	Score  float64
}

// EnsureSchema creates the chunk table and its index if they do not exist.
// dims fixes the vector column size; changing dims later requires a migration,
// not a silent repair.
func (s *Store) EnsureSchema(ctx context.Context, dims int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			text TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			document_at TIMESTAMPTZ,
			ingested_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			embedding vector(%d) NOT NULL
		)`, s.table, dims),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s USING hnsw (embedding vector_cosine_ops)`, s.table, s.table),
	}
	for _, q := range stmts {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// VectorSize reads the configured dimension of the embedding column. Workers
// check this against the embedder before writing; a mismatch is a deployment
// error and fails the job.
func (s *Store) VectorSize(ctx context.Context) (int, error) {
	var typmod int
	err := s.pool.QueryRow(ctx, `
		SELECT a.atttypmod
		FROM pg_attribute a
		JOIN pg_class c ON a.attrelid = c.oid
		WHERE c.relname = $1 AND a.attname = 'embedding'`,
		s.table,
	).Scan(&typmod)
	if err != nil {
		return 0, fmt.Errorf("read vector size: %w", err)
	}
	// For vector columns atttypmod holds the declared dimension directly.
	return typmod, nil
}

// UpsertChunks writes embedded chunks in one transaction.
func (s *Store) UpsertChunks(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (id, text, source, document_at, ingested_at, embedding)
		VALUES ($1, $2, $3, $4, $5, $6::vector)
		ON CONFLICT (id) DO UPDATE
		SET text = EXCLUDED.text, source = EXCLUDED.source,
		    document_at = EXCLUDED.document_at, ingested_at = EXCLUDED.ingested_at,
		    embedding = EXCLUDED.embedding`, s.table)

	for _, c := range chunks {
		_, err = tx.Exec(ctx, query,
			c.ID, c.Text, c.Source, c.DocumentAt, c.IngestedAt, pgVector(c.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Search returns the k nearest chunks by cosine distance.
func (s *Store) Search(ctx context.Context, embedding []float64, k int) ([]Result, error) {
	query := fmt.Sprintf(`
		SELECT text, source, 1 - (embedding <=> $1::vector) AS score
		FROM %s
		ORDER BY embedding <=> $1::vector
		LIMIT $2`, s.table)

	rows, err := s.pool.Query(ctx, query, pgVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Text, &r.Source, &r.Score); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
