package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pgvector-backed chunk store shared by the retrieval path and the
// ingestion worker. Postgres serializes concurrent writes; the store carries no
// state beyond the pool.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

func New(ctx context.Context, databaseURL, table string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, table: table}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// pgVector formats a float64 slice as a pgvector-compatible string literal, e.g. "[0.1,0.2,0.3]".
// This is suitable for passing to a parameterized query targeting a vector column.
func pgVector(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
