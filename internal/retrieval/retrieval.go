package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/store"
)

// Sentinel strings returned instead of errors: the reply pipeline must keep
// going whether or not context could be fetched.
const (
	NoContextFound = "No relevant context found."
	RetrievalError = "Error retrieving context. Proceeding without additional information."
)

// Embedder is the query-side embedding dependency.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}

// Searcher is the vector-store query contract.
type Searcher interface {
	Search(ctx context.Context, embedding []float64, k int) ([]store.Result, error)
}

// Recents produces a short model summary of the recent conversation, used to
// diversify the second retrieval query.
type Recents interface {
	Recent(ctx context.Context, msgs []chat.Message) (string, error)
}

// Service fetches historical context for the high tier. All failures degrade to
// a sentinel string; Retrieve never returns an error.
type Service struct {
	embedder Embedder
	searcher Searcher
	recents  Recents
	topK     int
	logger   *slog.Logger
}

func NewService(embedder Embedder, searcher Searcher, recents Recents, topK int, logger *slog.Logger) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{embedder: embedder, searcher: searcher, recents: recents, topK: topK, logger: logger}
}

// Retrieve runs up to two similarity queries — one for the latest message, one
// for a summary of the recent conversation — and merges the hits, deduplicated
// by exact chunk text.
func (s *Service) Retrieve(ctx context.Context, msgs []chat.Message) string {
	latest := chat.Latest(msgs)
	if latest == "" {
		return NoContextFound
	}

	seen := make(map[string]struct{})
	var merged []store.Result

	collect := func(results []store.Result) {
		for _, r := range results {
			if _, dup := seen[r.Text]; dup {
				continue
			}
			seen[r.Text] = struct{}{}
			merged = append(merged, r)
		}
	}

	results, err := s.search(ctx, latest)
	if err != nil {
		s.logger.Warn("context retrieval failed", "error", err)
		return RetrievalError
	}
	collect(results)

	// The second pass only makes sense when the store had anything relevant to
	// the latest message; its failures are non-fatal diversification misses.
	if len(merged) > 0 && s.recents != nil {
		if summary, err := s.recents.Recent(ctx, msgs); err != nil {
			s.logger.Warn("recent-messages summary failed; skipping second query", "error", err)
		} else if results, err := s.search(ctx, summary); err != nil {
			s.logger.Warn("summary-based retrieval failed", "error", err)
		} else {
			collect(results)
		}
	}

	if len(merged) == 0 {
		return NoContextFound
	}

	s.logger.Info("context retrieved", "chunks", len(merged))
	return format(merged)
}

func (s *Service) search(ctx context.Context, query string) ([]store.Result, error) {
	emb, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.searcher.Search(ctx, emb, s.topK)
}

func format(results []store.Result) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		source := r.Source
		if source == "" {
			source = "unknown"
		}
		sb.WriteString("--- Document (")
		sb.WriteString(source)
		sb.WriteString(") ---\n")
		sb.WriteString(r.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
