package embed

import (
	"context"
	"fmt"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
)

// Embedder turns text into vectors. Query and document embeddings are separate
// calls because some providers optimize them differently; both must produce
// vectors of Dimensions() length, which has to match the vector store's
// configured column size.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	EmbedDocument(ctx context.Context, text string) ([]float64, error)
	Dimensions() int
}

// Config selects and configures an embedding provider.
type Config struct {
	Provider     string // "gemini" | "openai"
	Model        string
	Dimensions   int
	GeminiClient *gemini.Client
	OpenAIAPIKey string
}

func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiClient == nil {
			return nil, fmt.Errorf("gemini embedder requires a gemini client")
		}
		model := cfg.Model
		if model == "" {
			model = "gemini-embedding-001"
		}
		dims := cfg.Dimensions
		if dims == 0 {
			dims = 3072
		}
		return newGemini(cfg.GeminiClient, model, dims), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai embedder requires OPENAI_API_KEY")
		}
		model := cfg.Model
		if model == "" {
			model = "text-embedding-3-small"
		}
		dims := cfg.Dimensions
		if dims == 0 {
			dims = 1536
		}
		return newOpenAI(cfg.OpenAIAPIKey, model, dims), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
