package embed

import (
	"context"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
)

type geminiEmbedder struct {
	client *gemini.Client
	model  string
	dims   int
}

func newGemini(client *gemini.Client, model string, dims int) *geminiEmbedder {
	return &geminiEmbedder{client: client, model: model, dims: dims}
}

func (g *geminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	return g.client.Embed(ctx, g.model, text, "RETRIEVAL_QUERY", g.dims)
}

func (g *geminiEmbedder) EmbedDocument(ctx context.Context, text string) ([]float64, error) {
	return g.client.Embed(ctx, g.model, text, "RETRIEVAL_DOCUMENT", g.dims)
}

func (g *geminiEmbedder) Dimensions() int { return g.dims }
