package embed

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiEmbedder struct {
	client openai.Client
	model  string
	dims   int
}

func newOpenAI(apiKey, model string, dims int) *openaiEmbedder {
	return &openaiEmbedder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		dims:   dims,
	}
}

func (o *openaiEmbedder) embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:      o.model,
		Dimensions: openai.Int(int64(o.dims)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding: empty response")
	}
	return resp.Data[0].Embedding, nil
}

// OpenAI does not distinguish query from document embeddings.

func (o *openaiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	return o.embed(ctx, text)
}

func (o *openaiEmbedder) EmbedDocument(ctx context.Context, text string) ([]float64, error) {
	return o.embed(ctx, text)
}

func (o *openaiEmbedder) Dimensions() int { return o.dims }
