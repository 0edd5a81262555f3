package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
)

// SummaryFailed is returned in place of a digest when compression fails; the
// high tier simply receives the raw context framing instead.
const SummaryFailed = "Unable to generate summary. Using original context."

// Model is the generative call the summarizer depends on.
type Model interface {
	Generate(ctx context.Context, model, prompt string, cfg gemini.GenConfig) (string, error)
	HasCredentials() bool
}

// Summarizer compresses retrieved context into a bounded digest. It strictly
// filters — the prompt forbids inventing facts — and degrades to a sentinel on
// failure rather than erroring.
type Summarizer struct {
	llm    Model
	model  string
	logger *slog.Logger
}

func NewSummarizer(llm Model, model string, logger *slog.Logger) *Summarizer {
	return &Summarizer{llm: llm, model: model, logger: logger}
}

// Summarize compresses ragContext relative to the latest message.
func (s *Summarizer) Summarize(ctx context.Context, ragContext string, msgs []chat.Message) string {
	if !s.llm.HasCredentials() {
		return SummaryFailed
	}

	prompt := fmt.Sprintf(summaryPrompt, chat.Latest(msgs), ragContext)

	out, err := s.llm.Generate(ctx, s.model, prompt, gemini.GenConfig{
		MaxOutputTokens: 500,
		Temperature:     0.4,
	})
	if err != nil {
		s.logger.Warn("context summarization failed", "error", err)
		return SummaryFailed
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return SummaryFailed
	}
	return out
}

// Recent produces a short digest of the recent conversation itself, used as the
// second retrieval query.
func (s *Summarizer) Recent(ctx context.Context, msgs []chat.Message) (string, error) {
	if !s.llm.HasCredentials() {
		return "", fmt.Errorf("no model credentials")
	}

	prompt := fmt.Sprintf(recentPrompt, chat.History(msgs))

	out, err := s.llm.Generate(ctx, s.model, prompt, gemini.GenConfig{
		MaxOutputTokens: 120,
		Temperature:     0.4,
	})
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("empty summary")
	}
	return out, nil
}
