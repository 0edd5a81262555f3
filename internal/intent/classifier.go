package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
)

// Intent is the closed set of message categories the pipeline routes on.
type Intent string

const (
	IntentComplexQuestion Intent = "COMPLEX_QUESTION"
	IntentGeneric         Intent = "GENERIC"
	IntentGreeting        Intent = "GREETING"
)

// Model is the generative call the classifier depends on.
type Model interface {
	Generate(ctx context.Context, model, prompt string, cfg gemini.GenConfig) (string, error)
	HasCredentials() bool
}

// Classifier assigns one Intent to the latest incoming message using a cheap
// model call. It never fails: any error, missing credentials, or unrecognized
// output degrades to IntentGeneric so the pipeline always proceeds.
type Classifier struct {
	llm    Model
	model  string
	logger *slog.Logger
}

func NewClassifier(llm Model, model string, logger *slog.Logger) *Classifier {
	return &Classifier{llm: llm, model: model, logger: logger}
}

func (c *Classifier) Classify(ctx context.Context, msgs []chat.Message) Intent {
	latest := chat.Latest(msgs)
	if latest == "" {
		return IntentGeneric
	}

	if !c.llm.HasCredentials() {
		c.logger.Warn("no model credentials; defaulting intent", "intent", IntentGeneric)
		return IntentGeneric
	}

	prompt := fmt.Sprintf(classificationPrompt, latest)

	raw, err := c.llm.Generate(ctx, c.model, prompt, gemini.GenConfig{
		MaxOutputTokens: 40,
		Temperature:     0.4,
	})
	if err != nil {
		c.logger.Warn("intent classification failed; defaulting", "error", err)
		return IntentGeneric
	}

	intent := decode(raw)
	c.logger.Debug("intent classified", "intent", intent, "raw", strings.TrimSpace(raw))
	return intent
}

// decode maps free-form model output onto the closed Intent set. The match is
// by token containment after case folding; anything else falls back to GENERIC.
func decode(raw string) Intent {
	out := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(out, string(IntentGreeting)):
		return IntentGreeting
	case strings.Contains(out, string(IntentComplexQuestion)):
		return IntentComplexQuestion
	case strings.Contains(out, string(IntentGeneric)):
		return IntentGeneric
	default:
		return IntentGeneric
	}
}
