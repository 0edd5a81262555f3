package respond

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
)

// Model is the generative call the tiers depend on.
type Model interface {
	Generate(ctx context.Context, model, prompt string, cfg gemini.GenConfig) (string, error)
	HasCredentials() bool
}

// tier is one cost/quality point: a model, a prompt builder, a generation
// profile and a hand-authored fallback pool. Every tier absorbs its own
// failures: a model error or empty output yields a pseudo-random fallback so
// repeated failures are not visibly identical.
type tier struct {
	name      string
	model     string
	cfg       gemini.GenConfig
	prompt    func(msgs []chat.Message, receiver, context string) string
	fallbacks []string
}

func lowTier(model string) tier {
	return tier{
		name:  "low",
		model: model,
		cfg:   gemini.GenConfig{MaxOutputTokens: 50, Temperature: 0.7, TopP: 0.95, TopK: 40},
		prompt: func(msgs []chat.Message, receiver, _ string) string {
			return fmt.Sprintf(lowTierPrompt, chat.History(msgs), opponentName(msgs, receiver))
		},
		fallbacks: []string{
			"Hi there! Good to hear from you.",
			"Hey! How are you doing today?",
			"Hello! Thanks for reaching out.",
			"Hi! Nice to connect with you.",
		},
	}
}

func midTier(model string) tier {
	return tier{
		name:  "mid",
		model: model,
		cfg:   gemini.GenConfig{MaxOutputTokens: 150, Temperature: 0.6, TopP: 0.9, TopK: 40},
		prompt: func(msgs []chat.Message, receiver, _ string) string {
			return fmt.Sprintf(midTierPrompt, receiver, chat.History(msgs))
		},
		fallbacks: []string{
			"Thanks for sharing that. I'd be interested in hearing more about your perspective on this.",
			"That's an interesting point. I've had similar experiences in my work as well.",
			"I appreciate your insights on this topic. Let's discuss this further.",
			"Thanks for bringing this up. I've been thinking about this area recently too.",
		},
	}
}

func highTier(model string) tier {
	return tier{
		name:  "high",
		model: model,
		cfg:   gemini.GenConfig{MaxOutputTokens: 200, Temperature: 0.4, TopP: 0.85, TopK: 40},
		prompt: func(msgs []chat.Message, _, context string) string {
			return fmt.Sprintf(highTierPrompt, context, chat.History(msgs))
		},
		fallbacks: []string{
			"That's a great question. Based on my experience, I think there are several factors to consider here.",
			"I've been thinking about this topic quite a bit lately. From what I've seen in the industry...",
			"You raise some excellent points. In my previous projects, I've found that...",
			"This is definitely a complex area. Let me share what I've learned from working on similar challenges.",
		},
	}
}

// generate runs the tier's model call and always returns non-empty text.
func (t tier) generate(ctx context.Context, llm Model, logger *slog.Logger, msgs []chat.Message, receiver, context string) string {
	if !llm.HasCredentials() {
		logger.Warn("no model credentials; using fallback reply", "tier", t.name)
		return t.fallback()
	}

	out, err := llm.Generate(ctx, t.model, t.prompt(msgs, receiver, context), t.cfg)
	if err != nil {
		logger.Warn("tier generation failed; using fallback", "tier", t.name, "error", err)
		return t.fallback()
	}

	reply := cleanReply(out)
	if reply == "" {
		logger.Warn("tier produced empty reply; using fallback", "tier", t.name)
		return t.fallback()
	}
	return reply
}

func (t tier) fallback() string {
	return t.fallbacks[rand.Intn(len(t.fallbacks))]
}

// cleanReply strips surrounding whitespace and a single layer of wrapping quotes.
func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// opponentName prefers the latest sender label; the receiver header is used
// when no messages carry a sender.
func opponentName(msgs []chat.Message, receiver string) string {
	if len(msgs) > 0 && msgs[0].Role != "" {
		return msgs[0].Role
	}
	return receiver
}
