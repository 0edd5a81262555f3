package respond

import (
	"context"
	"log/slog"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/intent"
)

// Classifier decides which tier handles a conversation.
type Classifier interface {
	Classify(ctx context.Context, msgs []chat.Message) intent.Intent
}

// Retriever supplies vector-store context for the high tier. It degrades to a
// sentinel string on failure and never errors.
type Retriever interface {
	Retrieve(ctx context.Context, msgs []chat.Message) string
}

// Summarizer compresses retrieved context into a bounded digest.
type Summarizer interface {
	Summarize(ctx context.Context, ragContext string, msgs []chat.Message) string
}

// Router dispatches a conversation to one of three generation tiers based on
// the classified intent. It always returns some reply text: generation and
// retrieval failures are absorbed inside the tiers.
type Router struct {
	llm        Model
	classifier Classifier
	retriever  Retriever
	summarizer Summarizer
	logger     *slog.Logger

	low  tier
	mid  tier
	high tier
}

func NewRouter(llm Model, cls Classifier, ret Retriever, sum Summarizer, lowModel, midModel, powModel string, logger *slog.Logger) *Router {
	return &Router{
		llm:        llm,
		classifier: cls,
		retriever:  ret,
		summarizer: sum,
		logger:     logger,
		low:        lowTier(lowModel),
		mid:        midTier(midModel),
		high:       highTier(powModel),
	}
}

// Reply classifies the latest message and produces the next outgoing reply.
func (r *Router) Reply(ctx context.Context, msgs []chat.Message, receiver string) string {
	it := r.classifier.Classify(ctx, msgs)

	r.logger.Info("routing reply", "intent", it, "receiver", receiver, "messages", len(msgs))

	switch it {
	case intent.IntentGreeting:
		return r.low.generate(ctx, r.llm, r.logger, msgs, receiver, "")

	case intent.IntentGeneric:
		return r.mid.generate(ctx, r.llm, r.logger, msgs, receiver, "")

	case intent.IntentComplexQuestion:
		ragContext := r.retriever.Retrieve(ctx, msgs)
		digest := r.summarizer.Summarize(ctx, ragContext, msgs)
		return r.high.generate(ctx, r.llm, r.logger, msgs, receiver, digest)

	default:
		// Unknown intents take the expensive path: better an over-qualified
		// reply than a canned one for a message we could not categorize.
		ragContext := r.retriever.Retrieve(ctx, msgs)
		digest := r.summarizer.Summarize(ctx, ragContext, msgs)
		return r.high.generate(ctx, r.llm, r.logger, msgs, receiver, digest)
	}
}
