package respond

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/gemini"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/intent"
)

type fakeModel struct {
	output      string
	err         error
	credentials bool
	models      []string
	prompts     []string
}

func (f *fakeModel) Generate(_ context.Context, model, prompt string, _ gemini.GenConfig) (string, error) {
	f.models = append(f.models, model)
	f.prompts = append(f.prompts, prompt)
	return f.output, f.err
}

func (f *fakeModel) HasCredentials() bool { return f.credentials }

type fixedClassifier struct{ out intent.Intent }

func (f fixedClassifier) Classify(context.Context, []chat.Message) intent.Intent { return f.out }

type fakeRetriever struct {
	out   string
	calls int
}

func (f *fakeRetriever) Retrieve(context.Context, []chat.Message) string {
	f.calls++
	return f.out
}

type fakeSummarizer struct {
	out   string
	calls int
	seen  string
}

func (f *fakeSummarizer) Summarize(_ context.Context, ragContext string, _ []chat.Message) string {
	f.calls++
	f.seen = ragContext
	return f.out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newTestRouter(m *fakeModel, it intent.Intent, ret *fakeRetriever, sum *fakeSummarizer) *Router {
	return NewRouter(m, fixedClassifier{it}, ret, sum, "model-low", "model-mid", "model-pow", testLogger())
}

func history() []chat.Message {
	return []chat.Message{
		{Role: "Alice", Message: "Why did you choose that stack?"},
		{Role: "Bob", Message: "We shipped the prototype."},
	}
}

func TestReply_GenericUsesMidTier(t *testing.T) {
	m := &fakeModel{output: "Sounds good, Alice.", credentials: true}
	ret := &fakeRetriever{}
	sum := &fakeSummarizer{}
	r := newTestRouter(m, intent.IntentGeneric, ret, sum)

	out := r.Reply(context.Background(), history(), "Alice")
	if out != "Sounds good, Alice." {
		t.Errorf("unexpected reply %q", out)
	}
	if len(m.models) != 1 || m.models[0] != "model-mid" {
		t.Errorf("expected one mid-tier call, got %v", m.models)
	}
	if ret.calls != 0 || sum.calls != 0 {
		t.Error("GENERIC must not touch retrieval or summarization")
	}
}

func TestReply_GreetingUsesLowTier(t *testing.T) {
	m := &fakeModel{output: "Hey Alice!", credentials: true}
	ret := &fakeRetriever{}
	sum := &fakeSummarizer{}
	r := newTestRouter(m, intent.IntentGreeting, ret, sum)

	r.Reply(context.Background(), history(), "Alice")
	if len(m.models) != 1 || m.models[0] != "model-low" {
		t.Errorf("expected one low-tier call, got %v", m.models)
	}
	if ret.calls != 0 {
		t.Error("GREETING must not touch retrieval")
	}
}

func TestReply_ComplexQuestionRunsRetrievalThenSummary(t *testing.T) {
	m := &fakeModel{output: "Here is a grounded answer.", credentials: true}
	ret := &fakeRetriever{out: "--- Document (crm) ---\nAlice leads platform work.\n"}
	sum := &fakeSummarizer{out: "Alice leads platform work."}
	r := newTestRouter(m, intent.IntentComplexQuestion, ret, sum)

	r.Reply(context.Background(), history(), "Alice")

	if ret.calls != 1 {
		t.Fatalf("expected 1 retrieval call, got %d", ret.calls)
	}
	if sum.calls != 1 {
		t.Fatalf("expected 1 summarize call, got %d", sum.calls)
	}
	if sum.seen != ret.out {
		t.Error("summarizer must receive the retrieved context")
	}
	if len(m.models) != 1 || m.models[0] != "model-pow" {
		t.Errorf("expected one high-tier call, got %v", m.models)
	}
	if !strings.Contains(m.prompts[0], "Alice leads platform work.") {
		t.Error("high-tier prompt must embed the digest")
	}
}

func TestReply_UnknownIntentFallsBackToHighTier(t *testing.T) {
	m := &fakeModel{output: "answer", credentials: true}
	ret := &fakeRetriever{out: "No relevant context found."}
	sum := &fakeSummarizer{out: "nothing"}
	r := newTestRouter(m, intent.Intent("SOMETHING_NEW"), ret, sum)

	r.Reply(context.Background(), history(), "Alice")
	if len(m.models) != 1 || m.models[0] != "model-pow" {
		t.Errorf("expected high-tier call for unknown intent, got %v", m.models)
	}
	if ret.calls != 1 {
		t.Error("unknown intent should take the retrieval path")
	}
}

func TestReply_FallbackOnGenerationError(t *testing.T) {
	m := &fakeModel{err: errors.New("model down"), credentials: true}
	r := newTestRouter(m, intent.IntentGeneric, &fakeRetriever{}, &fakeSummarizer{})

	out := r.Reply(context.Background(), history(), "Alice")
	if out == "" {
		t.Fatal("router must return non-empty text when generation fails")
	}
	found := false
	for _, fb := range midTier("model-mid").fallbacks {
		if out == fb {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a mid-tier fallback, got %q", out)
	}
}

func TestReply_FallbackOnEmptyOutput(t *testing.T) {
	m := &fakeModel{output: "   ", credentials: true}
	r := newTestRouter(m, intent.IntentGreeting, &fakeRetriever{}, &fakeSummarizer{})

	out := r.Reply(context.Background(), history(), "Alice")
	if strings.TrimSpace(out) == "" {
		t.Fatal("router must not return blank text")
	}
}

func TestReply_FallbackWithoutCredentials(t *testing.T) {
	m := &fakeModel{credentials: false}
	r := newTestRouter(m, intent.IntentGeneric, &fakeRetriever{}, &fakeSummarizer{})

	out := r.Reply(context.Background(), history(), "Alice")
	if out == "" {
		t.Fatal("expected fallback text without credentials")
	}
	if len(m.models) != 0 {
		t.Error("expected no model calls without credentials")
	}
}

func TestCleanReply(t *testing.T) {
	cases := map[string]string{
		"\"quoted\"":      "quoted",
		"'single'":        "single",
		"  padded  ":      "padded",
		"\" 'nested' \"":  "nested",
		"plain":           "plain",
		"has \"inner\" q": "has \"inner\" q",
	}
	for in, want := range cases {
		if got := cleanReply(in); got != want {
			t.Errorf("cleanReply(%q) = %q, want %q", in, got, want)
		}
	}
}
