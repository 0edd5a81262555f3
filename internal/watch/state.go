package watch

import "github.com/nikhilnagar29/LinkFlow-AI/internal/backend"

// Placeholder is written into the compose box while a reply is being
// generated. It is how we tell our own marker apart from user text.
const Placeholder = "AI is thinking..."

// State is the watcher's per-conversation working state. It is owned by
// the run loop goroutine and never shared; the invariant is at most one
// in-flight request and at most one live staging countdown.
type State struct {
	Enabled            bool
	InFlight           bool
	UserTyping         bool
	LastProcessedCount int

	StagingActive bool
	stagedText    string
	stagingGen    int

	token *backend.CancelToken
}

// Status is a read-only snapshot of the watcher, answered to control
// commands.
type Status struct {
	Enabled     bool   `json:"enabled"`
	Processing  bool   `json:"processing"`
	Typing      bool   `json:"typing"`
	Staging     bool   `json:"staging"`
	Description string `json:"description"`
}
