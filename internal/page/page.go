package page

import "context"

// Message is one rendered chat bubble, in on-page order (most recent last).
type Message struct {
	Sender  string
	Text    string
	Ordinal int
}

// Snapshot is a point-in-time read of the open conversation. It is built
// fresh on every poll and never mutated.
type Snapshot struct {
	Receiver string
	Messages []Message
}

// Latest returns the most recent message, if any.
func (s Snapshot) Latest() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// LatestSenderIsReceiver reports whether the newest message came from the
// conversation partner rather than from us.
func (s Snapshot) LatestSenderIsReceiver(receiver string) bool {
	m, ok := s.Latest()
	if !ok {
		return false
	}
	return m.Sender == receiver
}

// Extractor reads conversation state off the page. Pure read, no side
// effects on the page.
type Extractor interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Composer drives the page's compose surface: the message box, the send
// button and the countdown overlay.
type Composer interface {
	ComposeText(ctx context.Context) (string, error)
	SetComposeText(ctx context.Context, text string) error
	Send(ctx context.Context) error
	ShowCountdown(ctx context.Context, percent int) error
	ClearCountdown(ctx context.Context) error
}

// Surface is the full page capability the watcher needs.
type Surface interface {
	Extractor
	Composer
}
