package page

import (
	"context"
	"sync"
)

// Fake is an in-memory Surface for tests: the conversation, compose box
// and send action all live in plain fields behind a mutex.
type Fake struct {
	mu        sync.Mutex
	receiver  string
	messages  []Message
	compose   string
	countdown int
	sent      []string

	SnapshotErr error
	SendErr     error
}

func NewFake(receiver string) *Fake {
	return &Fake{receiver: receiver, countdown: -1}
}

func (f *Fake) Snapshot(_ context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SnapshotErr != nil {
		return Snapshot{}, f.SnapshotErr
	}
	msgs := make([]Message, len(f.messages))
	copy(msgs, f.messages)
	return Snapshot{Receiver: f.receiver, Messages: msgs}, nil
}

func (f *Fake) ComposeText(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.compose, nil
}

func (f *Fake) SetComposeText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compose = text
	return nil
}

func (f *Fake) Send(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.sent = append(f.sent, f.compose)
	f.messages = append(f.messages, Message{
		Sender:  f.receiver,
		Text:    f.compose,
		Ordinal: len(f.messages),
	})
	f.compose = ""
	return nil
}

func (f *Fake) ShowCountdown(_ context.Context, percent int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countdown = percent
	return nil
}

func (f *Fake) ClearCountdown(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countdown = -1
	return nil
}

// AddMessage appends an incoming message from the given sender.
func (f *Fake) AddMessage(sender, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, Message{
		Sender:  sender,
		Text:    text,
		Ordinal: len(f.messages),
	})
}

// TypeIntoCompose simulates the user typing into the box.
func (f *Fake) TypeIntoCompose(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compose = text
}

func (f *Fake) Compose() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.compose
}

func (f *Fake) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *Fake) Countdown() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countdown
}
