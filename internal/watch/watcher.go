package watch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/agentstate"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/backend"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
	"github.com/nikhilnagar29/LinkFlow-AI/internal/page"
)

// maxHistory caps how many messages travel to the backend per request.
const maxHistory = 10

// stagingSteps is how many countdown updates the staging phase renders.
const stagingSteps = 10

// Replier requests a generated reply from the backend. The token lets
// the watcher abort the request when the user takes over.
type Replier interface {
	RequestReply(token *backend.CancelToken, msgs []chat.Message, receiver string) (string, error)
}

type replyResult struct {
	reply string
	err   error
	count int
}

type stagingEvent struct {
	gen     int
	percent int
	done    bool
}

type command struct {
	toggle      *bool
	description *string
	checkNow    bool
	resp        chan Status
}

// Watcher polls the conversation surface, detects new incoming messages
// and drives the request/staging lifecycle. All state is confined to the
// Run goroutine; external callers talk to it through commands.
type Watcher struct {
	surface   page.Surface
	replier   Replier
	persisted *agentstate.State
	logger    *slog.Logger

	pollInterval time.Duration
	inputPoll    time.Duration
	stagingDelay time.Duration

	state   *State
	stopped chan struct{}

	cmds          chan command
	results       chan replyResult
	stagingEvents chan stagingEvent
}

type Config struct {
	Surface      page.Surface
	Replier      Replier
	Persisted    *agentstate.State
	PollInterval time.Duration
	InputPoll    time.Duration
	StagingDelay time.Duration
	Logger       *slog.Logger
}

func New(cfg Config) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.InputPoll <= 0 {
		cfg.InputPoll = 500 * time.Millisecond
	}
	if cfg.StagingDelay <= 0 {
		cfg.StagingDelay = 10 * time.Second
	}
	return &Watcher{
		surface:       cfg.Surface,
		replier:       cfg.Replier,
		persisted:     cfg.Persisted,
		logger:        cfg.Logger,
		pollInterval:  cfg.PollInterval,
		inputPoll:     cfg.InputPoll,
		stagingDelay:  cfg.StagingDelay,
		state:         &State{Enabled: cfg.Persisted.AIEnabled},
		stopped:       make(chan struct{}),
		cmds:          make(chan command),
		results:       make(chan replyResult, 1),
		stagingEvents: make(chan stagingEvent, stagingSteps+1),
	}
}

// Run owns the watcher until ctx is cancelled. Every state mutation
// happens on this goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.stopped)

	poll := time.NewTicker(w.pollInterval)
	defer poll.Stop()
	input := time.NewTicker(w.inputPoll)
	defer input.Stop()

	w.logger.Info("conversation watcher started",
		"enabled", w.state.Enabled,
		"poll_interval", w.pollInterval,
		"staging_delay", w.stagingDelay)

	for {
		select {
		case <-ctx.Done():
			w.abortInFlight()
			return
		case <-poll.C:
			w.tick(ctx)
		case <-input.C:
			w.observeCompose(ctx)
		case res := <-w.results:
			w.handleReply(ctx, res)
		case ev := <-w.stagingEvents:
			w.handleStaging(ctx, ev)
		case cmd := <-w.cmds:
			w.handleCommand(ctx, cmd)
		}
	}
}

// Toggle enables or disables auto-reply and persists the flag.
func (w *Watcher) Toggle(enabled bool) Status {
	return w.send(command{toggle: &enabled})
}

// SetDescription updates the persisted conversation description.
func (w *Watcher) SetDescription(desc string) Status {
	return w.send(command{description: &desc})
}

// CheckNow forces an immediate poll tick.
func (w *Watcher) CheckNow() Status {
	return w.send(command{checkNow: true})
}

// Status reports the current watcher state.
func (w *Watcher) Status() Status {
	return w.send(command{})
}

func (w *Watcher) send(cmd command) Status {
	cmd.resp = make(chan Status, 1)
	select {
	case w.cmds <- cmd:
		return <-cmd.resp
	case <-w.stopped:
		return Status{}
	}
}

func (w *Watcher) handleCommand(ctx context.Context, cmd command) {
	switch {
	case cmd.toggle != nil:
		w.state.Enabled = *cmd.toggle
		if !w.state.Enabled {
			w.disable(ctx)
		}
		w.persisted.AIEnabled = w.state.Enabled
		if err := w.persisted.Save(); err != nil {
			w.logger.Error("failed to persist enabled flag", "error", err)
		}
		w.logger.Info("auto-reply toggled", "enabled", w.state.Enabled)
	case cmd.description != nil:
		w.persisted.ConversationDescription = *cmd.description
		if err := w.persisted.Save(); err != nil {
			w.logger.Error("failed to persist description", "error", err)
		}
	case cmd.checkNow:
		w.tick(ctx)
	}
	cmd.resp <- w.status()
}

func (w *Watcher) status() Status {
	return Status{
		Enabled:     w.state.Enabled,
		Processing:  w.state.InFlight,
		Typing:      w.state.UserTyping,
		Staging:     w.state.StagingActive,
		Description: w.persisted.ConversationDescription,
	}
}

// tick runs the guard chain and, when every guard passes, starts a
// reply request for the newest incoming message.
func (w *Watcher) tick(ctx context.Context) {
	if !w.state.Enabled || w.state.InFlight || w.state.UserTyping {
		return
	}

	compose, err := w.surface.ComposeText(ctx)
	if err != nil {
		w.logger.Debug("compose box unreadable, skipping tick", "error", err)
		return
	}
	if strings.TrimSpace(compose) != "" {
		return
	}

	snap, err := w.surface.Snapshot(ctx)
	if err != nil {
		w.logger.Debug("extraction failed, skipping tick", "error", err)
		return
	}
	if len(snap.Messages) == 0 || snap.Receiver == "" {
		return
	}
	latest, _ := snap.Latest()
	if latest.Sender == snap.Receiver {
		// Newest message is our own side, nothing to answer. This
		// matches by display name, so a partner who shares our display
		// name would be skipped too.
		return
	}
	if len(snap.Messages) == w.state.LastProcessedCount {
		return
	}

	w.beginProcessing(ctx, snap)
}

func (w *Watcher) beginProcessing(ctx context.Context, snap page.Snapshot) {
	w.state.InFlight = true
	token := backend.NewCancelToken(context.Background())
	w.state.token = token

	if err := w.surface.SetComposeText(ctx, Placeholder); err != nil {
		w.logger.Warn("failed to write placeholder", "error", err)
	}

	msgs := recentMessages(snap)
	count := len(snap.Messages)
	receiver := snap.Receiver
	w.logger.Info("requesting reply", "receiver", receiver, "messages", len(msgs))

	go func() {
		reply, err := w.replier.RequestReply(token, msgs, receiver)
		select {
		case w.results <- replyResult{reply: reply, err: err, count: count}:
		case <-w.stopped:
		}
	}()
}

// recentMessages converts the snapshot tail into the wire shape: at most
// maxHistory entries, most recent first.
func recentMessages(snap page.Snapshot) []chat.Message {
	n := len(snap.Messages)
	limit := n
	if limit > maxHistory {
		limit = maxHistory
	}
	out := make([]chat.Message, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		m := snap.Messages[i]
		out = append(out, chat.Message{Role: m.Sender, Message: m.Text})
	}
	return out
}

func (w *Watcher) handleReply(ctx context.Context, res replyResult) {
	w.state.InFlight = false
	token := w.state.token
	w.state.token = nil

	if res.err != nil || (token != nil && token.Cancelled()) {
		w.logger.Warn("reply request did not complete", "error", res.err)
		w.clearPlaceholder(ctx)
		return
	}

	// A stale response must not overwrite whatever happened meanwhile.
	compose, err := w.surface.ComposeText(ctx)
	if err != nil {
		w.clearPlaceholder(ctx)
		return
	}
	if !w.state.Enabled || w.state.UserTyping || (compose != "" && compose != Placeholder) {
		w.logger.Info("discarding reply, state changed while in flight")
		w.clearPlaceholder(ctx)
		return
	}

	w.state.LastProcessedCount = res.count
	w.stage(ctx, res.reply)
}

func (w *Watcher) stage(ctx context.Context, reply string) {
	if err := w.surface.SetComposeText(ctx, reply); err != nil {
		w.logger.Error("failed to stage draft", "error", err)
		w.clearPlaceholder(ctx)
		return
	}

	w.state.StagingActive = true
	w.state.stagedText = reply
	w.state.stagingGen++
	gen := w.state.stagingGen
	step := w.stagingDelay / stagingSteps

	w.logger.Info("reply staged, countdown started", "delay", w.stagingDelay)

	go func() {
		for i := 1; i <= stagingSteps; i++ {
			select {
			case <-w.stopped:
				return
			case <-time.After(step):
			}
			ev := stagingEvent{gen: gen, percent: i * (100 / stagingSteps), done: i == stagingSteps}
			select {
			case w.stagingEvents <- ev:
			case <-w.stopped:
				return
			}
		}
	}()
}

func (w *Watcher) handleStaging(ctx context.Context, ev stagingEvent) {
	if !w.state.StagingActive || ev.gen != w.state.stagingGen {
		// a replaced or cancelled timer must never fire the send
		return
	}

	compose, err := w.surface.ComposeText(ctx)
	if err != nil {
		w.cancelStaging(ctx, false)
		return
	}
	if compose != w.state.stagedText {
		w.state.UserTyping = compose != ""
		w.logger.Info("staging cancelled, user edited the draft")
		w.cancelStaging(ctx, false)
		return
	}
	if !w.state.Enabled {
		w.cancelStaging(ctx, true)
		return
	}

	if !ev.done {
		if err := w.surface.ShowCountdown(ctx, ev.percent); err != nil {
			w.logger.Debug("failed to render countdown", "error", err)
		}
		return
	}

	w.state.StagingActive = false
	w.state.stagedText = ""
	if err := w.surface.ClearCountdown(ctx); err != nil {
		w.logger.Debug("failed to clear countdown", "error", err)
	}
	if err := w.surface.Send(ctx); err != nil {
		w.logger.Error("failed to send staged reply", "error", err)
		return
	}
	w.logger.Info("staged reply sent")
}

// cancelStaging tears down the countdown. The draft is only wiped when
// the feature is being disabled, never when the user is mid-edit.
func (w *Watcher) cancelStaging(ctx context.Context, clearDraft bool) {
	if !w.state.StagingActive {
		return
	}
	w.state.StagingActive = false
	w.state.stagedText = ""
	w.state.stagingGen++
	if err := w.surface.ClearCountdown(ctx); err != nil {
		w.logger.Debug("failed to clear countdown", "error", err)
	}
	if clearDraft {
		if err := w.surface.SetComposeText(ctx, ""); err != nil {
			w.logger.Debug("failed to clear draft", "error", err)
		}
	}
}

// observeCompose watches the compose box for user activity between poll
// ticks: typing aborts an in-flight request or a live countdown.
func (w *Watcher) observeCompose(ctx context.Context) {
	if !w.state.Enabled {
		return
	}
	compose, err := w.surface.ComposeText(ctx)
	if err != nil {
		return
	}

	if w.state.StagingActive {
		if compose != w.state.stagedText {
			w.state.UserTyping = compose != ""
			w.logger.Info("staging cancelled, user took over the box")
			w.cancelStaging(ctx, false)
		}
		return
	}

	switch {
	case compose == "":
		w.state.UserTyping = false
	case compose == Placeholder:
		// our own marker, not user input
	default:
		if !w.state.UserTyping {
			w.state.UserTyping = true
			w.logger.Info("user typing detected, aborting any in-flight request")
			w.abortInFlight()
		}
	}
}

func (w *Watcher) abortInFlight() {
	if w.state.token != nil {
		w.state.token.Cancel()
	}
}

// disable resets everything transient: aborts the request, kills the
// countdown, wipes our own text from the box.
func (w *Watcher) disable(ctx context.Context) {
	w.abortInFlight()
	w.cancelStaging(ctx, true)
	w.clearPlaceholder(ctx)
	w.state.UserTyping = false
}

// clearPlaceholder empties the compose box only when our marker is still
// the visible content; user text is left alone.
func (w *Watcher) clearPlaceholder(ctx context.Context) {
	compose, err := w.surface.ComposeText(ctx)
	if err != nil {
		return
	}
	if compose == Placeholder {
		if err := w.surface.SetComposeText(ctx, ""); err != nil {
			w.logger.Warn("failed to clear placeholder", "error", err)
		}
	}
}
