package page

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Live drives a real browser tab through chromedp. A persistent Chrome
// profile keeps the logged-in session across runs.
type Live struct {
	sel        SelectorSet
	url        string
	profileDir string
	headless   bool
	logger     *slog.Logger

	browserCtx context.Context
	cancel     context.CancelFunc
}

type LiveConfig struct {
	Selectors  SelectorSet
	URL        string // messaging page to open on Start
	ProfileDir string // Chrome user data directory (persists cookies/sessions)
	Headless   bool
	Logger     *slog.Logger
}

func NewLive(cfg LiveConfig) *Live {
	if cfg.ProfileDir == "" {
		home, _ := os.UserHomeDir()
		cfg.ProfileDir = filepath.Join(home, ".linkflow", "chrome-profile")
	}
	return &Live{
		sel:        cfg.Selectors,
		url:        cfg.URL,
		profileDir: cfg.ProfileDir,
		headless:   cfg.Headless,
		logger:     cfg.Logger,
	}
}

// Start launches the browser and opens the messaging page. The caller
// must call Stop when done.
func (l *Live) Start(ctx context.Context) error {
	if err := os.MkdirAll(l.profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(l.profileDir),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
	)
	if l.headless {
		opts = append(opts, chromedp.Headless)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	l.browserCtx = taskCtx
	l.cancel = func() {
		taskCancel()
		allocCancel()
	}

	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(l.url),
		chromedp.WaitReady("body"),
	); err != nil {
		l.cancel()
		return fmt.Errorf("open messaging page: %w", err)
	}

	l.logger.Info("browser session started", "url", l.url, "profile", l.profileDir)
	return nil
}

func (l *Live) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
}

// eval runs a JS expression against the open tab and decodes the result
// into out (pass nil to discard).
func (l *Live) eval(ctx context.Context, expr string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(l.browserCtx, 15*time.Second)
	defer cancel()

	if out == nil {
		var discard any
		out = &discard
	}
	return chromedp.Run(runCtx, chromedp.Evaluate(expr, out))
}

// jsString embeds a Go string into a JS expression as a quoted literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (l *Live) Snapshot(ctx context.Context) (Snapshot, error) {
	expr := fmt.Sprintf(`
		(function() {
			var title = document.querySelector(%s);
			var receiver = title ? (title.innerText || '').trim() : '';
			var bodies = document.querySelectorAll(%s);
			var out = [];
			var lastSender = '';
			for (var i = 0; i < bodies.length; i++) {
				var sender = lastSender;
				var group = bodies[i].closest('.msg-s-message-group');
				if (group) {
					var link = group.querySelector(%s);
					if (link) sender = (link.innerText || '').trim();
				}
				lastSender = sender;
				out.push({sender: sender, text: (bodies[i].innerText || '').trim()});
			}
			return {receiver: receiver, messages: out};
		})()
	`, jsString(l.sel.ReceiverTitle), jsString(l.sel.MessageBody), jsString(l.sel.SenderProfile))

	var raw struct {
		Receiver string `json:"receiver"`
		Messages []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"messages"`
	}
	if err := l.eval(ctx, expr, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("extract conversation: %w", err)
	}

	snap := Snapshot{Receiver: raw.Receiver}
	for i, m := range raw.Messages {
		snap.Messages = append(snap.Messages, Message{
			Sender:  m.Sender,
			Text:    m.Text,
			Ordinal: i,
		})
	}
	return snap, nil
}

func (l *Live) ComposeText(ctx context.Context) (string, error) {
	expr := fmt.Sprintf(`
		(function() {
			var box = document.querySelector(%s);
			return box ? (box.textContent || '').trim() : '';
		})()
	`, jsString(l.sel.ComposeBox))

	var text string
	if err := l.eval(ctx, expr, &text); err != nil {
		return "", fmt.Errorf("read compose box: %w", err)
	}
	return text, nil
}

func (l *Live) SetComposeText(ctx context.Context, text string) error {
	// LinkedIn's compose box only registers content after an input event.
	expr := fmt.Sprintf(`
		(function() {
			var box = document.querySelector(%s);
			if (!box) return false;
			var p = document.createElement('p');
			p.textContent = %s;
			box.innerHTML = '';
			box.appendChild(p);
			box.dispatchEvent(new Event('input', {bubbles: true}));
			return true;
		})()
	`, jsString(l.sel.ComposeBox), jsString(text))

	var ok bool
	if err := l.eval(ctx, expr, &ok); err != nil {
		return fmt.Errorf("write compose box: %w", err)
	}
	if !ok {
		return fmt.Errorf("compose box not found")
	}
	return nil
}

func (l *Live) Send(ctx context.Context) error {
	expr := fmt.Sprintf(`
		(function() {
			var btn = document.querySelector(%s);
			if (!btn || btn.disabled) return false;
			btn.click();
			return true;
		})()
	`, jsString(l.sel.SendButton))

	var ok bool
	if err := l.eval(ctx, expr, &ok); err != nil {
		return fmt.Errorf("click send: %w", err)
	}
	if !ok {
		return fmt.Errorf("send button not found or disabled")
	}
	return nil
}

func (l *Live) ShowCountdown(ctx context.Context, percent int) error {
	expr := fmt.Sprintf(`
		(function() {
			var el = document.getElementById('linkflow-countdown');
			if (!el) {
				el = document.createElement('div');
				el.id = 'linkflow-countdown';
				el.style.cssText = 'position:fixed;bottom:90px;right:20px;z-index:9999;' +
					'background:#0a66c2;color:#fff;padding:6px 12px;border-radius:6px;' +
					'font-size:12px;font-family:sans-serif;';
				document.body.appendChild(el);
			}
			el.textContent = 'Auto-send ' + %d + '%%';
			return true;
		})()
	`, percent)

	return l.eval(ctx, expr, nil)
}

func (l *Live) ClearCountdown(ctx context.Context) error {
	expr := `
		(function() {
			var el = document.getElementById('linkflow-countdown');
			if (el) el.remove();
			return true;
		})()
	`
	return l.eval(ctx, expr, nil)
}
