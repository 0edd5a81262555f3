package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikhilnagar29/LinkFlow-AI/internal/chat"
)

// CancelToken is an explicit cancellation handle for one reply request.
// Callers check it before sending and again before acting on the
// response, so a reply that arrives after the user took over is dropped.
type CancelToken struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewCancelToken(parent context.Context) *CancelToken {
	ctx, cancel := context.WithCancel(parent)
	return &CancelToken{ctx: ctx, cancel: cancel}
}

func (t *CancelToken) Cancel() {
	t.cancel()
}

func (t *CancelToken) Cancelled() bool {
	return t.ctx.Err() != nil
}

// Client talks to the reply server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
	}
}

type chatRequest struct {
	Messages     []chat.Message `json:"messages"`
	ReceiverName string         `json:"receiverName"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

// RequestReply posts the recent conversation (most-recent-first) and
// returns the generated reply text.
func (c *Client) RequestReply(token *CancelToken, msgs []chat.Message, receiver string) (string, error) {
	if token.Cancelled() {
		return "", token.ctx.Err()
	}

	body, err := json.Marshal(chatRequest{Messages: msgs, ReceiverName: receiver})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(token.ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send chat request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("chat request failed (%d): %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if parsed.Response == "" && parsed.Message == "" {
		return "", fmt.Errorf("chat response contained no reply text")
	}

	if token.Cancelled() {
		return "", token.ctx.Err()
	}

	reply := parsed.Response
	if reply == "" {
		reply = parsed.Message
	}
	return reply, nil
}
