package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a minimal Gemini API client covering text generation and embeddings.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// HasCredentials reports whether an API key is configured.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// GenConfig mirrors the generationConfig block of the generateContent API.
type GenConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content  `json:"contents"`
	GenerationConfig *GenConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends a single-turn prompt to the given model and returns the first
// candidate's text.
func (c *Client) Generate(ctx context.Context, model, prompt string, cfg GenConfig) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &cfg,
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	var apiResp generateResponse
	if err := c.post(ctx, url, reqBody, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response content")
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

type embedRequest struct {
	Model                string  `json:"model"`
	Content              content `json:"content"`
	TaskType             string  `json:"taskType,omitempty"`
	OutputDimensionality int     `json:"outputDimensionality,omitempty"`
}

type embedResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

// Embed returns an embedding vector for the given text. taskType distinguishes
// RETRIEVAL_QUERY from RETRIEVAL_DOCUMENT on the API side.
func (c *Client) Embed(ctx context.Context, model, text, taskType string, dims int) ([]float64, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	reqBody := embedRequest{
		Model:                "models/" + model,
		Content:              content{Parts: []part{{Text: text}}},
		TaskType:             taskType,
		OutputDimensionality: dims,
	}

	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", c.baseURL, model, c.apiKey)

	var apiResp embedResponse
	if err := c.post(ctx, url, reqBody, &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}

	return apiResp.Embedding.Values, nil
}

func (c *Client) post(ctx context.Context, url string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return fmt.Errorf("api error %d: %s — %s", resp.StatusCode, errResp.Error.Status, errResp.Error.Message)
		}
		return fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
