package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// HTTPGenerator is the secondary provider: any OpenAI-compatible
// chat-completions endpoint.
type HTTPGenerator struct {
	httpClient *http.Client
	url        string
	key        string
	model      string
}

func NewHTTPGenerator(url, key, model string) *HTTPGenerator {
	return &HTTPGenerator{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		key:        key,
		model:      model,
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	payload := map[string]any{
		"model":       g.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.key != "" {
		req.Header.Set("Authorization", "Bearer "+g.key)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("generation provider error %d: %s", resp.StatusCode, string(raw))
	}

	text := gjson.GetBytes(raw, "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("generation provider returned empty content")
	}
	return text, nil
}
