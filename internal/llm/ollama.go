package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OllamaClient talks to a local Ollama server through its native chat API.
type OllamaClient struct {
	baseURL string
	model   string
	numCtx  int
	http    *http.Client

	// mu serializes calls: one outstanding generation per backend.
	mu sync.Mutex
}

func NewOllama(baseURL, model string, numCtx int) *OllamaClient {
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		numCtx:  numCtx,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Message Message `json:"message"`
}

func (c *OllamaClient) Generate(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumCtx:      c.numCtx,
			NumPredict:  maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	resp, err := c.http.Do(req)
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return strings.TrimSpace(out.Message.Content), nil
}
