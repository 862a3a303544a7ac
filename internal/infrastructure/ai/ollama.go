// Package ai implements the language-model gateway port against the Ollama
// HTTP API: /api/generate for completions, /api/embed for embeddings and
// /api/tags as a liveness probe.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/ports"
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// OllamaClient talks to a local (or remote) Ollama daemon.
type OllamaClient struct {
	baseURL    string
	model      string
	embedModel string
	httpClient *http.Client
}

// NewOllamaClient builds a client from the LLM configuration.
func NewOllamaClient(cfg domain.LLMConfig) *OllamaClient {
	return &OllamaClient{
		baseURL:    cfg.Endpoint,
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
		httpClient: &http.Client{},
	}
}

// Generate implements ports.LLMClient.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	var decoded generateResponse
	err := c.post(ctx, "/api/generate", generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}, &decoded)
	if err != nil {
		return "", err
	}
	return decoded.Response, nil
}

// Embed implements ports.LLMClient.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	var decoded embedResponse
	err := c.post(ctx, "/api/embed", embedRequest{
		Model: c.embedModel,
		Input: text,
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if len(decoded.Embeddings) == 0 {
		return nil, nil
	}
	return decoded.Embeddings[0], nil
}

// IsAvailable implements ports.LLMClient.
func (c *OllamaClient) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (c *OllamaClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ollama %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ ports.LLMClient = (*OllamaClient)(nil)
