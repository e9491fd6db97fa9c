package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single completion request.
const DefaultTimeout = 120 * time.Second

// OpenAIConfig configures an OpenAI-compatible chat-completions client.
type OpenAIConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string
	// Model names the model to invoke.
	Model string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// Temperature is passed through to the API. Zero keeps answers
	// deterministic, which suits scored single-answer episodes.
	Temperature float32
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// OpenAIClient implements Client against any OpenAI-compatible
// chat-completions endpoint.
type OpenAIClient struct {
	cfg        OpenAIConfig
	httpClient *http.Client
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client from cfg. BaseURL and Model are required.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("llm base URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &OpenAIClient{cfg: cfg, httpClient: httpClient}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the prompts as one chat-completion request. The first
// prompt becomes the system message and the rest user messages.
func (c *OpenAIClient) Complete(ctx context.Context, prompts []string) (string, error) {
	if len(prompts) == 0 {
		return "", errors.New("at least one prompt is required")
	}

	messages := make([]chatMessage, 0, len(prompts))
	messages = append(messages, chatMessage{Role: "system", Content: prompts[0]})
	for _, prompt := range prompts[1:] {
		messages = append(messages, chatMessage{Role: "user", Content: prompt})
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("completion failed (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("completion failed (status %d): %s", resp.StatusCode, string(data))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}
