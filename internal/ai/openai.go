package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type OpenAIClient struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Client      *http.Client
}

func NewOpenAIClient(baseURL, apiKey, model string, temperature float64, maxTokens int, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
		Client:      &http.Client{},
	}
}

type openAIChatReq struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type openAIChatResp struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete issues one chat-completion request under the client's fixed
// deadline. Failures are folded into the ErrRateLimited / ErrTimedOut /
// ErrUnavailable set; nothing is retried.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (Completion, error) {
	if c.Client == nil {
		return Completion{}, fmt.Errorf("%w: http client is nil", ErrUnavailable)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return Completion{}, fmt.Errorf("%w: api key is required", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	b, err := json.Marshal(openAIChatReq{
		Model:       c.Model,
		Messages:    messages,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	})
	if err != nil {
		return Completion{}, classify(err)
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(c.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return Completion{}, classify(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Completion{}, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
		return Completion{}, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return Completion{}, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}

	var decoded openAIChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Completion{}, classify(err)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return Completion{}, fmt.Errorf("%w: %s", ErrUnavailable, decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return Completion{}, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return Completion{
		Content:     strings.TrimSpace(decoded.Choices[0].Message.Content),
		TotalTokens: decoded.Usage.TotalTokens,
	}, nil
}

var _ Provider = (*OpenAIClient)(nil)
