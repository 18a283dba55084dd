// Package genai holds the HTTP clients for the two external model
// endpoints the pipeline depends on: the speech-to-text endpoint and the
// chat-completion endpoint. Both speak the OpenAI wire format and share one
// credential and base URL. Stage services depend on the small Completer and
// Transcriber interfaces so tests can substitute fakes.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// EndpointError is any failure from a speech-to-text or text-generation
// call: transport errors, auth and rate-limit rejections, and timeouts all
// surface as this one kind.
type EndpointError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *EndpointError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("endpoint call failed: %v", e.Err)
	}
	return fmt.Sprintf("endpoint returned HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// CompletionRequest is one chat-completion call.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
}

// Completer issues a single chat-completion request and returns the
// assistant's text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Client calls the OpenAI-compatible speech and completion endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. baseURL is the API root, e.g.
// "https://api.openai.com/v1". Every outbound call is bounded by timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete implements Completer against the chat-completion endpoint.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("sending completion request",
		"model", req.Model, "prompt_length", len(req.Prompt), "temperature", req.Temperature)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &EndpointError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &EndpointError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &EndpointError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &EndpointError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &EndpointError{StatusCode: resp.StatusCode, Message: "response contained no choices"}
	}

	c.log.Debug("completion received",
		"content_length", len(parsed.Choices[0].Message.Content),
		"total_tokens", parsed.Usage.TotalTokens)
	return parsed.Choices[0].Message.Content, nil
}
