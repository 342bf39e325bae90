// Package chat proxies user messages to the OpenRouter chat-completion API
// with a fixed system prompt scoping answers to the site's catalog.
package chat

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

// systemPrompt restricts the assistant to the site's door-hardware catalog.
const systemPrompt = "You are an AI assistant that ONLY answers questions about the products and services available on this home accessories website. " +
	"The website sells door hardware including locks, handles, hinges, door closers, and security solutions. " +
	"You must NOT answer any questions outside of this scope - including general knowledge, advice about other products, or any topics not related to what this website offers. " +
	"If asked about anything outside the website's products and services, politely say you can only help with questions about the door hardware and security products available on this site. " +
	"Be helpful and knowledgeable only about the specific products listed on the website."

// Completion tuning, fixed by the API contract.
const (
	maxTokens   = 1000
	temperature = 0.7
)

// APIError carries a non-2xx upstream response so handlers can forward the
// status code.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("chat: openrouter returned %d: %s", e.StatusCode, e.Body)
}

// Client is a thin OpenRouter chat-completions client.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Client for the given base URL and model.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends the user message with the fixed system prompt and returns
// the single text reply.
func (c *Client) Complete(ctx context.Context, userMessage string) (string, error) {
	payload, errMarshal := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if errMarshal != nil {
		return "", fmt.Errorf("chat: encode request: %w", errMarshal)
	}

	req, errReq := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if errReq != nil {
		return "", fmt.Errorf("chat: build request: %w", errReq)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://home-accessories.com")
	req.Header.Set("X-Title", "Home Accessories AI Assistant")

	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return "", fmt.Errorf("chat: send: %w", errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	body, errRead := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if errRead != nil {
		return "", fmt.Errorf("chat: read response: %w", errRead)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out completionResponse
	if errDecode := json.Unmarshal(body, &out); errDecode != nil {
		return "", fmt.Errorf("chat: decode response: %w", errDecode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat: empty completion response")
	}
	return out.Choices[0].Message.Content, nil
}
