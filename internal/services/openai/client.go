package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"promto/internal/config"
	"promto/internal/services"
)

const defaultHTTPTimeout = 120 * time.Second

// Client wraps the OpenAI chat completion and speech synthesis APIs.
type Client struct {
	cfg        config.OpenAI
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an OpenAI API client.
func NewClient(cfg config.OpenAI, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ViralIdea asks for one trending product search phrase, avoiding the
// excluded phrases. The result is the first response line with surrounding
// quotes stripped.
func (c *Client) ViralIdea(ctx context.Context, exclude []string) (string, error) {
	if err := c.checkKey("viral idea"); err != nil {
		return "", err
	}
	excluded := "(none)"
	if len(exclude) > 0 {
		lines := make([]string, 0, len(exclude))
		for _, phrase := range exclude {
			lines = append(lines, "- "+phrase)
		}
		excluded = strings.Join(lines, "\n")
	}
	payload := chatCompletionRequest{
		Model:       c.cfg.ChatModel,
		Temperature: 1.0,
		MaxTokens:   50,
		Messages: []chatMessage{
			{Role: "system", Content: viralIdeaPrompt},
			{Role: "user", Content: "Give one product phrase only. Excluded:\n" + excluded},
		},
	}
	content, err := c.chatCompletion(ctx, "viral idea", payload)
	if err != nil {
		return "", err
	}
	idea, _, _ := strings.Cut(content, "\n")
	idea = strings.Trim(strings.TrimSpace(idea), `"`)
	if idea == "" {
		return "", services.Wrap(services.ErrUpstream, "openai", "viral idea", "empty idea", nil)
	}
	return idea, nil
}

// AdCopy generates social ad copy conditioned on the product title and an
// image supplied as a data URL. An empty brief falls back to the default.
func (c *Client) AdCopy(ctx context.Context, title, imageDataURL, brief string) (string, error) {
	if err := c.checkKey("ad copy"); err != nil {
		return "", err
	}
	if strings.TrimSpace(brief) == "" {
		brief = defaultAdCopyBrief
	}
	payload := chatCompletionRequest{
		Model:       c.cfg.ChatModel,
		Temperature: 0.9,
		Messages: []chatMessage{
			{Role: "system", Content: adCopyPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: fmt.Sprintf("שם המוצר: %s\n%s", title, brief)},
				{Type: "image_url", ImageURL: &imageURL{URL: imageDataURL}},
			}},
		},
	}
	content, err := c.chatCompletion(ctx, "ad copy", payload)
	if err != nil {
		return "", err
	}
	return content, nil
}

// Speech synthesizes narration audio and returns the encoded bytes (MP3 by
// default on the upstream side).
func (c *Client) Speech(ctx context.Context, text string) ([]byte, error) {
	if err := c.checkKey("speech"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, services.Wrap(services.ErrValidation, "openai", "speech", "text required", nil)
	}
	payload := speechRequest{
		Model: c.cfg.SpeechModel,
		Voice: c.cfg.SpeechVoice,
		Input: text,
	}
	body, err := c.post(ctx, "speech", "/audio/speech", payload)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, services.Wrap(services.ErrUpstream, "openai", "speech", "empty audio", nil)
	}
	return body, nil
}

func (c *Client) chatCompletion(ctx context.Context, op string, payload chatCompletionRequest) (string, error) {
	body, err := c.post(ctx, op, "/chat/completions", payload)
	if err != nil {
		return "", err
	}
	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrUpstream, "openai", op, "decode response", err)
	}
	if completion.Error != nil {
		return "", services.Wrap(services.ErrUpstream, "openai", op,
			"api error: "+strings.TrimSpace(completion.Error.Message), nil)
	}
	if len(completion.Choices) == 0 {
		return "", services.Wrap(services.ErrUpstream, "openai", op, "empty choices", nil)
	}
	// Empty content is not an upstream failure; ad copy tolerates it and
	// falls back to a stock narration downstream.
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func (c *Client) post(ctx context.Context, op, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "openai", op, "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "openai", op, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "openai", op, "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "openai", op, "read body", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}
		return nil, services.Wrap(services.ErrUpstream, "openai", op,
			fmt.Sprintf("http %d: %s", resp.StatusCode, snippet), nil)
	}
	return body, nil
}

func (c *Client) checkKey(op string) error {
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "openai", op, "missing OPENAI_API_KEY", nil)
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage content is either a plain string or a list of contentPart for
// multimodal requests.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}
