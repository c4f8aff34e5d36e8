package aliexpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"promto/internal/config"
	"promto/internal/services"
)

const (
	signMethod         = "hmac-sha256"
	apiVersion         = "2.0"
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps the signed AliExpress affiliate gateway.
type Client struct {
	cfg        config.AliExpress
	httpClient *http.Client
	now        func() time.Time
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

// WithClock overrides the timestamp source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient constructs a client for the configured gateway.
func NewClient(cfg config.AliExpress, opts ...Option) *Client {
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Config exposes the regional defaults the client was built with.
func (c *Client) Config() config.AliExpress {
	return c.cfg
}

// Call issues a signed POST for the given API method. Business parameters
// with nil values are dropped; map- or slice-valued parameters are serialized
// as JSON text, everything else as its string form.
func (c *Client) Call(ctx context.Context, method string, bizParams map[string]any) (map[string]any, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	params := map[string]string{
		"app_key":     c.cfg.AppKey,
		"method":      method,
		"sign_method": signMethod,
		"timestamp":   strconv.FormatInt(c.now().UnixMilli(), 10),
		"v":           apiVersion,
		"simplify":    "true",
	}
	if c.cfg.AccessToken != "" {
		params["access_token"] = c.cfg.AccessToken
	}
	for key, value := range bizParams {
		if value == nil {
			continue
		}
		serialized, err := serializeParam(value)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "aliexpress", method, fmt.Sprintf("parameter %q", key), err)
		}
		params[key] = serialized
	}
	params["sign"] = Sign(params, c.cfg.AppSecret)

	endpoint := c.cfg.Gateway + "/" + strings.ReplaceAll(method, ".", "/")
	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "aliexpress", method, "build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "aliexpress", method, "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "aliexpress", method, "read body", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrUpstream, "aliexpress", method,
			fmt.Sprintf("http %d: %s", resp.StatusCode, summarizeBody(body)), nil)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, services.Wrap(services.ErrUpstream, "aliexpress", method,
			fmt.Sprintf("non-JSON response: %s", summarizeBody(body)), nil)
	}
	if code, msg, found := errorEnvelope(payload); found {
		return nil, services.Wrap(services.ErrUpstream, "aliexpress", method,
			fmt.Sprintf("api error: %s %s", code, msg), nil)
	}
	return payload, nil
}

func (c *Client) checkCredentials() error {
	if c.cfg.AppKey != "" && c.cfg.AppSecret != "" {
		return nil
	}
	status := fmt.Sprintf("app_key=%t app_secret=%t access_token=%t",
		c.cfg.AppKey != "", c.cfg.AppSecret != "", c.cfg.AccessToken != "")
	return services.Wrap(services.ErrConfiguration, "aliexpress", "credentials",
		"missing app key/secret ("+status+")", nil)
}

func serializeParam(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case bool:
		return strconv.FormatBool(typed), nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case map[string]any, []any, []string:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	default:
		return fmt.Sprint(typed), nil
	}
}

// errorEnvelope detects the upstream error shape: an error_response object
// carrying a code or msg.
func errorEnvelope(payload map[string]any) (code, msg string, found bool) {
	envelope, ok := payload["error_response"].(map[string]any)
	if !ok {
		return "", "", false
	}
	code = stringValue(envelope["code"])
	msg = stringValue(envelope["msg"])
	if code == "" && msg == "" {
		return "", "", false
	}
	return code, msg, true
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	const limit = 200
	if len(trimmed) > limit {
		return trimmed[:limit] + "..."
	}
	return trimmed
}
