package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"promto/internal/services"
)

const (
	browserUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	acceptLanguage      = "en-US,en;q=0.9"
	defaultFetchTimeout = 60 * time.Second
	defaultContentType  = "image/jpeg"
)

// Image is a downloaded product image.
type Image struct {
	Bytes       []byte
	ContentType string
}

// DataURL encodes the image for inline use in a vision prompt.
func (img Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.ContentType, base64.StdEncoding.EncodeToString(img.Bytes))
}

// Fetcher downloads images.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher constructs an image fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	fetcher := &Fetcher{httpClient: &http.Client{Timeout: defaultFetchTimeout}}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// FetcherOption customizes the fetcher.
type FetcherOption func(*Fetcher)

// WithFetchClient overrides the default HTTP client.
func WithFetchClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// Download fetches the image with browser-like headers and returns the bytes
// plus the reported content type (image/jpeg when absent).
func (f *Fetcher) Download(ctx context.Context, imageURL string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return Image{}, services.Wrap(services.ErrValidation, "media", "download image", "build request", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Image{}, services.Wrap(services.ErrUpstream, "media", "download image", "http request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Image{}, services.Wrap(services.ErrUpstream, "media", "download image",
			fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, services.Wrap(services.ErrUpstream, "media", "download image", "read body", err)
	}
	if len(data) == 0 {
		return Image{}, services.Wrap(services.ErrUpstream, "media", "download image", "empty body", nil)
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = defaultContentType
	}
	return Image{Bytes: data, ContentType: contentType}, nil
}
