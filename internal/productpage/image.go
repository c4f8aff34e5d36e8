package productpage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"promto/internal/services"
)

const (
	// browserUserAgent keeps CDN frontends from serving bot interstitials.
	browserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	acceptLanguage     = "en-US,en;q=0.9"
	defaultHTTPTimeout = 30 * time.Second
)

var (
	imagePathPattern = regexp.MustCompile(`(?i)"imagePath"\s*:\s*"([^"]+)"`)
	cdnImagePattern  = regexp.MustCompile(`(?i)https?://ae01\.alicdn\.com/[^\s"'<>]+`)
)

// Finder fetches product pages and extracts their main image URL.
type Finder struct {
	httpClient *http.Client
}

// Option customizes the finder.
type Option func(*Finder)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Finder) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// NewFinder constructs an image finder.
func NewFinder(opts ...Option) *Finder {
	finder := &Finder{httpClient: &http.Client{Timeout: defaultHTTPTimeout}}
	for _, opt := range opts {
		opt(finder)
	}
	return finder
}

// MainImage returns the best product image URL for the page, probing the
// known metadata locations in priority order.
func (f *Finder) MainImage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "productpage", "fetch", "build request", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "productpage", "fetch", "http request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrUpstream, "productpage", "fetch",
			fmt.Sprintf("http %d", resp.StatusCode), nil)
	}
	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "productpage", "fetch", "read body", err)
	}
	image, err := ExtractMainImage(string(html))
	if err != nil {
		return "", err
	}
	return image, nil
}

// metaProbes are the HTML extraction attempts in priority order.
var metaProbes = []func(doc *goquery.Document, html string) string{
	func(doc *goquery.Document, _ string) string {
		return firstAttr(doc, "content",
			`meta[property="og:image"]`, `meta[name="og:image"]`)
	},
	func(doc *goquery.Document, _ string) string {
		return firstAttr(doc, "content",
			`meta[name="twitter:image"]`, `meta[property="twitter:image"]`)
	},
	structuredDataImage,
	func(_ *goquery.Document, html string) string {
		if match := imagePathPattern.FindStringSubmatch(html); match != nil {
			return match[1]
		}
		return ""
	},
	func(_ *goquery.Document, html string) string {
		return cdnImagePattern.FindString(html)
	},
}

// ExtractMainImage probes the raw HTML for the main product image.
func ExtractMainImage(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "productpage", "parse", "parse html", err)
	}
	for _, probe := range metaProbes {
		if image := probe(doc, html); image != "" {
			return NormalizeImageURL(image), nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "productpage", "extract", "main image not found", nil)
}

// NormalizeImageURL upgrades scheme-relative URLs to https.
func NormalizeImageURL(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}

func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, selector := range selectors {
		if value, ok := doc.Find(selector).First().Attr(attr); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// structuredDataImage probes ld+json script blocks for an image field, which
// may be a string or an array of strings.
func structuredDataImage(doc *goquery.Document, _ string) string {
	var image string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data struct {
			Image any `json:"image"`
		}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		switch typed := data.Image.(type) {
		case string:
			image = typed
		case []any:
			if len(typed) > 0 {
				if first, ok := typed[0].(string); ok {
					image = first
				}
			}
		}
		return image == ""
	})
	return image
}
