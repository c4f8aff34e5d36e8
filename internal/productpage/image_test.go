package productpage_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"promto/internal/productpage"
	"promto/internal/services"
)

func TestExtractMainImageProbeOrder(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og image wins over everything",
			html: `<html><head>
				<meta property="og:image" content="https://img.example/og.jpg">
				<meta name="twitter:image" content="https://img.example/tw.jpg">
				</head><body></body></html>`,
			want: "https://img.example/og.jpg",
		},
		{
			name: "og image via name attribute",
			html: `<html><head><meta name="og:image" content="https://img.example/og2.jpg"></head></html>`,
			want: "https://img.example/og2.jpg",
		},
		{
			name: "twitter image second",
			html: `<html><head>
				<meta name="twitter:image" content="https://img.example/tw.jpg">
				</head></html>`,
			want: "https://img.example/tw.jpg",
		},
		{
			name: "structured data string",
			html: `<html><head><script type="application/ld+json">{"image":"https://img.example/sd.jpg"}</script></head></html>`,
			want: "https://img.example/sd.jpg",
		},
		{
			name: "structured data array",
			html: `<html><head><script type="application/ld+json">{"image":["https://img.example/a.jpg","https://img.example/b.jpg"]}</script></head></html>`,
			want: "https://img.example/a.jpg",
		},
		{
			name: "imagePath pattern",
			html: `<html><body><script>window.runParams={"imagePath":"https://img.example/run.jpg"}</script></body></html>`,
			want: "https://img.example/run.jpg",
		},
		{
			name: "raw cdn url",
			html: `<html><body>see https://ae01.alicdn.com/kf/abc123.jpg now</body></html>`,
			want: "https://ae01.alicdn.com/kf/abc123.jpg",
		},
		{
			name: "scheme-relative og image upgraded",
			html: `<html><head><meta property="og:image" content="//img.example/og.jpg"></head></html>`,
			want: "https://img.example/og.jpg",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := productpage.ExtractMainImage(tc.html)
			if err != nil {
				t.Fatalf("ExtractMainImage returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractMainImageIgnoresBrokenStructuredData(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{not json</script>
		<script type="application/ld+json">{"image":"https://img.example/ok.jpg"}</script>
		</head></html>`
	got, err := productpage.ExtractMainImage(html)
	if err != nil {
		t.Fatalf("ExtractMainImage returned error: %v", err)
	}
	if got != "https://img.example/ok.jpg" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractMainImageNotFound(t *testing.T) {
	_, err := productpage.ExtractMainImage(`<html><body>nothing here</body></html>`)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestMainImageFetchesWithBrowserHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" || ua == "Go-http-client/1.1" {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		if r.Header.Get("Accept-Language") == "" {
			t.Error("expected accept-language header")
		}
		io.WriteString(w, `<html><head><meta property="og:image" content="https://img.example/x.jpg"></head></html>`)
	}))
	defer server.Close()

	finder := productpage.NewFinder()
	got, err := finder.MainImage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("MainImage returned error: %v", err)
	}
	if got != "https://img.example/x.jpg" {
		t.Fatalf("got %q", got)
	}
}

func TestMainImageSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	finder := productpage.NewFinder()
	if _, err := finder.MainImage(context.Background(), server.URL); !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
