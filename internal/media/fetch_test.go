package media_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promto/internal/media"
	"promto/internal/services"
)

func TestDownloadReturnsBytesAndContentType(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
			t.Errorf("expected browser user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := media.NewFetcher()
	img, err := fetcher.Download(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("unexpected content type: %q", img.ContentType)
	}
	if len(img.Bytes) != len(payload) {
		t.Fatalf("unexpected byte count: %d", len(img.Bytes))
	}
}

func TestDownloadDefaultsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write([]byte("jpeg-ish"))
	}))
	defer server.Close()

	fetcher := media.NewFetcher()
	img, err := fetcher.Download(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if img.ContentType != "image/jpeg" {
		t.Fatalf("expected default content type, got %q", img.ContentType)
	}
}

func TestDownloadSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := media.NewFetcher()
	if _, err := fetcher.Download(context.Background(), server.URL); !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestDataURLEncoding(t *testing.T) {
	img := media.Image{Bytes: []byte{1, 2, 3}, ContentType: "image/png"}
	got := img.DataURL()
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("unexpected data url prefix: %q", got)
	}
	if !strings.HasSuffix(got, "AQID") {
		t.Fatalf("unexpected base64 payload: %q", got)
	}
}
