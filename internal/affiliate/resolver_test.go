package affiliate_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promto/internal/affiliate"
	"promto/internal/config"
	"promto/internal/services"
	"promto/internal/services/aliexpress"
)

func TestNormalizeItemURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "canonicalizes aliexpress item url",
			in:   "https://he.aliexpress.com/item/1005006123456789.html?spm=a2g0o.productlist",
			want: "https://www.aliexpress.com/item/1005006123456789.html",
		},
		{
			name: "case insensitive path match",
			in:   "https://www.aliexpress.com/ITEM/42.HTML",
			want: "https://www.aliexpress.com/item/42.html",
		},
		{
			name: "other host passes through",
			in:   "https://example.com/item/42.html",
			want: "https://example.com/item/42.html",
		},
		{
			name: "aliexpress without item path passes through",
			in:   "https://www.aliexpress.com/store/12345",
			want: "https://www.aliexpress.com/store/12345",
		},
		{
			name: "unparseable passes through",
			in:   "http://[broken",
			want: "http://[broken",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := affiliate.NormalizeItemURL(tc.in); got != tc.want {
				t.Fatalf("NormalizeItemURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCollectLinksWalksDeepAndDeduplicates(t *testing.T) {
	raw := `{
		"aliexpress_affiliate_link_generate_response": {
			"resp_result": {
				"result": {
					"promotion_links": {
						"promotion_link": [
							{"promotion_link": "https://s.click.aliexpress.com/e/_abc"},
							{"promotion_link": "https://s.click.aliexpress.com/e/_abc"},
							{"promotion_short_link": "https://short.example/x"}
						]
					},
					"extra": {"promotionUrl": "https://plain.example/item"}
				}
			}
		}
	}`
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	links := affiliate.CollectLinks(payload)
	if len(links) != 3 {
		t.Fatalf("expected 3 unique links, got %v", links)
	}
}

func TestPickBestPrefersTrackingDomain(t *testing.T) {
	links := []string{
		"https://www.aliexpress.com/item/1.html",
		"https://s.click.aliexpress.com/e/_xyz",
	}
	if got := affiliate.PickBest(links); got != "https://s.click.aliexpress.com/e/_xyz" {
		t.Fatalf("unexpected pick: %q", got)
	}
	if got := affiliate.PickBest([]string{"https://plain.example"}); got != "https://plain.example" {
		t.Fatalf("expected first link fallback, got %q", got)
	}
	if got := affiliate.PickBest(nil); got != "" {
		t.Fatalf("expected empty pick, got %q", got)
	}
}

func TestResolveExtractsNestedTrackingLink(t *testing.T) {
	response := `{
		"result": {
			"products": [
				{"promotion_link": "https://s.click.aliexpress.com/x"},
				{"promotionUrl": "https://www.aliexpress.com/item/9.html"}
			]
		}
	}`
	var gotSource string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/aliexpress/affiliate/link/generate") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotSource = r.PostFormValue("source_values")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, response)
	}))
	defer server.Close()

	cfg := config.AliExpress{
		AppKey:        "k",
		AppSecret:     "s",
		Gateway:       server.URL,
		ShipToCountry: "US",
		TrackingID:    "default",
	}
	resolver := affiliate.NewResolver(aliexpress.NewClient(cfg), nil)
	link, err := resolver.Resolve(context.Background(), "https://he.aliexpress.com/item/9.html?src=feed")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if link.URL != "https://s.click.aliexpress.com/x" {
		t.Fatalf("expected tracking link selected, got %q", link.URL)
	}
	if !link.IsAffiliate {
		t.Fatal("expected affiliate flag set")
	}
	if gotSource != "https://www.aliexpress.com/item/9.html" {
		t.Fatalf("expected normalized source url, got %q", gotSource)
	}
}

func TestResolveNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"result":{"message":"ok but empty"}}`)
	}))
	defer server.Close()

	cfg := config.AliExpress{AppKey: "k", AppSecret: "s", Gateway: server.URL}
	resolver := affiliate.NewResolver(aliexpress.NewClient(cfg), nil)
	_, err := resolver.Resolve(context.Background(), "https://www.aliexpress.com/item/1.html")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
