package aliexpress_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"promto/internal/config"
	"promto/internal/services"
	"promto/internal/services/aliexpress"
)

func testConfig(gateway string) config.AliExpress {
	return config.AliExpress{
		AppKey:        "test-key",
		AppSecret:     "test-secret",
		Gateway:       gateway,
		ShipToCountry: "US",
	}
}

func TestSignDeterministicAndSensitive(t *testing.T) {
	params := map[string]string{
		"app_key":   "k",
		"method":    "aliexpress.affiliate.product.query",
		"timestamp": "1700000000000",
		"keywords":  "wireless earbuds",
	}
	first := aliexpress.Sign(params, "secret")
	second := aliexpress.Sign(params, "secret")
	if first != second {
		t.Fatalf("signature not deterministic: %s != %s", first, second)
	}
	if first != strings.ToUpper(first) {
		t.Fatalf("signature not uppercase: %s", first)
	}
	if len(first) != 64 {
		t.Fatalf("unexpected signature length: %d", len(first))
	}

	params["keywords"] = "wireless earbuds pro"
	changed := aliexpress.Sign(params, "secret")
	if changed == first {
		t.Fatal("changing a parameter value must change the signature")
	}
	if aliexpress.Sign(params, "other-secret") == changed {
		t.Fatal("changing the secret must change the signature")
	}
}

func TestCallFailsFastWithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected without credentials")
	}))
	defer server.Close()

	client := aliexpress.NewClient(config.AliExpress{Gateway: server.URL})
	_, err := client.Call(context.Background(), "aliexpress.affiliate.product.query", nil)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "app_key=false") || !strings.Contains(err.Error(), "app_secret=false") {
		t.Fatalf("expected credential presence report, got %v", err)
	}
	if strings.Contains(err.Error(), "test-secret") {
		t.Fatal("error must not leak credential values")
	}
}

func TestCallSignsAndPostsForm(t *testing.T) {
	var gotPath string
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			t.Errorf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := r.Body.Close(); err != nil {
			t.Errorf("close body: %v", err)
		}
		gotForm = map[string]string{}
		for _, pair := range strings.Split(string(body), "&") {
			key, value, _ := strings.Cut(pair, "=")
			gotForm[key] = value
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"resp_result":{"result":{"products":[]}}}`)
	}))
	defer server.Close()

	fixed := time.UnixMilli(1700000000000)
	client := aliexpress.NewClient(testConfig(server.URL), aliexpress.WithClock(func() time.Time { return fixed }))
	payload, err := client.Call(context.Background(), "aliexpress.affiliate.product.query", map[string]any{
		"keywords":  "earbuds",
		"page_size": 50,
		"dropped":   nil,
		"fields":    []string{"product_id", "product_title"},
	})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if payload == nil {
		t.Fatal("expected decoded payload")
	}
	if gotPath != "/aliexpress/affiliate/product/query" {
		t.Fatalf("method dots not mapped to path: %q", gotPath)
	}
	if gotForm["timestamp"] != "1700000000000" {
		t.Fatalf("unexpected timestamp: %q", gotForm["timestamp"])
	}
	if gotForm["sign_method"] != "hmac-sha256" || gotForm["v"] != "2.0" || gotForm["simplify"] != "true" {
		t.Fatalf("missing public params: %v", gotForm)
	}
	if _, ok := gotForm["dropped"]; ok {
		t.Fatal("nil parameter must be dropped")
	}
	if gotForm["page_size"] != "50" {
		t.Fatalf("unexpected page_size: %q", gotForm["page_size"])
	}
	if _, ok := gotForm["sign"]; !ok {
		t.Fatal("request missing signature")
	}
	if _, ok := gotForm["access_token"]; ok {
		t.Fatal("access_token must be omitted when not configured")
	}
}

func TestCallSendsAccessTokenWhenConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostFormValue("access_token") != "token-123" {
			t.Errorf("missing access_token, form: %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.AccessToken = "token-123"
	client := aliexpress.NewClient(cfg)
	if _, err := client.Call(context.Background(), "aliexpress.affiliate.link.generate", nil); err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
}

func TestCallSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway sad", http.StatusBadGateway)
	}))
	defer server.Close()

	client := aliexpress.NewClient(testConfig(server.URL))
	_, err := client.Call(context.Background(), "m", nil)
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "http 502") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestCallSurfacesNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>maintenance</html>")
	}))
	defer server.Close()

	client := aliexpress.NewClient(testConfig(server.URL))
	_, err := client.Call(context.Background(), "m", nil)
	if !errors.Is(err, services.ErrUpstream) || !strings.Contains(err.Error(), "non-JSON") {
		t.Fatalf("expected non-JSON upstream error, got %v", err)
	}
}

func TestCallSurfacesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"error_response":{"code":"15","msg":"Remote service error"}}`)
	}))
	defer server.Close()

	client := aliexpress.NewClient(testConfig(server.URL))
	_, err := client.Call(context.Background(), "m", nil)
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "15") || !strings.Contains(err.Error(), "Remote service error") {
		t.Fatalf("expected envelope code and message, got %v", err)
	}
}
