package search

import (
	"context"
	"log/slog"

	"promto/internal/logging"
	"promto/internal/products"
	"promto/internal/services"
	"promto/internal/services/aliexpress"
)

const (
	productQueryMethod = "aliexpress.affiliate.product.query"
	productFields      = "product_id,product_title,product_detail_url,promotion_link"
	searchPageSize     = 50
	debugPageSize      = 5
	defaultDebugQuery  = "laptop stand"
)

// Finder resolves a search keyword to the most relevant product.
type Finder struct {
	client *aliexpress.Client
	logger *slog.Logger
}

// NewFinder constructs a finder around the signed client.
func NewFinder(client *aliexpress.Client, logger *slog.Logger) *Finder {
	return &Finder{
		client: client,
		logger: logging.NewComponentLogger(logger, "search"),
	}
}

// Find queries the affiliate API for the keyword and ranks the extracted
// candidates. A missing keyword is a validation error; an empty or
// URL-less result set is a well-formed no-match, not an error.
func (f *Finder) Find(ctx context.Context, keyword string) (products.Match, error) {
	if keyword == "" {
		return products.Match{}, services.Wrap(services.ErrValidation, "search", "find", "keyword required", nil)
	}
	payload, err := f.client.Call(ctx, productQueryMethod, f.queryParams(keyword, searchPageSize))
	if err != nil {
		return products.Match{}, err
	}

	candidates := products.CanonicalizeAll(products.Extract(payload))
	match := products.SelectBest(candidates, keyword)
	f.logger.Info("keyword ranked",
		logging.String("keyword", keyword),
		logging.Int("candidates", len(candidates)),
		logging.Bool("found", match.Found),
		logging.Float64("score", match.Score))
	return match, nil
}

// Debug issues a small raw query and returns the undecoded upstream payload.
func (f *Finder) Debug(ctx context.Context, keywords string) (map[string]any, error) {
	if keywords == "" {
		keywords = defaultDebugQuery
	}
	return f.client.Call(ctx, productQueryMethod, f.queryParams(keywords, debugPageSize))
}

func (f *Finder) queryParams(keyword string, pageSize int) map[string]any {
	cfg := f.client.Config()
	return map[string]any{
		"keywords":        keyword,
		"search_keyword":  keyword,
		"page_size":       pageSize,
		"page_no":         1,
		"target_language": cfg.TargetLanguage,
		"target_currency": cfg.TargetCurrency,
		"ship_to_country": cfg.ShipToCountry,
		"fields":          productFields,
	}
}
