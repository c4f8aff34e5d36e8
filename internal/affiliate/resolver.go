package affiliate

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"promto/internal/logging"
	"promto/internal/services"
	"promto/internal/services/aliexpress"
)

const linkGenerateMethod = "aliexpress.affiliate.link.generate"

var (
	itemPathPattern = regexp.MustCompile(`(?i)/item/(\d+)\.html`)
	trackingPattern = regexp.MustCompile(`(?i)s\.click\.aliexpress\.com`)
)

// Link is a resolved affiliate link.
type Link struct {
	URL         string
	Via         string
	IsAffiliate bool
}

// Resolver generates affiliate links for product URLs.
type Resolver struct {
	client        *aliexpress.Client
	shipToCountry string
	trackingID    string
	logger        *slog.Logger
}

// NewResolver constructs a resolver around the signed client.
func NewResolver(client *aliexpress.Client, logger *slog.Logger) *Resolver {
	cfg := client.Config()
	return &Resolver{
		client:        client,
		shipToCountry: cfg.ShipToCountry,
		trackingID:    cfg.TrackingID,
		logger:        logging.NewComponentLogger(logger, "affiliate"),
	}
}

// Resolve normalizes the product URL, requests link generation, and picks the
// best harvested link. A response without any link yields ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, productURL string) (Link, error) {
	normalized := NormalizeItemURL(productURL)
	payload, err := r.client.Call(ctx, linkGenerateMethod, map[string]any{
		"ship_to_country":     r.shipToCountry,
		"promotion_link_type": "0",
		"source_values":       normalized,
		"tracking_id":         r.trackingID,
	})
	if err != nil {
		return Link{}, err
	}

	links := CollectLinks(payload)
	best := PickBest(links)
	if best == "" {
		return Link{}, services.Wrap(services.ErrNotFound, "affiliate", "resolve",
			"no link found in API response", nil)
	}
	r.logger.Debug("affiliate link resolved",
		logging.Int("harvested", len(links)),
		logging.Bool("tracking", IsTracking(best)))
	return Link{URL: best, Via: "generate default", IsAffiliate: IsTracking(best)}, nil
}

// NormalizeItemURL canonicalizes AliExpress product URLs to the
// item/{id}.html form. Anything unparseable or off-domain passes through.
func NormalizeItemURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.Contains(parsed.Hostname(), "aliexpress.com") {
		return raw
	}
	match := itemPathPattern.FindStringSubmatch(parsed.Path)
	if match == nil {
		return raw
	}
	return "https://www.aliexpress.com/item/" + match[1] + ".html"
}

// linkKeys are the scalar field names carrying a single link value.
var linkKeys = []string{"promotion_link", "promotion_short_link", "promotionUrl"}

// CollectLinks walks the decoded response tree depth first, gathering every
// value found under a known link field name at any depth. Map keys are
// visited in sorted order so harvesting is deterministic; duplicates keep
// their first position.
func CollectLinks(payload any) []string {
	var links []string
	seen := map[string]struct{}{}
	var walk func(node any)
	walk = func(node any) {
		switch typed := node.(type) {
		case map[string]any:
			for _, key := range linkKeys {
				if value, ok := typed[key].(string); ok && value != "" {
					if _, dup := seen[value]; !dup {
						seen[value] = struct{}{}
						links = append(links, value)
					}
				}
			}
			for _, key := range sortedKeys(typed) {
				walk(typed[key])
			}
		case []any:
			for _, item := range typed {
				walk(item)
			}
		}
	}
	walk(payload)
	return links
}

// PickBest prefers the first link on the tracking domain; failing that, the
// first harvested link.
func PickBest(links []string) string {
	for _, link := range links {
		if IsTracking(link) {
			return link
		}
	}
	if len(links) > 0 {
		return links[0]
	}
	return ""
}

// IsTracking reports whether the link points at the affiliate tracking
// domain rather than a plain product page.
func IsTracking(link string) bool {
	return trackingPattern.MatchString(link)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
