package products

import (
	"strconv"
	"strings"
)

// Candidate is one normalized product record. A Candidate without a URL can
// never become a final selection.
type Candidate struct {
	ID    string
	Title string
	URL   string
}

// rootProbes lists the known response envelopes in priority order. The first
// probe returning a non-nil object wins.
var rootProbes = []func(map[string]any) map[string]any{
	func(m map[string]any) map[string]any { return dig(m, "resp_result", "result") },
	func(m map[string]any) map[string]any {
		return dig(m, "aliexpress_affiliate_product_query_response", "resp_result", "result")
	},
	func(m map[string]any) map[string]any {
		return dig(m, "aliexpress_affiliate_product_search_response", "resp_result", "result")
	},
}

// Extract returns the ordered product records found in an arbitrarily shaped
// upstream payload. It never fails; an unrecognized shape yields an empty
// slice.
func Extract(payload map[string]any) []map[string]any {
	root := respRoot(payload)
	if root == nil {
		return nil
	}
	if list := asObjectList(root["products"]); len(list) > 0 {
		return list
	}
	if wrapper, ok := root["products"].(map[string]any); ok {
		if list := asObjectList(wrapper["product"]); len(list) > 0 {
			return list
		}
	}
	if list := asObjectList(root["items"]); len(list) > 0 {
		return list
	}
	if list := asObjectList(root["result_list"]); len(list) > 0 {
		return list
	}
	return nil
}

// Canonicalize maps one raw record onto a Candidate, probing the alternative
// field names the upstream uses across response variants.
func Canonicalize(record map[string]any) Candidate {
	return Candidate{
		ID:    firstString(record, "product_id", "item_id", "id"),
		Title: firstString(record, "product_title", "title"),
		URL: firstString(record,
			"promotion_link",
			"product_detail_url",
			"product_url",
			"detail_url",
			"url",
			"promotion_url",
		),
	}
}

// CanonicalizeAll preserves upstream order.
func CanonicalizeAll(records []map[string]any) []Candidate {
	out := make([]Candidate, 0, len(records))
	for _, record := range records {
		out = append(out, Canonicalize(record))
	}
	return out
}

func respRoot(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	for _, probe := range rootProbes {
		if root := probe(payload); root != nil {
			return root
		}
	}
	return nil
}

func dig(m map[string]any, keys ...string) map[string]any {
	current := m
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func asObjectList(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			out = append(out, record)
		}
	}
	return out
}

func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := record[key]
		if !ok {
			continue
		}
		switch typed := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(typed); trimmed != "" {
				return trimmed
			}
		case float64:
			// Numeric IDs arrive as JSON numbers.
			if typed == float64(int64(typed)) {
				return strconv.FormatInt(int64(typed), 10)
			}
			return strconv.FormatFloat(typed, 'f', -1, 64)
		}
	}
	return ""
}
