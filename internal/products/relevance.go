package products

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Scoring weights. Substring match dominates token overlap (4 vs at most 3)
// so an exact phrase hit always outranks a pure token-overlap match.
const (
	substringWeight = 4.0
	overlapWeight   = 3.0
	overlapTokenCap = 6
)

// stopWords holds English and Hebrew function words ignored when counting
// query-token overlap.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "for": {}, "with": {}, "a": {}, "an": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "by": {}, "from": {}, "at": {},
	"is": {}, "are": {},
	"של": {}, "עם": {}, "או": {}, "ו": {}, "על": {}, "אל": {}, "את": {},
	"זה": {}, "זו": {}, "אלה": {}, "ל": {}, "מ": {}, "לא": {},
}

// NormalizeText lowercases, applies NFKC, strips every rune that is not a
// letter, digit, or whitespace, and collapses whitespace. It is idempotent.
func NormalizeText(s string) string {
	s = norm.NFKC.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits the normalized form of s into whitespace-delimited tokens.
func Tokenize(s string) []string {
	normalized := NormalizeText(s)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// Score computes the relevance of a product title to the search query.
//
// The normalized title earns substringWeight when it contains the normalized
// query whole, plus the fraction of non-stop-word query tokens present in the
// title's token set, scaled to overlapWeight. The fraction's denominator is
// capped at overlapTokenCap so long queries are not penalized.
func Score(title, query string) float64 {
	t := NormalizeText(title)
	q := NormalizeText(query)
	if t == "" || q == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(t, q) {
		score += substringWeight
	}

	titleTokens := make(map[string]struct{})
	for _, token := range strings.Split(t, " ") {
		titleTokens[token] = struct{}{}
	}

	queryTokens := dropStopWords(strings.Split(q, " "))
	overlap := 0
	for _, token := range queryTokens {
		if _, ok := titleTokens[token]; ok {
			overlap++
		}
	}

	denominator := len(queryTokens)
	if denominator > overlapTokenCap {
		denominator = overlapTokenCap
	}
	if denominator < 1 {
		denominator = 1
	}
	score += float64(overlap) / float64(denominator) * overlapWeight
	return score
}

func dropStopWords(tokens []string) []string {
	out := tokens[:0:0]
	for _, token := range tokens {
		if _, ok := stopWords[token]; !ok {
			out = append(out, token)
		}
	}
	return out
}
