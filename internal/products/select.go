package products

import (
	"math"
	"sort"
	"strings"
)

// No-match reason codes surfaced to API callers.
const (
	ReasonEmptyAfterExtract = "empty_after_extract"
	ReasonNoURLAnywhere     = "no_url_anywhere"
)

// Confidence scores assigned by the fallback tiers.
const (
	tokenMatchConfidence = 0.8
	anyURLConfidence     = 0.5
)

// Match is the outcome of ranking a candidate list against a query.
type Match struct {
	Found     bool
	Candidate Candidate
	Score     float64
	Reason    string
}

type scoredCandidate struct {
	Candidate
	score float64
}

// SelectBest picks the best candidate for the query, falling through a fixed
// tier ladder:
//
//  1. highest-scoring candidate with a URL (stable sort keeps upstream order
//     on ties)
//  2. first candidate with a URL whose normalized title contains any query
//     token as a substring, at fixed confidence 0.8
//  3. first candidate with any URL at all, at fixed confidence 0.5
//  4. no match, with a reason separating "nothing extractable" from "nothing
//     had a usable url"
//
// The later tiers can hand back a loosely related product on purpose; the
// confidence score is the caller's gate.
func SelectBest(candidates []Candidate, query string) Match {
	if len(candidates) == 0 {
		return Match{Reason: ReasonEmptyAfterExtract}
	}

	scored := make([]scoredCandidate, len(candidates))
	for i, candidate := range candidates {
		scored[i] = scoredCandidate{Candidate: candidate, score: Score(candidate.Title, query)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for _, entry := range scored {
		if entry.URL != "" {
			return Match{Found: true, Candidate: entry.Candidate, Score: round2(entry.score)}
		}
	}

	for _, candidate := range candidates {
		if candidate.URL == "" {
			continue
		}
		title := NormalizeText(candidate.Title)
		for _, token := range Tokenize(query) {
			if strings.Contains(title, token) {
				return Match{Found: true, Candidate: candidate, Score: tokenMatchConfidence}
			}
		}
	}

	for _, candidate := range candidates {
		if candidate.URL != "" {
			return Match{Found: true, Candidate: candidate, Score: anyURLConfidence}
		}
	}

	return Match{Reason: ReasonNoURLAnywhere}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
