package products_test

import (
	"testing"

	"promto/internal/products"
)

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"Wireless Earbuds, PRO!",
		"  spaced   out\ttext ",
		"מטען אלחוטי – מהיר",
		"ﬁlter Ｃase", // NFKC compatibility forms
		"",
	}
	for _, input := range inputs {
		once := products.NormalizeText(input)
		twice := products.NormalizeText(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeTextStripsPunctuationAndCase(t *testing.T) {
	got := products.NormalizeText("Wireless, EARBUDS!!  (Pro)")
	if got != "wireless earbuds pro" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestScoreInvariantUnderCaseAndPunctuation(t *testing.T) {
	base := products.Score("Wireless Earbuds Pro", "wireless earbuds")
	shouted := products.Score("WIRELESS, EARBUDS... pro!", "Wireless EARBUDS?")
	if base != shouted {
		t.Fatalf("score changed under case/punctuation: %v != %v", base, shouted)
	}
}

func TestScoreSubstringDominatesTokenOverlap(t *testing.T) {
	substring := products.Score("Wireless Earbuds Pro", "wireless earbuds")
	overlapOnly := products.Score("Earbuds Wireless Charging Case", "wireless earbuds")
	if substring <= overlapOnly {
		t.Fatalf("substring match %v should outrank overlap-only %v", substring, overlapOnly)
	}
	// Full overlap without a substring hit tops out below a bare substring hit.
	if overlapOnly >= 4 {
		t.Fatalf("overlap-only score %v should stay below substring weight", overlapOnly)
	}
}

func TestScoreMonotonicUnderAddedMatchingToken(t *testing.T) {
	title := "wireless earbuds bluetooth headset"
	before := products.Score(title, "wireless bluetooth")
	after := products.Score(title, "wireless bluetooth headset")
	if after < before {
		t.Fatalf("appending matching token decreased score: %v -> %v", before, after)
	}
}

func TestScoreStopWordsIgnored(t *testing.T) {
	with := products.Score("case for phone", "case for the phone")
	without := products.Score("case for phone", "case phone")
	if with != without {
		t.Fatalf("stop words should not affect score: %v != %v", with, without)
	}
}

func TestScoreHebrewStopWords(t *testing.T) {
	// Token order differs from both queries so neither gets a substring hit
	// and only the overlap term is in play.
	with := products.Score("אלחוטי מטען לטלפון", "מטען של אלחוטי")
	without := products.Score("אלחוטי מטען לטלפון", "מטען אלחוטי")
	if with != without {
		t.Fatalf("hebrew stop words should not affect score: %v != %v", with, without)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	if got := products.Score("", "query"); got != 0 {
		t.Fatalf("empty title should score 0, got %v", got)
	}
	if got := products.Score("title", ""); got != 0 {
		t.Fatalf("empty query should score 0, got %v", got)
	}
	if got := products.Score("!!!", "???"); got != 0 {
		t.Fatalf("punctuation-only inputs should score 0, got %v", got)
	}
}

func TestScoreLongQueryCapNotPenalized(t *testing.T) {
	title := "one two three four five six seven eight"
	// Eight meaningful tokens, all present: the denominator caps at 6, so the
	// overlap contribution exceeds its nominal weight instead of shrinking.
	got := products.Score(title, title)
	want := 4 + 8.0/6.0*3.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("capped overlap score %v, want %v", got, want)
	}
}

func TestTokenize(t *testing.T) {
	tokens := products.Tokenize("Wireless, Earbuds PRO")
	if len(tokens) != 3 || tokens[0] != "wireless" || tokens[2] != "pro" {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
	if tokens := products.Tokenize("   "); tokens != nil {
		t.Fatalf("expected nil tokens for blank input, got %v", tokens)
	}
}
