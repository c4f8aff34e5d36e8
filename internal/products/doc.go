// Package products normalizes AliExpress affiliate search payloads into flat
// candidate records and ranks them against the search keyword.
//
// The upstream JSON shape differs by API method and is not contractually
// stable, so extraction probes a fixed priority list of known envelopes and
// field names instead of validating a schema. Ranking is a best-effort
// relevance score with tiered fallbacks that prefer returning something
// clickable over a hard failure; callers gate on the returned confidence.
package products
