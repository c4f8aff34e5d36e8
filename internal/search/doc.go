// Package search drives the keyword-to-product flow: signed product query,
// payload normalization, and relevance ranking.
package search
