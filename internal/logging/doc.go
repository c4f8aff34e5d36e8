// Package logging wires slog with the console and JSON handlers used across
// the promto server, plus small attribute helpers so call sites stay terse.
package logging
