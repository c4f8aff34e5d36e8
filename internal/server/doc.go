// Package server exposes the HTTP surface: the JSON API consumed by the
// browser frontend, the static video mount, and the health probe. Handlers
// stay thin; they decode, delegate to a domain component, and encode.
package server
