// Package services holds the shared error taxonomy and request metadata
// helpers used by the upstream API clients and the HTTP layer.
package services
