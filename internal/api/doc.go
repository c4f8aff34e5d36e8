// Package api defines the JSON request and response shapes exchanged with
// browser clients. Types here mirror the wire format exactly; internal
// packages convert to and from them at the handler boundary.
package api
