// Package aliexpress implements the signed form-encoded client for the
// AliExpress affiliate open API.
//
// Every call is HMAC-SHA256 signed over the lexicographically sorted
// key+value concatenation of all parameters; the uppercase hex signature must
// match the upstream verifier bit for bit. Requests are never retried.
package aliexpress
