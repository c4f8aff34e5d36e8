// Package preflight provides readiness checks for the external pieces the
// service depends on: the ffmpeg binary, affiliate API credentials, the
// OpenAI key, and the working directories.
//
// The serve command runs RunAll at startup and logs failures without
// refusing to start; endpoints that need a missing piece fail per-request.
// The doctor command renders the same results as a table.
package preflight
