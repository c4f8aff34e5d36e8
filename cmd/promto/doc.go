// Package main hosts the promto CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the HTTP service lifecycle (serve),
// environment diagnostics (doctor), and configuration scaffolding (config
// init, config validate). Heavy lifting stays in the internal packages;
// commands here only resolve configuration, wire components, and present
// output.
package main
