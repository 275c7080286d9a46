// Package main hosts the undisorder CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into scans, import
// runs, index maintenance and configuration scaffolding. Configuration
// resolution, logger setup, the index lock and prompting live here so the
// internal packages stay free of terminal concerns.
package main
