// Package config loads, normalizes, and validates undisorder configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ACOUSTID_API_KEY, optionally sourced from a .env file next to the config.
// The Config type centralizes the target collections, index location, import
// defaults and collaborator settings so the CLI resolves them in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
