// Package config loads, normalizes, and validates Play Beat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PLAYBEAT_API_TOKEN and PLAYBEAT_NTFY_TOPIC (optionally sourced from a .env
// file). The Config type centralizes every knob the daemon and CLI need, so
// data, media, and log directories are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
