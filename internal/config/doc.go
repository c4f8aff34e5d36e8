// Package config loads, normalizes, and validates promto configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the environment surface the
// server documents: APP_KEY, APP_SECRET, ACCESS_TOKEN, ALI_API_GATEWAY,
// TARGET_LANGUAGE, TARGET_CURRENCY, SHIP_TO_COUNTRY, OPENAI_API_KEY, PORT.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical defaults, and clear validation errors.
package config
