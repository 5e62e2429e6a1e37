// Package config handles configuration loading, parsing, and validation
// from environment variables (IDEAFLOW_ prefix) and an optional config file.
// It provides type-safe access to the settings of the HTTP server, database,
// authentication, LLM backend, Redis quota store and plan quotas.
package config
