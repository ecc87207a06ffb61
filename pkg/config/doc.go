// Package config handles configuration management for modpack.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line overrides.
package config
