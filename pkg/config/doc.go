// Package config handles configuration management for plate.
// It merges the embedded defaults, the user's TOML file and PLATE_*
// environment variables into a single Config.
package config
