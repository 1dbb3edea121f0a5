// Package config loads and validates application settings from an optional
// config.yaml, an optional .env file and IDEAFORGE_-prefixed environment
// variables, in increasing order of precedence.
package config
