// Package config loads runtime configuration for the supanews client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader accepts the request timeout as a Go duration string:
//
//	{
//	  "backend_url": "https://abc.supabase.co",
//	  "backend_key": "anon-key",
//	  "storage_bucket": "Images",
//	  "request_timeout": "10s"
//	}
//
// Primary API
//
//   - type Config                     — all recognized client options
//   - func LoadConfig() *Config      — builds Config by applying every source
//   - func (*Config) EmailRedirect() — resolves the confirmation redirect
package config
