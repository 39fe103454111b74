package config

import "time"

// Default bucket name when STORAGE_BUCKET is not configured.
const DefaultStorageBucket = "Images"

// Fallback email-confirmation redirect used for production builds when no
// explicit redirect URL is configured.
const DefaultProductionRedirect = "https://development-platforms-ca-simon.netlify.app/"

// Config holds runtime settings for the supanews client.
//
// Fields:
//   - BackendURL / BackendKey: endpoint and API key of the managed backend.
//   - StorageBucket: object storage bucket for uploaded images.
//   - StorageAccessKey / StorageSecretKey: credentials for the backend's
//     S3-compatible storage endpoint (default to BackendKey when unset).
//   - StorageRegion: region string the S3 signer requires.
//   - EmailRedirectURL: explicit override for the confirmation redirect.
//   - SiteOrigin: stands in for the page origin when no redirect applies.
//   - SimpleStoragePath: flat test-friendly object keys instead of
//     per-user namespacing.
//   - Production: selects the fixed production redirect fallback.
//   - StartURL: location applied on startup ("/?post=<id>" deep links).
//   - RequestTimeout: per-request deadline for backend calls.
type Config struct {
	BackendURL        string
	BackendKey        string
	StorageBucket     string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageRegion     string
	EmailRedirectURL  string
	SiteOrigin        string
	SimpleStoragePath bool
	Production        bool
	StartURL          string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:54321"
	c.StorageBucket = DefaultStorageBucket
	c.StorageRegion = "us-east-1"
	c.SiteOrigin = "http://localhost:5173"
	c.StartURL = "/"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if present)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.applyFallbacks()
	return cfg
}

// applyFallbacks fills derived values once all sources are merged.
func (c *Config) applyFallbacks() {
	if c.StorageAccessKey == "" {
		c.StorageAccessKey = c.BackendKey
	}
	if c.StorageSecretKey == "" {
		c.StorageSecretKey = c.BackendKey
	}
	if c.StorageBucket == "" {
		c.StorageBucket = DefaultStorageBucket
	}
}

// EmailRedirect resolves the confirmation redirect target: the explicit
// configured URL wins, then the fixed production fallback, then the site
// origin.
func (c *Config) EmailRedirect() string {
	if c.EmailRedirectURL != "" {
		return c.EmailRedirectURL
	}
	if c.Production {
		return DefaultProductionRedirect
	}
	return c.SiteOrigin
}
