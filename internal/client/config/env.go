package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// after loading an optional .env file from the working directory.
//
// Recognized variables:
//
//	SUPABASE_URL                      backend endpoint URL
//	SUPABASE_ANON_KEY                 backend API key (preferred)
//	SUPABASE_PUBLISHABLE_DEFAULT_KEY  backend API key (fallback name)
//	STORAGE_BUCKET                    object storage bucket
//	S3_ACCESS_KEY / S3_SECRET_KEY     S3-compatible storage credentials
//	S3_REGION                         S3 signing region
//	EMAIL_REDIRECT_TO                 confirmation redirect override
//	SITE_ORIGIN                       origin used in redirect fallback
//	SIMPLE_STORAGE_PATH               flat storage keys (boolean)
//	PROD                              production build flag (boolean)
func parseEnv(cfg *Config) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	setString(&cfg.BackendURL, "SUPABASE_URL")

	// Prefer the anon key if both names are set.
	if v, ok := os.LookupEnv("SUPABASE_ANON_KEY"); ok && v != "" {
		cfg.BackendKey = v
	} else {
		setString(&cfg.BackendKey, "SUPABASE_PUBLISHABLE_DEFAULT_KEY")
	}

	setString(&cfg.StorageBucket, "STORAGE_BUCKET")
	setString(&cfg.StorageAccessKey, "S3_ACCESS_KEY")
	setString(&cfg.StorageSecretKey, "S3_SECRET_KEY")
	setString(&cfg.StorageRegion, "S3_REGION")
	setString(&cfg.EmailRedirectURL, "EMAIL_REDIRECT_TO")
	setString(&cfg.SiteOrigin, "SITE_ORIGIN")
	setBool(&cfg.SimpleStoragePath, "SIMPLE_STORAGE_PATH")
	setBool(&cfg.Production, "PROD")
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, name string) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
