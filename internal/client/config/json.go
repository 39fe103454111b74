package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/supanews/supanews/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The request
// timeout is a string accepted by time.ParseDuration (e.g. "10s"). Pointer
// fields distinguish "absent" from zero values so JSON only overrides what
// it actually sets.
type JsonConfig struct {
	BackendURL        *string `json:"backend_url"`
	BackendKey        *string `json:"backend_key"`
	StorageBucket     *string `json:"storage_bucket"`
	StorageAccessKey  *string `json:"storage_access_key"`
	StorageSecretKey  *string `json:"storage_secret_key"`
	StorageRegion     *string `json:"storage_region"`
	EmailRedirectURL  *string `json:"email_redirect_url"`
	SiteOrigin        *string `json:"site_origin"`
	SimpleStoragePath *bool   `json:"simple_storage_path"`
	Production        *bool   `json:"production"`
	StartURL          *string `json:"start_url"`
	RequestTimeout    *string `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. No file configured means no overlay. Read or
// unmarshal errors panic (caller may recover if desired), matching the
// fail-fast behavior of the flag parser.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.BackendURL, jc.BackendURL)
	overlayString(&cfg.BackendKey, jc.BackendKey)
	overlayString(&cfg.StorageBucket, jc.StorageBucket)
	overlayString(&cfg.StorageAccessKey, jc.StorageAccessKey)
	overlayString(&cfg.StorageSecretKey, jc.StorageSecretKey)
	overlayString(&cfg.StorageRegion, jc.StorageRegion)
	overlayString(&cfg.EmailRedirectURL, jc.EmailRedirectURL)
	overlayString(&cfg.SiteOrigin, jc.SiteOrigin)
	overlayString(&cfg.StartURL, jc.StartURL)

	if jc.SimpleStoragePath != nil {
		cfg.SimpleStoragePath = *jc.SimpleStoragePath
	}
	if jc.Production != nil {
		cfg.Production = *jc.Production
	}
	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func overlayString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
