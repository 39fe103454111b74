package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson_Overlays(t *testing.T) {
	path := writeConfigFile(t, `{
		"backend_url": "https://json.example",
		"backend_key": "json-key",
		"storage_bucket": "uploads",
		"production": true,
		"request_timeout": "30s"
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "https://json.example", c.BackendURL)
	assert.Equal(t, "json-key", c.BackendKey)
	assert.Equal(t, "uploads", c.StorageBucket)
	assert.True(t, c.Production)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
}

func TestParseJson_AbsentFieldsKeepDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"backend_key": "only-key"}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-config", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "only-key", c.BackendKey)
	assert.Equal(t, "http://127.0.0.1:54321", c.BackendURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestParseJson_NoFileConfigured(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://127.0.0.1:54321", c.BackendURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", path}

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
