package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
)

// clearEnv blanks every variable Load looks at.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "STOREFRONT_API", "STORAGE_BACKEND", "STORAGE_PATH",
		"STORAGE_PROFILE", "REDIS_HOST", "REDIS_PASSWORD", "BROWSER_ORIGIN",
		"HTTP_TIMEOUT", "CART_DEDUPE",
	} {
		t.Setenv(k, "")
	}
	// keep a developer's .env out of the way
	t.Chdir(t.TempDir())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "localstorage.db", filepath.Base(cfg.Storage.Path))
	assert.False(t, cfg.Cart.Dedupe)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().APIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "storefront.yaml")
	yamlContent := `
api: https://shop.example.com/api
http_timeout: 3s
storage:
  backend: memory
  profile: alice
cart:
  dedupe: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	t.Setenv("STORAGE_PROFILE", "bob")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "bob", cfg.Storage.Profile)
	assert.True(t, cfg.Cart.Dedupe)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to ""
	os.Unsetenv("STOREFRONT_API")
	os.Unsetenv("CART_DEDUPE")
	require.NoError(t, os.WriteFile(".env", []byte("STOREFRONT_API=http://backend:8000/api\nCART_DEDUPE=true\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000/api", cfg.APIBaseURL)
	assert.True(t, cfg.Cart.Dedupe)
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("CART_DEDUPE", "maybe")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT")
	assert.Contains(t, err.Error(), "CART_DEDUPE")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"backend is case-insensitive", func(c *Config) { c.Storage.Backend = "MEMORY" }, true},
		{"relative api url", func(c *Config) { c.APIBaseURL = "/api" }, false},
		{"ftp api url", func(c *Config) { c.APIBaseURL = "ftp://x/api" }, false},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "floppy" }, false},
		{"sqlite without path", func(c *Config) { c.Storage.Path = "" }, false},
		{"redis without host", func(c *Config) { c.Storage.Backend = "redis" }, false},
		{"redis with host", func(c *Config) { c.Storage.Backend = "redis"; c.Storage.RedisHost = "localhost:6379" }, true},
		{"browser bad origin", func(c *Config) { c.Storage.Backend = "browser"; c.Storage.BrowserOrigin = "localhost" }, false},
		{"browser", func(c *Config) { c.Storage.Backend = "browser" }, true},
		{"none", func(c *Config) { c.Storage.Backend = "none" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/data/localstorage.db"
	cfg.Storage.RedisHost = "redis:6379"

	opts := cfg.StorageOptions()
	assert.Equal(t, "sqlite", opts.Backend)
	assert.Equal(t, "/data/localstorage.db", opts.Path)
	assert.Equal(t, "redis:6379", opts.Redis.Addr)
	assert.Equal(t, "storefront:default", opts.Redis.Namespace)
	assert.True(t, opts.Browser.Headless)

	cfg.Storage.Profile = "alice"
	opts = cfg.StorageOptions()
	assert.Equal(t, "/data/localstorage-alice.db", opts.Path)
	assert.Equal(t, "storefront:alice", opts.Redis.Namespace)
}

func TestCartPolicy(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cart.AppendDuplicates, cfg.CartPolicy())
	cfg.Cart.Dedupe = true
	assert.Equal(t, cart.DedupeByProduct, cfg.CartPolicy())
}
