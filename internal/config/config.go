package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"storefront/internal/cart"
	"storefront/internal/storage"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	// APIBaseURL is the root of the storefront REST API.
	APIBaseURL  string        `yaml:"api"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	Storage StorageConfig `yaml:"storage"`
	Cart    CartConfig    `yaml:"cart"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	// Profile separates local storage of several users on one machine.
	Profile       string        `yaml:"profile"`
	RedisHost     string        `yaml:"redis_host"`
	RedisPassword string        `yaml:"redis_password"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`
	BrowserOrigin string        `yaml:"browser_origin"`
	BrowserShow   bool          `yaml:"browser_show"`
}

type CartConfig struct {
	// Dedupe keeps one line per product instead of appending duplicates.
	Dedupe bool `yaml:"dedupe"`
}

func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		AppEnv:      "production",
		LogLevel:    "info",
		APIBaseURL:  "http://localhost:8000/api",
		HTTPTimeout: 15 * time.Second,
		Storage: StorageConfig{
			Backend:       storage.BackendSQLite,
			Path:          filepath.Join(home, ".storefront", "localstorage.db"),
			Profile:       "default",
			BrowserOrigin: "http://localhost:3000",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then .env and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.APIBaseURL, "STOREFRONT_API")
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Path, "STORAGE_PATH")
	setString(&c.Storage.Profile, "STORAGE_PROFILE")
	setString(&c.Storage.RedisHost, "REDIS_HOST")
	setString(&c.Storage.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Storage.BrowserOrigin, "BROWSER_ORIGIN")

	var errs []error
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("HTTP_TIMEOUT: %w", err))
		} else {
			c.HTTPTimeout = d
		}
	}
	if v := os.Getenv("CART_DEDUPE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CART_DEDUPE: %w", err))
		} else {
			c.Cart.Dedupe = b
		}
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q", c.APIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}

	backend := strings.ToLower(c.Storage.Backend)
	if !slices.Contains(storage.Backends, backend) {
		return fmt.Errorf("unknown storage backend %q (want one of %s)", c.Storage.Backend, strings.Join(storage.Backends, ", "))
	}
	c.Storage.Backend = backend

	switch backend {
	case storage.BackendSQLite:
		if c.Storage.Path == "" {
			return errors.New("sqlite storage needs STORAGE_PATH")
		}
	case storage.BackendRedis:
		if c.Storage.RedisHost == "" {
			return errors.New("redis storage needs REDIS_HOST")
		}
	case storage.BackendBrowser:
		if _, err := url.ParseRequestURI(c.Storage.BrowserOrigin); err != nil {
			return fmt.Errorf("invalid BROWSER_ORIGIN %q", c.Storage.BrowserOrigin)
		}
	}
	return nil
}

// IsDevelopment reports whether APP_ENV selects development logging.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// StorageOptions maps the storage section onto the backend options. Non
// default profiles get their own SQLite file and Redis namespace.
func (c *Config) StorageOptions() storage.Options {
	profile := c.Storage.Profile
	if profile == "" {
		profile = "default"
	}

	path := c.Storage.Path
	if profile != "default" && path != "" {
		ext := filepath.Ext(path)
		path = strings.TrimSuffix(path, ext) + "-" + profile + ext
	}

	return storage.Options{
		Backend: c.Storage.Backend,
		Path:    path,
		Redis: storage.RedisOptions{
			Addr:      c.Storage.RedisHost,
			Password:  c.Storage.RedisPassword,
			Namespace: "storefront:" + profile,
			TTL:       c.Storage.RedisTTL,
		},
		Browser: storage.BrowserOptions{
			Origin:   c.Storage.BrowserOrigin,
			Headless: !c.Storage.BrowserShow,
			Timeout:  c.HTTPTimeout,
		},
	}
}

func (c *Config) CartPolicy() cart.Policy {
	if c.Cart.Dedupe {
		return cart.DedupeByProduct
	}
	return cart.AppendDuplicates
}
