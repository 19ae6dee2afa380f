// Package config loads serialbook configuration from a YAML file
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/serialbook/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig    `yaml:"server" json:"server" jsonschema:"description=HTTP API server configuration"`
	Database DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=Post store configuration"`
	Sync     SyncConfig      `yaml:"sync" json:"sync" jsonschema:"description=Sync configuration"`
	Fetch    FetchConfig     `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Books    BooksConfig     `yaml:"books" json:"books" jsonschema:"description=EPUB books configuration"`
	Creators []CreatorConfig `yaml:"creators" json:"creators" jsonschema:"description=Followed creators"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds post store settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:serialbook.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000),description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=2,minimum=0,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,minimum=0,description=Connection maximum lifetime in seconds"`
}

// SyncConfig holds sync settings
type SyncConfig struct {
	Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=2h,description=Background sync interval"`
	RecentLimit int           `yaml:"recent_limit" json:"recent_limit" jsonschema:"default=20,minimum=1,description=Number of newest feed entries checked by a recent sync"`
	MaxWorkers  int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=3,minimum=1,description=Maximum creators synced concurrently"`
	AutoUpdate  bool          `yaml:"auto_update" json:"auto_update" jsonschema:"default=false,description=Update books with new chapters after every background sync"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	FeedURL       string        `yaml:"feed_url" json:"feed_url" jsonschema:"default=https://www.patreon.com/rss/{slug},description=Feed URL template, {slug} is replaced by creator slug"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	RateLimit     time.Duration `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=1s,description=Minimum delay between requests"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=serialbook/1.0,description=User agent for HTTP requests"`
	Extract       bool          `yaml:"extract" json:"extract" jsonschema:"default=false,description=Extract post body from post page when feed entry has no content"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,minimum=0,description=Minimum extracted text length to consider valid"`
}

// BooksConfig holds EPUB output settings
type BooksConfig struct {
	OutputDir string `yaml:"output_dir" json:"output_dir" jsonschema:"default=./output,description=Directory for generated EPUB books"`
}

// CreatorConfig holds per-creator settings
type CreatorConfig struct {
	URL           string `yaml:"url" json:"url" jsonschema:"required,description=Creator page URL"`
	Name          string `yaml:"name" json:"name" jsonschema:"description=Display name, derived from URL if empty"`
	FeedURL       string `yaml:"feed_url" json:"feed_url" jsonschema:"description=Feed URL override"`
	Disabled      bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip creator on sync"`
	CustomPattern string `yaml:"custom_pattern" json:"custom_pattern" jsonschema:"description=Title regexp tried before built-in patterns"`
	SeriesName    string `yaml:"series_name" json:"series_name" jsonschema:"description=Series name for titles without book name"`
	DefaultSeries string `yaml:"default_series" json:"default_series" jsonschema:"description=Series receiving posts with unrecognized titles"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file given
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills empty fields with default values
func (c *Config) SetDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:serialbook.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 4
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 2
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Sync.Interval == 0 {
		c.Sync.Interval = 2 * time.Hour
	}
	if c.Sync.RecentLimit == 0 {
		c.Sync.RecentLimit = 20
	}
	if c.Sync.MaxWorkers == 0 {
		c.Sync.MaxWorkers = 3
	}

	if c.Fetch.FeedURL == "" {
		c.Fetch.FeedURL = "https://www.patreon.com/rss/{slug}"
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.RateLimit == 0 {
		c.Fetch.RateLimit = time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "serialbook/1.0"
	}
	if c.Fetch.MinTextLength == 0 {
		c.Fetch.MinTextLength = 100
	}

	if c.Books.OutputDir == "" {
		c.Books.OutputDir = "./output"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Sync.Interval < time.Minute {
		return fmt.Errorf("sync interval must be at least 1 minute")
	}
	if cfg.Sync.RecentLimit < 1 {
		return fmt.Errorf("sync recent_limit must be at least 1")
	}
	if cfg.Sync.MaxWorkers < 1 {
		return fmt.Errorf("sync max_workers must be at least 1")
	}
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.RateLimit < 0 {
		return fmt.Errorf("fetch rate_limit must be non-negative")
	}
	if !strings.Contains(cfg.Fetch.FeedURL, "{slug}") {
		return fmt.Errorf("fetch feed_url must contain {slug}")
	}

	for i, c := range cfg.Creators {
		if c.URL == "" {
			return fmt.Errorf("creators[%d].url is required", i)
		}
		if c.CustomPattern == "" {
			continue
		}
		if _, err := regexp.Compile("(?i)" + c.CustomPattern); err != nil {
			return fmt.Errorf("creators[%d].custom_pattern is invalid: %w", i, err)
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// FeedURL returns feed URL for creator slug, creator override wins over the template
func (c *Config) FeedURL(slug string) string {
	for _, cr := range c.Creators {
		if cr.FeedURL != "" && cr.Slug() == slug {
			return cr.FeedURL
		}
	}
	return strings.ReplaceAll(c.Fetch.FeedURL, "{slug}", slug)
}

// Creator returns per-creator settings for slug, zero value if creator is not configured
func (c *Config) Creator(slug string) CreatorConfig {
	for _, cr := range c.Creators {
		if cr.Slug() == slug {
			return cr
		}
	}
	return CreatorConfig{}
}

// Slug returns creator slug derived from the creator URL
func (c CreatorConfig) Slug() string {
	return domain.SlugFromURL(c.URL)
}
