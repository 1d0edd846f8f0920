// Package config loads and validates harvester configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/domain-harvester/internal/seeds"
)

// Config captures all harvester configuration knobs loaded via Viper.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Crawler  CrawlerConfig  `mapstructure:"crawler"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Seeds    seeds.List     `mapstructure:"seeds"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Progress ProgressConfig `mapstructure:"progress"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// CrawlerConfig governs recursion and pacing.
type CrawlerConfig struct {
	MaxDepth    int           `mapstructure:"max_depth"`
	Concurrency int           `mapstructure:"concurrency"`
	Delay       time.Duration `mapstructure:"delay"`
	FeedDelay   time.Duration `mapstructure:"feed_delay"`
	// MaxFetches caps network calls per run; zero means unlimited.
	MaxFetches int `mapstructure:"max_fetches"`
	// HostRPS throttles fetches per registrable domain; zero disables it.
	HostRPS   float64 `mapstructure:"host_rps"`
	HostBurst int     `mapstructure:"host_burst"`
}

// HTTPConfig configures the fetch client.
type HTTPConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`
}

// FilterConfig is the domain whitelist and blacklist.
type FilterConfig struct {
	AllowedSuffixes []string `mapstructure:"allowed_suffixes"`
	Excluded        []string `mapstructure:"excluded"`
}

// OutputConfig selects where the block list is written.
type OutputConfig struct {
	Dir       string   `mapstructure:"dir"`
	File      string   `mapstructure:"file"`
	GCSBucket string   `mapstructure:"gcs_bucket"`
	Header    []string `mapstructure:"header"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address; empty disables the server.
	Addr string `mapstructure:"addr"`
}

// ProgressConfig tunes the progress event hub.
type ProgressConfig struct {
	BufferSize   int           `mapstructure:"buffer_size"`
	MaxBatchWait time.Duration `mapstructure:"max_batch_wait"`
}

// DefaultAllowedSuffixes lists the English-language suffixes accepted by
// default.
var DefaultAllowedSuffixes = []string{
	".co.uk", ".org.uk", ".gov.uk", ".ac.uk",
	".com", ".org", ".net", ".us",
	".ca",
	".com.au", ".net.au", ".org.au",
	".ie",
	".nz",
}

// DefaultExcluded lists domains kept out of the block list by default.
var DefaultExcluded = []string{
	"wikipedia.org",
	"techradar.com",
	"engadget.com",
	"borninspace.com",
	"ign.com",
	"gamespot.com",
	"kotaku.com",
	"pcgamer.com",
	"eurogamer.net",
}

// DefaultHeader is written above the rules of the block list.
var DefaultHeader = []string{
	"! uBlock Origin – English News & Social Blocklist",
	"! One-time generated",
	"",
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := seeds.Default()

	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "")
	v.SetDefault("crawler.max_depth", 3)
	v.SetDefault("crawler.concurrency", 1)
	v.SetDefault("crawler.delay", 300*time.Millisecond)
	v.SetDefault("crawler.feed_delay", 500*time.Millisecond)
	v.SetDefault("crawler.max_fetches", 0)
	v.SetDefault("crawler.host_rps", 0.0)
	v.SetDefault("crawler.host_burst", 1)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (DomainHarvester)")
	v.SetDefault("http.timeout", 25*time.Second)
	v.SetDefault("http.max_body_bytes", 10<<20)
	v.SetDefault("filter.allowed_suffixes", DefaultAllowedSuffixes)
	v.SetDefault("filter.excluded", DefaultExcluded)
	v.SetDefault("seeds.news", defaults.News)
	v.SetDefault("seeds.local", defaults.Local)
	v.SetDefault("seeds.social", defaults.Social)
	v.SetDefault("seeds.feeds", defaults.Feeds)
	v.SetDefault("seeds.directories", defaults.Directories)
	v.SetDefault("seeds.publisher_feeds", defaults.PublisherFeeds)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.file", "ublock_blocklist.txt")
	v.SetDefault("output.gcs_bucket", "")
	v.SetDefault("output.header", DefaultHeader)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("progress.buffer_size", 1024)
	v.SetDefault("progress.max_batch_wait", 250*time.Millisecond)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawler.MaxDepth < 0 {
		return fmt.Errorf("crawler.max_depth must be >= 0")
	}
	if c.Crawler.Concurrency <= 0 {
		return fmt.Errorf("crawler.concurrency must be > 0")
	}
	if c.Crawler.Delay < 0 || c.Crawler.FeedDelay < 0 {
		return fmt.Errorf("crawler delays must be >= 0")
	}
	if c.Crawler.MaxFetches < 0 {
		return fmt.Errorf("crawler.max_fetches must be >= 0")
	}
	if c.Crawler.HostRPS < 0 || c.Crawler.HostBurst < 0 {
		return fmt.Errorf("crawler.host_rps and crawler.host_burst must be >= 0")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("http.max_body_bytes must be >= 0")
	}
	if !hasEntry(c.Filter.AllowedSuffixes) {
		return fmt.Errorf("filter.allowed_suffixes must not be empty")
	}
	if strings.TrimSpace(c.Output.File) == "" {
		return fmt.Errorf("output.file must be set")
	}
	if c.Progress.BufferSize < 0 {
		return fmt.Errorf("progress.buffer_size must be >= 0")
	}
	return nil
}

func hasEntry(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
