package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
logging:
  development: true
crawler:
  max_depth: 1
  concurrency: 4
  delay: 10ms
  feed_delay: 1s
  max_fetches: 500
http:
  user_agent: test-agent
  timeout: 5s
filter:
  allowed_suffixes: [".com", ".org"]
  excluded: ["example.com"]
seeds:
  news: ["https://news.example.org"]
  feeds: []
output:
  dir: /tmp/out
  file: list.txt
  gcs_bucket: bucket
  header: ["! custom"]
metrics:
  addr: ":9100"
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Logging.Development {
		t.Fatal("expected development logging")
	}
	if cfg.Crawler.MaxDepth != 1 || cfg.Crawler.Concurrency != 4 || cfg.Crawler.MaxFetches != 500 {
		t.Fatalf("expected crawler overrides to apply: %+v", cfg.Crawler)
	}
	if cfg.Crawler.Delay != 10*time.Millisecond || cfg.Crawler.FeedDelay != time.Second {
		t.Fatalf("expected duration overrides to apply: %+v", cfg.Crawler)
	}
	if cfg.HTTP.UserAgent != "test-agent" || cfg.HTTP.Timeout != 5*time.Second {
		t.Fatalf("expected http overrides to apply: %+v", cfg.HTTP)
	}
	if len(cfg.Filter.AllowedSuffixes) != 2 || cfg.Filter.Excluded[0] != "example.com" {
		t.Fatalf("expected filter overrides to apply: %+v", cfg.Filter)
	}
	if len(cfg.Seeds.News) != 1 || cfg.Seeds.News[0] != "https://news.example.org" {
		t.Fatalf("expected news seeds override: %+v", cfg.Seeds.News)
	}
	if len(cfg.Seeds.Social) == 0 {
		t.Fatal("expected social seeds to keep their defaults")
	}
	if cfg.Output.File != "list.txt" || cfg.Output.GCSBucket != "bucket" || cfg.Output.Header[0] != "! custom" {
		t.Fatalf("expected output overrides to apply: %+v", cfg.Output)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Fatalf("expected metrics addr override, got %q", cfg.Metrics.Addr)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Crawler.MaxDepth != 3 || cfg.Crawler.Concurrency != 1 {
		t.Fatalf("unexpected crawler defaults: %+v", cfg.Crawler)
	}
	if cfg.Crawler.Delay != 300*time.Millisecond || cfg.Crawler.FeedDelay != 500*time.Millisecond {
		t.Fatalf("unexpected delay defaults: %+v", cfg.Crawler)
	}
	if cfg.HTTP.UserAgent != "Mozilla/5.0 (DomainHarvester)" || cfg.HTTP.Timeout != 25*time.Second {
		t.Fatalf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if len(cfg.Filter.AllowedSuffixes) != len(DefaultAllowedSuffixes) {
		t.Fatalf("unexpected suffix defaults: %v", cfg.Filter.AllowedSuffixes)
	}
	if len(cfg.Seeds.Directories) != 3 || len(cfg.Seeds.PublisherFeeds) != 5 {
		t.Fatalf("unexpected seed defaults: %+v", cfg.Seeds)
	}
	if cfg.Output.File != "ublock_blocklist.txt" || len(cfg.Output.Header) != 3 {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.Metrics.Addr != "" {
		t.Fatalf("metrics should be disabled by default, got %q", cfg.Metrics.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HARVESTER_CRAWLER_MAX_DEPTH", "7")
	t.Setenv("HARVESTER_HTTP_USER_AGENT", "env-agent")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Crawler.MaxDepth != 7 {
		t.Fatalf("expected env max depth 7, got %d", cfg.Crawler.MaxDepth)
	}
	if cfg.HTTP.UserAgent != "env-agent" {
		t.Fatalf("expected env user agent, got %q", cfg.HTTP.UserAgent)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Crawler: CrawlerConfig{MaxDepth: 3, Concurrency: 1},
		HTTP:    HTTPConfig{Timeout: time.Second},
		Filter:  FilterConfig{AllowedSuffixes: []string{".com"}},
		Output:  OutputConfig{File: "out.txt"},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "negative depth", mutate: func(c *Config) { c.Crawler.MaxDepth = -1 }, want: "crawler.max_depth"},
		{name: "invalid concurrency", mutate: func(c *Config) { c.Crawler.Concurrency = 0 }, want: "crawler.concurrency"},
		{name: "negative delay", mutate: func(c *Config) { c.Crawler.FeedDelay = -time.Second }, want: "crawler delays"},
		{name: "negative budget", mutate: func(c *Config) { c.Crawler.MaxFetches = -1 }, want: "crawler.max_fetches"},
		{name: "negative host rate", mutate: func(c *Config) { c.Crawler.HostRPS = -1 }, want: "crawler.host_rps"},
		{name: "invalid timeout", mutate: func(c *Config) { c.HTTP.Timeout = 0 }, want: "http.timeout"},
		{name: "no suffixes", mutate: func(c *Config) { c.Filter.AllowedSuffixes = []string{" "} }, want: "filter.allowed_suffixes"},
		{name: "no output file", mutate: func(c *Config) { c.Output.File = "" }, want: "output.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "missing.yaml")
	second := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(second, []byte("crawler:\n  max_depth: 2\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if got := Find(first, dir, second); got != second {
		t.Fatalf("Find() = %q, want %q", got, second)
	}
	if got := Find(first); got != "" {
		t.Fatalf("Find() = %q, want empty", got)
	}
	if len(SearchPaths()) < 2 {
		t.Fatal("expected default search paths")
	}
}
