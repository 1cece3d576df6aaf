package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"TrendBoard/internal/model"
)

// Config holds all application configuration. TTLs are plain seconds in the
// file; use the accessor methods for durations.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		SeriesTTLSec    int `yaml:"series_ttl_sec"`
		HandleTTLSec    int `yaml:"handle_ttl_sec"`
		Capacity        int `yaml:"capacity"`
		MinFetchDelayMS int `yaml:"min_fetch_delay_ms"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy     string            `yaml:"proxy"`
	Portfolio []model.AssetSpec `yaml:"portfolio"`
	Watchlist []model.AssetSpec `yaml:"watchlist"`
}

// SeriesTTL is how long a fetched price series stays fresh.
func (c *Config) SeriesTTL() time.Duration {
	return time.Duration(c.Cache.SeriesTTLSec) * time.Second
}

// HandleTTL is how long a validated venue handle stays fresh.
func (c *Config) HandleTTL() time.Duration {
	return time.Duration(c.Cache.HandleTTLSec) * time.Second
}

// MinFetchDelay is the spacing between real network fetches.
func (c *Config) MinFetchDelay() time.Duration {
	return time.Duration(c.Cache.MinFetchDelayMS) * time.Millisecond
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults carry a
// runnable setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SERIES_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.SeriesTTLSec = n
		}
	}
	if v := os.Getenv("HANDLE_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.HandleTTLSec = n
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Cache.SeriesTTLSec == 0 {
		cfg.Cache.SeriesTTLSec = 300
	}
	if cfg.Cache.HandleTTLSec == 0 {
		cfg.Cache.HandleTTLSec = 3600
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 128
	}
	if cfg.Cache.MinFetchDelayMS == 0 {
		cfg.Cache.MinFetchDelayMS = 300
	}
	if cfg.Schedule.RefreshCron == "" {
		// Every 15 minutes.
		cfg.Schedule.RefreshCron = "0 */15 * * * *"
	}
	if len(cfg.Portfolio) == 0 {
		cfg.Portfolio = []model.AssetSpec{
			{Symbol: "BTC"},
			{Symbol: "ETH"},
			{Symbol: "SOL"},
			{Symbol: "BANANA", Chain: "ethereum"},
		}
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []model.AssetSpec{
			{Symbol: "NATIX", Chain: "solana"},
			{Symbol: "TIG", Chain: "base"},
			{Symbol: "FAI", Chain: "base"},
		}
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Cache.SeriesTTLSec <= 0 || c.Cache.HandleTTLSec <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Cache.SeriesTTLSec > c.Cache.HandleTTLSec {
		return fmt.Errorf("series_ttl_sec must not exceed handle_ttl_sec")
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive")
	}
	seen := make(map[string]bool)
	for _, lists := range [][]model.AssetSpec{c.Portfolio, c.Watchlist} {
		for _, a := range lists {
			if a.Symbol == "" {
				return fmt.Errorf("asset with empty symbol")
			}
			if seen[a.Symbol] {
				return fmt.Errorf("asset %s configured twice", a.Symbol)
			}
			seen[a.Symbol] = true
		}
	}
	return nil
}
