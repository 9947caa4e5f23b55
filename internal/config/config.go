package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type DatabaseConfig struct {
	// URL selects the Postgres counter store; empty runs in-memory.
	URL string `yaml:"url"`
}

type NATSConfig struct {
	// URL enables best-effort event publishing; empty disables it.
	URL string `yaml:"url"`
}

type UpstreamConfig struct {
	URL             string `yaml:"url"`
	APIKey          string `yaml:"api_key"`
	TimeoutMs       int    `yaml:"timeout_ms"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	RosterLimit     int    `yaml:"roster_limit"`
}

type GatewayConfig struct {
	AllowedOrigins    []string `yaml:"allowed_origins"`
	RateWindowSeconds int      `yaml:"rate_window_seconds"`
	RateMaxRequests   int      `yaml:"rate_max_requests"`
	RateRecordMax     int      `yaml:"rate_record_max"`
	StatsCacheSeconds int      `yaml:"stats_cache_seconds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutMs) * time.Millisecond
}

func (c *Config) RosterCacheTTL() time.Duration {
	return time.Duration(c.Upstream.CacheTTLSeconds) * time.Second
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Gateway.RateWindowSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Upstream: UpstreamConfig{
			URL:             "https://ufcapi.aristotle.me",
			TimeoutMs:       10000,
			CacheTTLSeconds: 3600,
			RosterLimit:     10000,
		},
		Gateway: GatewayConfig{
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:5174",
				"http://localhost:3000",
				"https://ufcapi.aristotle.me",
				"https://ufc.aristotle.me",
			},
			RateWindowSeconds: 60,
			RateMaxRequests:   30,
			RateRecordMax:     10,
			StatsCacheSeconds: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FIGHTMATCH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FIGHTMATCH_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FIGHTMATCH_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("FIGHTMATCH_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("FIGHTMATCH_UPSTREAM_URL"); v != "" {
		cfg.Upstream.URL = v
	}
	if v := os.Getenv("FIGHTMATCH_UPSTREAM_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := os.Getenv("FIGHTMATCH_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Gateway.AllowedOrigins = origins
	}
	if v := os.Getenv("FIGHTMATCH_RATE_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.RateMaxRequests = n
		}
	}
	if v := os.Getenv("FIGHTMATCH_RATE_RECORD_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.RateRecordMax = n
		}
	}
	if v := os.Getenv("FIGHTMATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
