package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the gateway's runtime configuration, read from config.yaml with
// environment overrides for the values that differ per deployment.
type Config struct {
	Port  string `yaml:"port"`
	Debug bool   `yaml:"debug"`

	DatabaseDSN string `yaml:"database_dsn"`
	RedisAddr   string `yaml:"redis_addr"`

	JWTSecret           string `yaml:"jwt_secret"`
	SessionTTLMinutes   int    `yaml:"session_ttl_minutes"`
	TemporaryTTLMinutes int    `yaml:"temporary_ttl_minutes"`

	// downstream service base urls, keyed by service name
	Services map[string]string `yaml:"services"`

	Mail struct {
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
		From   string `yaml:"from"`
	} `yaml:"mail"`

	LogSamplingTickMs  int `yaml:"log_sampling_tick_ms"`
	LogSamplingAfterMs int `yaml:"log_sampling_after_ms"`
}

func (c *Config) Defaults() {
	if c.Port == "" {
		c.Port = ":8080"
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = "evalia.db"
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = 24 * 60
	}
	if c.TemporaryTTLMinutes <= 0 {
		c.TemporaryTTLMinutes = 10
	}
	if c.Mail.From == "" {
		c.Mail.From = "no-reply@evalia.app"
	}
	if c.Services == nil {
		c.Services = map[string]string{}
	}
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) TemporaryTTL() time.Duration {
	return time.Duration(c.TemporaryTTLMinutes) * time.Minute
}

func loadConfig() (*Config, error) {
	var cfg Config

	path := firstExistingPath(os.Getenv("EVALIA_CONFIG"), "./config.yaml", "../config.yaml")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
		logrusLogger.Printf("Loaded config from %s", path)
	}

	applyEnvOverrides(&cfg)
	cfg.Defaults()
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret not configured, set jwt_secret or EVALIA_JWT_SECRET")
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = ":" + v
	}
	if v := os.Getenv("EVALIA_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("EVALIA_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("EVALIA_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("EVALIA_MAIL_URL"); v != "" {
		cfg.Mail.URL = v
	}
	if v := os.Getenv("EVALIA_MAIL_API_KEY"); v != "" {
		cfg.Mail.APIKey = v
	}
}

func firstExistingPath(candidates ...string) string {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
