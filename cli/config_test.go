package main

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()

	if cfg.Port != ":8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Fatalf("default session ttl = %v", cfg.SessionTTL())
	}
	if cfg.TemporaryTTL() != 10*time.Minute {
		t.Fatalf("default temporary ttl = %v", cfg.TemporaryTTL())
	}
	if cfg.Services == nil {
		t.Fatal("services map must be initialized")
	}
}

func TestConfigDefaultsKeepExplicitValues(t *testing.T) {
	cfg := Config{Port: ":9000", SessionTTLMinutes: 30}
	cfg.Defaults()

	if cfg.Port != ":9000" {
		t.Fatalf("explicit port overridden: %q", cfg.Port)
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Fatalf("explicit ttl overridden: %v", cfg.SessionTTL())
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("EVALIA_JWT_SECRET", "env-secret")
	t.Setenv("EVALIA_REDIS_ADDR", "localhost:6379")

	var cfg Config
	applyEnvOverrides(&cfg)

	if cfg.Port != ":9999" {
		t.Fatalf("port override = %q", cfg.Port)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Fatalf("jwt override = %q", cfg.JWTSecret)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis override = %q", cfg.RedisAddr)
	}
}

func TestDurationFromMs(t *testing.T) {
	if got := durationFromMs(0, time.Second); got != time.Second {
		t.Fatalf("zero must fall back to default, got %v", got)
	}
	if got := durationFromMs(250, time.Second); got != 250*time.Millisecond {
		t.Fatalf("got %v", got)
	}
}
