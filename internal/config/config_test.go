package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port = %d", cfg.Server.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Fatalf("default store backend = %q", cfg.Store.Backend)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr())
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	body := `
server:
  port: 9090
cache:
  ttl: 5m
store:
  backend: bolt
  bolt_path: /tmp/test.db
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Fatalf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Store.Backend != "bolt" {
		t.Fatalf("backend = %q", cfg.Store.Backend)
	}
	// Untouched values keep their defaults.
	if cfg.Security.RequestsPerSecond != 50 {
		t.Fatalf("rps = %d", cfg.Security.RequestsPerSecond)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORE_BACKEND", "redis")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Store.Backend != "redis" {
		t.Fatalf("backend = %q, want redis", cfg.Store.Backend)
	}
}

func TestValidation(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")
	if _, err := Load(""); err == nil {
		t.Fatalf("unknown backend must fail validation")
	}
}

func TestMissingYAMLFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
}
