package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("load defaults failed: %v", err)
	}
	if cfg.Store.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected store base url: %s", cfg.Store.BaseURL)
	}
	if cfg.Cart.ZeroQuantityPolicy != "remove" {
		t.Fatalf("unexpected zero quantity policy: %s", cfg.Cart.ZeroQuantityPolicy)
	}
	if cfg.Cart.LoadRetry.Attempts != 3 {
		t.Fatalf("unexpected retry attempts: %d", cfg.Cart.LoadRetry.Attempts)
	}
	if cfg.Session.TTL() != 168*time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.Session.TTL())
	}
	if cfg.Store.Timeout() != 5*time.Second {
		t.Fatalf("unexpected store timeout: %s", cfg.Store.Timeout())
	}
	if cfg.Catalog.RefreshInterval() != 2*time.Minute {
		t.Fatalf("unexpected catalog refresh interval: %s", cfg.Catalog.RefreshInterval())
	}
}

func TestLoadFromFileNormalizes(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
store:
  base_url: "http://store.local:3000/ "
cart:
  zero_quantity_policy: "REJECT"
  remote_clear: "bogus"
redis:
  prefix: ""
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := LoadFrom(viper.New(), dir)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Store.BaseURL != "http://store.local:3000" {
		t.Fatalf("base url should be trimmed, got %q", cfg.Store.BaseURL)
	}
	if cfg.Cart.ZeroQuantityPolicy != "reject" {
		t.Fatalf("policy should be normalized to reject, got %q", cfg.Cart.ZeroQuantityPolicy)
	}
	if cfg.Cart.RemoteClear != "sync" {
		t.Fatalf("unknown remote clear should fall back to sync, got %q", cfg.Cart.RemoteClear)
	}
	if cfg.Redis.Prefix != "shoplite" {
		t.Fatalf("empty prefix should fall back, got %q", cfg.Redis.Prefix)
	}
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("SHOPLITE_STORE_BASE_URL", "http://env-store:4000")
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Store.BaseURL != "http://env-store:4000" {
		t.Fatalf("env override not applied, got %q", cfg.Store.BaseURL)
	}
}
