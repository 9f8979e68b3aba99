package confloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keevadb/keeva-go/internal/server/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keeva.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
listen:
  addr: "0.0.0.0:7000"
  rate_limit: 50
log:
  level: debug
`)

	cfg := config.Default()
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Listen.Addr != "0.0.0.0:7000" {
		t.Errorf("Listen.Addr = %q", cfg.Listen.Addr)
	}
	if cfg.Listen.RateLimit != 50 {
		t.Errorf("Listen.RateLimit = %d", cfg.Listen.RateLimit)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.Log.Format != config.DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default", cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
listen:
  addr: "0.0.0.0:7000"
`)
	t.Setenv("KEEVA_LISTEN_ADDR", "127.0.0.1:7001")

	cfg := config.Default()
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Listen.Addr != "127.0.0.1:7001" {
		t.Errorf("Listen.Addr = %q, want env value", cfg.Listen.Addr)
	}
}

func TestLoad_CustomEnvPrefix(t *testing.T) {
	t.Setenv("KV_LOG_LEVEL", "warn")

	cfg := config.Default()
	l := NewLoader(WithEnvPrefix("KV_"))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadMap_HighestPriority(t *testing.T) {
	t.Setenv("KEEVA_LISTEN_ADDR", "127.0.0.1:7001")

	l := NewLoader()
	cfg := config.Default()
	if err := l.LoadEnv(); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadMap(map[string]any{"listen.addr": "127.0.0.1:7002"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Unmarshal(cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Listen.Addr != "127.0.0.1:7002" {
		t.Errorf("Listen.Addr = %q, want map value", cfg.Listen.Addr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))
	if err := l.Load(config.Default()); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestAll_FlatKeys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"metrics.enabled": true}); err != nil {
		t.Fatal(err)
	}

	all := l.All()
	if v, ok := all["metrics.enabled"]; !ok || v != true {
		t.Errorf("All() = %v, want metrics.enabled=true", all)
	}
}
