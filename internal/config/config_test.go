package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("Expected 24h token TTL, got %s", cfg.JWT.TTL)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9000"
database:
  driver: sqlite
  dsn: ./data/file.db
jwt:
  secret: from-file
  ttl_hours: 48
cors:
  allow_origins: ["http://a.example"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9100")
	t.Setenv("JWT_TTL_HOURS", "12")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://b.example, http://c.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("env should override file port, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "./data/file.db" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.JWT.Secret != "from-file" {
		t.Errorf("Expected secret from file, got %s", cfg.JWT.Secret)
	}
	if cfg.JWT.TTL != 12*time.Hour {
		t.Errorf("Expected 12h TTL, got %s", cfg.JWT.TTL)
	}
	if len(cfg.CORS.AllowOrigins) != 2 || cfg.CORS.AllowOrigins[1] != "http://c.example" {
		t.Errorf("unexpected origins: %v", cfg.CORS.AllowOrigins)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		if _, err := Load(""); err == nil {
			t.Fatal("expected error for unknown driver")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"WARNING": "WARN",
		"error":   "ERROR",
		"":        "INFO",
	}
	for in, want := range cases {
		if got := (LogConfig{Level: in}).SlogLevel().String(); got != want {
			t.Errorf("level %q: expected %s, got %s", in, want, got)
		}
	}
}
