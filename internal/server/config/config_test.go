package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) *ServerConfig {
	t.Helper()
	cfg := Default()
	cfg.Auth.SigningKey = "0123456789abcdef0123456789abcdef"
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.IdleTimeout != 10*time.Second {
		t.Errorf("idle timeout = %s, want 10s", cfg.Server.IdleTimeout)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("token ttl = %s, want 30m", cfg.Auth.TokenTTL)
	}
	if cfg.Storage.Backend != "badger" {
		t.Errorf("backend = %q, want badger", cfg.Storage.Backend)
	}
}

func TestVerifyValid(t *testing.T) {
	if err := Verify(validConfig(t)); err != nil {
		t.Fatalf("Verify() = %v, want nil", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantSub string
	}{
		{"empty addr", func(c *ServerConfig) { c.Server.Addr = "" }, "server.addr"},
		{"empty routes file", func(c *ServerConfig) { c.Server.RoutesFile = "" }, "routes_file"},
		{"zero idle timeout", func(c *ServerConfig) { c.Server.IdleTimeout = 0 }, "idle_timeout"},
		{"negative write timeout", func(c *ServerConfig) { c.Server.WriteTimeout = -time.Second }, "write_timeout"},
		{"zero buffer cap", func(c *ServerConfig) { c.Server.MaxBufferSize = 0 }, "max_buffer_size"},
		{"missing signing key", func(c *ServerConfig) { c.Auth.SigningKey = "" }, "signing_key"},
		{"short signing key", func(c *ServerConfig) { c.Auth.SigningKey = "short" }, "signing_key"},
		{"zero token ttl", func(c *ServerConfig) { c.Auth.TokenTTL = 0 }, "token_ttl"},
		{"bcrypt cost too low", func(c *ServerConfig) { c.Auth.BcryptCost = 2 }, "bcrypt_cost"},
		{"unknown backend", func(c *ServerConfig) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"badger without dir", func(c *ServerConfig) { c.Storage.DataDir = "" }, "data_dir"},
		{"limits zero rps", func(c *ServerConfig) { c.Limits.RPS = 0 }, "limits.rps"},
		{"limits zero burst", func(c *ServerConfig) { c.Limits.Burst = 0 }, "limits.burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestVerifyMemoryBackendNeedsNoDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Backend = "memory"
	cfg.Storage.DataDir = ""
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify() = %v, want nil", err)
	}
}

func TestVerifyCreatesDataDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "nested", "data")
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
}

func TestSanitizeMasksSigningKey(t *testing.T) {
	cfg := validConfig(t)
	out := Sanitize(cfg)
	if out.Auth.SigningKey == cfg.Auth.SigningKey {
		t.Error("signing key not masked")
	}
	if !strings.HasSuffix(out.Auth.SigningKey, "****") {
		t.Errorf("masked key = %q", out.Auth.SigningKey)
	}
	if cfg.Auth.SigningKey == out.Auth.SigningKey {
		t.Error("original mutated")
	}
}
