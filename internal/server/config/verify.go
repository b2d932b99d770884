package config

import (
	"fmt"
	"os"
)

const minSigningKeyLen = 16

// Verify checks the configuration for obvious mistakes and prepares the
// storage directory. It is called once at startup before anything is wired.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyLimits(&cfg.Limits); err != nil {
		return err
	}
	return nil
}

func verifyServer(s *ServerSection) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if s.RoutesFile == "" {
		return fmt.Errorf("server.routes_file must not be empty")
	}
	if s.IdleTimeout <= 0 {
		return fmt.Errorf("server.idle_timeout must be positive, got %s", s.IdleTimeout)
	}
	if s.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive, got %s", s.WriteTimeout)
	}
	if s.MaxBufferSize <= 0 {
		return fmt.Errorf("server.max_buffer_size must be positive, got %d", s.MaxBufferSize)
	}
	return nil
}

func verifyAuth(a *AuthSection) error {
	if a.SigningKey == "" {
		return fmt.Errorf("auth.signing_key must not be empty")
	}
	if len(a.SigningKey) < minSigningKeyLen {
		return fmt.Errorf("auth.signing_key must be at least %d bytes", minSigningKeyLen)
	}
	if a.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", a.TokenTTL)
	}
	if a.BcryptCost < 4 || a.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31, got %d", a.BcryptCost)
	}
	return nil
}

func verifyStorage(s *StorageSection) error {
	switch s.Backend {
	case "memory":
		return nil
	case "badger":
		if s.DataDir == "" {
			return fmt.Errorf("storage.data_dir must not be empty for the badger backend")
		}
		if err := os.MkdirAll(s.DataDir, 0o750); err != nil {
			return fmt.Errorf("create storage.data_dir: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("storage.backend must be \"badger\" or \"memory\", got %q", s.Backend)
	}
}

func verifyLimits(l *LimitsSection) error {
	if !l.Enabled {
		return nil
	}
	if l.RPS <= 0 {
		return fmt.Errorf("limits.rps must be positive, got %g", l.RPS)
	}
	if l.Burst <= 0 {
		return fmt.Errorf("limits.burst must be positive, got %d", l.Burst)
	}
	return nil
}
