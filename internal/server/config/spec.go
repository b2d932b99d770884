// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for wirehttp-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Auth    AuthSection    `koanf:"auth"`
	Storage StorageSection `koanf:"storage"`
	Static  StaticSection  `koanf:"static"`
	Limits  LimitsSection  `koanf:"limits"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the listener.
type ServerSection struct {
	// Addr is the TCP bind address.
	Addr string `koanf:"addr"`

	// RoutesFile is the path to the YAML route declarations.
	RoutesFile string `koanf:"routes_file"`

	// IdleTimeout bounds how long a connection may sit without readable
	// data before it is closed.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// WriteTimeout bounds a single response write.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// MaxBufferSize caps the per-connection receive buffer in bytes.
	MaxBufferSize int `koanf:"max_buffer_size"`
}

// AuthSection configures token issue and verification.
type AuthSection struct {
	// SigningKey is the HMAC secret for bearer tokens.
	SigningKey string `koanf:"signing_key"`

	// TokenTTL is the token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// BcryptCost is the bcrypt work factor.
	BcryptCost int `koanf:"bcrypt_cost"`
}

// StorageSection configures user persistence.
type StorageSection struct {
	// Backend selects the store: "badger" or "memory".
	Backend string `koanf:"backend"`

	// DataDir is the Badger data directory.
	DataDir string `koanf:"data_dir"`

	// SyncWrites forces fsync on every write.
	SyncWrites bool `koanf:"sync_writes"`
}

// StaticSection configures static file serving.
type StaticSection struct {
	// WebRoot is the directory static routes resolve under.
	WebRoot string `koanf:"web_root"`
}

// LimitsSection configures per-client rate limiting.
type LimitsSection struct {
	// Enabled turns the rate-limit middleware on.
	Enabled bool `koanf:"enabled"`

	// RPS is the sustained request rate per client host.
	RPS float64 `koanf:"rps"`

	// Burst is the short-term budget per client host.
	Burst int `koanf:"burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
