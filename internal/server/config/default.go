package config

import "time"

// Default configuration values.
const (
	DefaultAddr       = "127.0.0.1:8080"
	DefaultRoutesFile = "config/routes.yaml"

	DefaultIdleTimeout   = 10 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
	DefaultMaxBufferSize = 10 << 20

	DefaultTokenTTL   = 30 * time.Minute
	DefaultBcryptCost = 10

	DefaultStorageBackend = "badger"
	DefaultDataDir        = "/var/lib/wirehttp-server/data"
	DefaultWebRoot        = "webroot"

	DefaultRateRPS   = 50.0
	DefaultRateBurst = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:          DefaultAddr,
			RoutesFile:    DefaultRoutesFile,
			IdleTimeout:   DefaultIdleTimeout,
			WriteTimeout:  DefaultWriteTimeout,
			MaxBufferSize: DefaultMaxBufferSize,
		},
		Auth: AuthSection{
			TokenTTL:   DefaultTokenTTL,
			BcryptCost: DefaultBcryptCost,
		},
		Storage: StorageSection{
			Backend: DefaultStorageBackend,
			DataDir: DefaultDataDir,
		},
		Static: StaticSection{
			WebRoot: DefaultWebRoot,
		},
		Limits: LimitsSection{
			Enabled: true,
			RPS:     DefaultRateRPS,
			Burst:   DefaultRateBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
