package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/wirehttp-go/internal/core/service"
	"github.com/yndnr/wirehttp-go/internal/handler"
	"github.com/yndnr/wirehttp-go/internal/httpcore"
	"github.com/yndnr/wirehttp-go/internal/infra/buildinfo"
	"github.com/yndnr/wirehttp-go/internal/infra/confloader"
	"github.com/yndnr/wirehttp-go/internal/infra/shutdown"
	"github.com/yndnr/wirehttp-go/internal/middleware"
	"github.com/yndnr/wirehttp-go/internal/routeconf"
	"github.com/yndnr/wirehttp-go/internal/server/config"
	"github.com/yndnr/wirehttp-go/internal/storage"
	"github.com/yndnr/wirehttp-go/internal/telemetry/logger"
	"github.com/yndnr/wirehttp-go/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Load configuration and run the server",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	log.Info("starting wirehttp-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"addr", cfg.Server.Addr,
		"storage", cfg.Storage.Backend)

	stack := shutdown.New(shutdownTimeout, log)

	store, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	stack.Register("storage", func(context.Context) error { return store.Close() })

	authSvc := service.NewAuthService(store, &service.AuthServiceConfig{
		SigningKey: []byte(cfg.Auth.SigningKey),
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})

	metrics := metric.NewRegistry()

	deps := &handler.Deps{
		Auth:    authSvc,
		Metrics: metrics,
		Logger:  log,
	}

	if cfg.Static.WebRoot != "" {
		static, err := handler.NewStaticServer(cfg.Static.WebRoot, log)
		if err != nil {
			log.Warn("static file serving disabled",
				"web_root", cfg.Static.WebRoot, "error", err)
		} else {
			deps.Static = static
			stack.Register("static watcher", func(context.Context) error { return static.Close() })
		}
	}

	entries, err := routeconf.Load(cfg.Server.RoutesFile, log)
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}

	router := httpcore.NewRouter()
	applied := routeconf.Apply(router, entries, func(name string, args map[string]any) (httpcore.Handler, error) {
		return handler.New(name, deps, args)
	}, log)
	log.Info("route table built", "declared", len(entries), "applied", applied)

	srv := httpcore.NewServer(httpcore.Config{
		Addr:          cfg.Server.Addr,
		IdleTimeout:   cfg.Server.IdleTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		MaxBufferSize: cfg.Server.MaxBufferSize,
		Logger:        log,
		Metrics:       metrics,
	}, router)

	srv.Use(middleware.RequestID(), middleware.AccessLog(log))
	if cfg.Limits.Enabled {
		srv.Use(middleware.RateLimit(cfg.Limits.RPS, cfg.Limits.Burst))
	}
	srv.SetAuth(middleware.Auth(authSvc))

	if err := srv.Start(context.Background()); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	stack.Register("http server", srv.Shutdown)

	log.Info("server started, press Ctrl+C to stop")
	if err := stack.Wait(); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

// userStore is what serve needs from a storage backend.
type userStore interface {
	service.UserRepository
	io.Closer
}

func openStore(cfg *config.ServerConfig, log *slog.Logger) (userStore, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewBadgerStore(storage.BadgerConfig{
			Dir:        cfg.Storage.DataDir,
			SyncWrites: cfg.Storage.SyncWrites,
		}, log)
	}
}

// loadConfig layers defaults, the optional config file and WIREHTTP_
// environment variables, then validates the result.
func loadConfig(path string) (*config.ServerConfig, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
