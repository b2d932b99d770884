package httpcore

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Default tuning values, applied when the corresponding Config field is
// zero.
const (
	DefaultIdleTimeout   = 10 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
	DefaultMaxBufferSize = 10 << 20 // 10 MiB
	DefaultReadChunkSize = 4096
)

// Config holds the server tuning knobs.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string

	// IdleTimeout bounds how long a connection may sit between reads
	// before it is closed.
	IdleTimeout time.Duration

	// WriteTimeout bounds each response write.
	WriteTimeout time.Duration

	// MaxBufferSize caps the per-connection receive buffer. A connection
	// that exceeds it before a full request is framed gets a 413 and is
	// closed.
	MaxBufferSize int

	// ReadChunkSize is the size of each socket read.
	ReadChunkSize int

	// Logger receives connection lifecycle and error events. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Metrics receives engine observations; nil disables collection.
	Metrics Metrics
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.MaxBufferSize == 0 {
		cfg.MaxBufferSize = DefaultMaxBufferSize
	}
	if cfg.ReadChunkSize == 0 {
		cfg.ReadChunkSize = DefaultReadChunkSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// Server owns the listening socket and the per-connection goroutines.
//
// The route table, the middleware chain and the auth wrapper are part of
// the server's frozen configuration: they may be mutated only before
// Start. Use and SetAuth panic once the listener is accepting, which turns
// a data race into a deterministic failure.
type Server struct {
	cfg    Config
	router *Router

	middlewares []Middleware
	auth        Middleware

	ln      net.Listener
	running atomic.Bool
	started atomic.Bool
	wg      sync.WaitGroup
}

// NewServer creates a server around a populated route table.
func NewServer(cfg Config, router *Router) *Server {
	return &Server{
		cfg:    cfg.withDefaults(),
		router: router,
	}
}

// Use appends middleware to the chain. The first middleware registered
// becomes the outermost wrapper at dispatch time.
func (s *Server) Use(mws ...Middleware) {
	if s.started.Load() {
		panic("httpcore: Use called after Start")
	}
	s.middlewares = append(s.middlewares, mws...)
}

// SetAuth installs the authentication wrapper. It is applied innermost,
// and only to route entries marked RequiresAuth; unmarked routes pass
// through unauthenticated.
func (s *Server) SetAuth(mw Middleware) {
	if s.started.Load() {
		panic("httpcore: SetAuth called after Start")
	}
	s.auth = mw
}

// Start binds the listen address and launches the accept loop. It returns
// once the listener is accepting; serving continues until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.started.Store(true)
	s.running.Store(true)

	s.cfg.Logger.Info("http server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.cfg.Logger.Error("accept loop failed", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address, useful when Config.Addr used
// port 0.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, then waits for in-flight connections to
// finish or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var closeErr error
	if s.ln != nil {
		closeErr = s.ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return closeErr
}

// acceptLoop is single-threaded and sequential: each accepted connection
// is handed to its own goroutine. There is deliberately no worker pool
// bound; a bounded pool could replace this without changing any other
// component's contract.
func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(c)
		}()
	}
}
