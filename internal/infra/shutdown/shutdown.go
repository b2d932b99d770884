// Package shutdown coordinates graceful process termination.
//
// Components register named cleanup hooks at startup. When SIGINT or
// SIGTERM arrives the hooks run in reverse registration order, each under
// a shared deadline, so dependents close before the things they depend on.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type hook struct {
	name string
	fn   func(context.Context) error
}

// Stack runs registered cleanup hooks when the process is told to stop.
type Stack struct {
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	hooks []hook

	trigger chan struct{}
	once    sync.Once
	done    chan struct{}
}

// New creates a shutdown stack. Hooks get at most timeout in total.
func New(timeout time.Duration, logger *slog.Logger) *Stack {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stack{
		timeout: timeout,
		logger:  logger,
		trigger: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Register adds a cleanup hook. Hooks run in reverse registration order.
func (s *Stack) Register(name string, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook{name: name, fn: fn})
}

// Trigger starts shutdown without a signal. Safe to call more than once.
func (s *Stack) Trigger() {
	s.once.Do(func() { close(s.trigger) })
}

// Wait blocks until SIGINT, SIGTERM, or Trigger, then runs the hooks.
// The last hook error is returned; every failure is logged.
func (s *Stack) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	case <-s.trigger:
		s.logger.Info("shutdown triggered")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.mu.Lock()
	hooks := make([]hook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	var lastErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			s.logger.Error("shutdown hook failed", "hook", h.name, "error", err)
			lastErr = err
		} else {
			s.logger.Debug("shutdown hook done", "hook", h.name)
		}
	}

	close(s.done)
	return lastErr
}

// Done closes after all hooks have run.
func (s *Stack) Done() <-chan struct{} {
	return s.done
}
