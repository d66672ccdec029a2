// Package lifecycle owns process shutdown: components register hooks as they
// start, an OS signal flips the run context, and hooks run in reverse start
// order under a single deadline.
package lifecycle

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Hook stops one component. It must respect the context deadline.
type Hook func(ctx context.Context) error

// Manager collects shutdown hooks and runs them once on termination.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	names []string
	hooks []Hook
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register adds a named hook. The component registered last stops first, so
// the HTTP server drains before its dependencies close.
func (m *Manager) Register(name string, fn Hook) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	m.hooks = append(m.hooks, fn)
}

// Listen invokes cancel when SIGINT or SIGTERM arrives.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		signal.Stop(sigCh)
		m.logger.Info("shutdown requested", zap.String("signal", sig.String()))
		cancel()
	}()
}

// Shutdown runs every hook in reverse registration order under the
// configured timeout. A failing hook does not stop the rest; all failures
// are reported together.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var result *multierror.Error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		name := m.names[i]
		if err := m.hooks[i](ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
			m.logger.Error("component stop failed", zap.String("component", name), zap.Error(err))
			continue
		}
		m.logger.Info("component stopped", zap.String("component", name))
	}
	return result.ErrorOrNil()
}
