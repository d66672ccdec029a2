package lifecycle

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShutdown_ReverseRegistrationOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"postgres", "redis", "http_server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	want := []string{"http_server", "redis", "postgres"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("stop order = %v, want %v", order, want)
		}
	}
}

func TestShutdown_AggregatesFailures(t *testing.T) {
	m := New(time.Second, nil)

	var lastRan bool
	m.Register("first", func(ctx context.Context) error { lastRan = true; return nil })
	m.Register("broken-a", func(ctx context.Context) error { return errors.New("a failed") })
	m.Register("broken-b", func(ctx context.Context) error { return errors.New("b failed") })

	err := m.Shutdown(context.Background())
	if err == nil {
		t.Fatal("failing hooks must surface an error")
	}
	if msg := err.Error(); !strings.Contains(msg, "broken-a") || !strings.Contains(msg, "broken-b") {
		t.Errorf("error %q must name both failed components", msg)
	}
	if !lastRan {
		t.Error("a failing hook must not stop the remaining hooks")
	}
}

func TestShutdown_NoHooks(t *testing.T) {
	if err := New(time.Second, nil).Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown with no hooks = %v, want nil", err)
	}
}

func TestRegister_NilHookIgnored(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("noop", nil)
	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown = %v, want nil", err)
	}
}
