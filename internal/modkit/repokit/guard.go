package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger is anything that can answer a readiness ping
type Pinger interface{ Ping(context.Context) error }

// PingAll pings each named dependency under timeout and returns the first failure
func PingAll(ctx context.Context, timeout time.Duration, deps map[string]Pinger) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for name, p := range deps {
		if p == nil {
			return fmt.Errorf("%s: nil dependency", name)
		}
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s ping failed: %w", name, err)
		}
	}
	return nil
}

// MustPing panics if a dependency doesn't answer a Ping within timeout
func MustPing(ctx context.Context, name string, p Pinger) {
	if err := PingAll(ctx, 5*time.Second, map[string]Pinger{name: p}); err != nil {
		panic(err.Error())
	}
}
