package net_test

import (
	"context"
	"testing"

	pnet "gracewell/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	t.Parallel()

	ctx := pnet.WithRequest(context.Background(), "req-7")
	if got := pnet.RequestID(ctx); got != "req-7" {
		t.Fatalf("RequestID = %q, want req-7", got)
	}

	base := context.Background()
	if pnet.WithRequest(base, "") != base {
		t.Fatalf("empty id must return ctx untouched")
	}
	if pnet.RequestID(base) != "" {
		t.Fatalf("bare ctx must yield empty id")
	}
}

func TestWithCaller(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, in, want string
	}{
		{"cron", "cron", "cron"},
		{"admin", "admin", "admin"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithCaller(context.Background(), tc.in)
			if got := pnet.Caller(ctx); got != tc.want {
				t.Fatalf("Caller = %q, want %q", got, tc.want)
			}
		})
	}
}
