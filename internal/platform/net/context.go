// Package net carries request scoped values shared by the transport layers
package net

import (
	"context"

	"gracewell/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keyCaller ctxKey = iota

// WithRequest stores the request id where chi and the request logger both find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id or ""
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return chimw.GetReqID(ctx)
}

// WithCaller annotates ctx with the authenticated caller role, e.g. "cron" or "admin"
func WithCaller(ctx context.Context, caller string) context.Context {
	if caller == "" {
		return ctx
	}
	return context.WithValue(ctx, keyCaller, caller)
}

// Caller returns the authenticated caller role or ""
func Caller(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(keyCaller).(string)
	return v
}
