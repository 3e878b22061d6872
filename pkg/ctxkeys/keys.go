// Package ctxkeys defines typed context keys to avoid SA1029 lint warnings
// and prevent key collisions across packages.
package ctxkeys

import (
	"context"
	"time"
)

// Key is a typed context key to prevent collisions.
type Key string

const (
	KeyRequestID    Key = "request_id"
	KeyClientIP     Key = "client_ip"
	KeyRequestStart Key = "request_start"
)

// WithRequestID stores the inbound request ID so components below the HTTP
// layer can tag logs and events with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, KeyRequestID, id)
}

// GetRequestID extracts request_id from context.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(KeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithClientIP stores the caller address resolved by the HTTP layer.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, KeyClientIP, ip)
}

// WithRequestStart stores the time the request was received.
func WithRequestStart(ctx context.Context, start time.Time) context.Context {
	return context.WithValue(ctx, KeyRequestStart, start)
}

// GetClientIP extracts client_ip from context.
func GetClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(KeyClientIP).(string); ok {
		return v
	}
	return ""
}

// GetRequestStart extracts request_start from context.
func GetRequestStart(ctx context.Context) (time.Time, bool) {
	if v, ok := ctx.Value(KeyRequestStart).(time.Time); ok {
		return v, true
	}
	return time.Time{}, false
}
