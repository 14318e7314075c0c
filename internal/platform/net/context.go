// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyCache ctxKey = "cache_status"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	// chi's key so chimw.GetReqID can see it
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// CacheStatus is a mutable slot a handler fills in so middleware can report hit or miss
type CacheStatus struct {
	Hit bool
}

// WithCacheStatus installs an empty CacheStatus and returns it
func WithCacheStatus(ctx context.Context) (context.Context, *CacheStatus) {
	cs := &CacheStatus{}
	return context.WithValue(ctx, keyCache, cs), cs
}

// MarkCacheHit flags the request as served from cache, if a slot exists
func MarkCacheHit(ctx context.Context) {
	if cs, ok := ctx.Value(keyCache).(*CacheStatus); ok && cs != nil {
		cs.Hit = true
	}
}
