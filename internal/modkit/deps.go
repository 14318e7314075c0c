// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"inputdash/internal/core/batch"
	"inputdash/internal/core/vocab"
	"inputdash/internal/platform/config"
	"inputdash/internal/platform/logger"
	"inputdash/internal/platform/store"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// PG resolves opinion ids to records
	PG store.Querier

	// Cache is optional; nil disables response caching
	Cache store.Cache

	// Search is the backend every query batch runs against
	Search batch.Backend

	Vocab vocab.Provider
	Now   func() time.Time
	Loc   *time.Location
}

// Clock returns Now or time.Now
func (d Deps) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

// Location returns Loc or time.Local
func (d Deps) Location() *time.Location {
	if d.Loc == nil {
		return time.Local
	}
	return d.Loc
}

// Vocabulary returns Vocab or the built in lists
func (d Deps) Vocabulary() vocab.Provider {
	if d.Vocab == nil {
		return vocab.Static()
	}
	return d.Vocab
}

// Logger returns Log or the process logger
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Get()
	}
	return d.Log
}

// Pingers lists the dependencies that answer Ping, keyed by check name
func (d Deps) Pingers() map[string]store.Pinger {
	out := map[string]store.Pinger{}
	add := func(name string, v any) {
		if p, ok := v.(store.Pinger); ok && p != nil {
			out[name] = p
		}
	}
	add("pg", d.PG)
	add("search", d.Search)
	add("redis", d.Cache)
	return out
}
