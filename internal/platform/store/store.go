// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inputdash/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	Log logger.Logger

	// PG is the opinion row store, nil when disabled
	PG Querier

	// CH is the clickhouse seam, nil when disabled
	CH Clickhouse

	// RDS is the result cache, nil when disabled
	RDS Cache
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// Querier is the read surface repos use for sql
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Clickhouse is the columnar query seam
type Clickhouse interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Cache is a byte oriented key value seam with expiry
type Cache interface {
	// Get returns ok=false on a miss, never an error
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

var (
	openPGFn  = openPG
	openCHFn  = openCH
	openRDSFn = openRDS
)

// stage opens one backend and publishes it on the Store
type stage struct {
	on   bool
	open func(context.Context, Config, *Store) error
}

func stages(cfg Config) []stage {
	return []stage{
		{cfg.PG.Enabled, func(ctx context.Context, cfg Config, s *Store) (err error) {
			s.PG, err = openPGFn(ctx, cfg, s)
			return err
		}},
		{cfg.CH.Enabled, func(ctx context.Context, cfg Config, s *Store) (err error) {
			s.CH, err = openCHFn(ctx, cfg, s)
			return err
		}},
		{cfg.RDS.Enabled, func(ctx context.Context, cfg Config, s *Store) (err error) {
			s.RDS, err = openRDSFn(ctx, cfg, s)
			return err
		}},
	}
}

// Open constructs a Store with the backends cfg enables, in order pg, ch, redis.
// If one fails the ones already open are closed and the error is returned.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	for _, st := range stages(cfg) {
		if !st.on {
			continue
		}
		if err := st.open(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

type seam struct {
	name string
	v    any
}

// seams lists the configured backends by name in open order
func (s *Store) seams() []seam {
	var out []seam
	if s.PG != nil {
		out = append(out, seam{"pg", s.PG})
	}
	if s.CH != nil {
		out = append(out, seam{"ch", s.CH})
	}
	if s.RDS != nil {
		out = append(out, seam{"redis", s.RDS})
	}
	return out
}

// Guard pings every configured seam that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, sm := range s.seams() {
		p, ok := sm.v.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes the open backends in reverse open order
func (s *Store) Close(_ context.Context) error {
	seams := s.seams()
	var errs []error
	for i := len(seams) - 1; i >= 0; i-- {
		switch c := seams[i].v.(type) {
		case interface{ Close() error }:
			errs = append(errs, c.Close())
		case interface{ Close() }:
			c.Close()
		}
	}
	return errors.Join(errs...)
}
