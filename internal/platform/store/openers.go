package store

import (
	"context"
	"fmt"
	"time"

	"inputdash/internal/platform/logger"
	chx "inputdash/internal/platform/store/ch"
	"inputdash/internal/platform/store/pg"
	"inputdash/internal/platform/store/rds"

	"github.com/cenkalti/backoff/v4"
)

// openPG builds the pool and waits for postgres to answer before publishing the adapter
func openPG(ctx context.Context, cfg Config, s *Store) (Querier, error) {
	opts := []pg.Option{pg.WithAppName(cfg.AppName)}
	if cfg.PG.LogSQL {
		opts = append(opts, pg.WithTracer(pg.Tracer(s.Log), cfg.PG.SlowQueryMs))
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
	}, opts...)
	if err != nil {
		return nil, err
	}

	if err := pingUntilUp(ctx, "pg", s.Log, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

const (
	maxPingAttempts = 20
	pingTimeout     = 3 * time.Second
)

// bootRetry paces pings to a backend that may still be starting
var bootRetry = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, maxPingAttempts-1)
}

// pingUntilUp retries ping, each try bounded by pingTimeout, until it succeeds,
// the attempts run out or ctx ends
func pingUntilUp(ctx context.Context, name string, log logger.Logger, ping func(context.Context) error) error {
	attempts := 0
	op := func() error {
		attempts++
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return ping(pctx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Str("backend", name).Int("attempt", attempts).Dur("retry_in", wait).Err(err).Msg("backend not ready")
	}
	err := backoff.RetryNotify(op, backoff.WithContext(bootRetry(), ctx), notify)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%s ping failed after %d attempts: %w", name, attempts, err)
	}
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		DSN:         cfg.CH.DSN,
		Role:        cfg.AppName,
		Tag:         cfg.CH.ClientTag,
		DialTimeout: cfg.CH.DialTimeout,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

func openRDS(ctx context.Context, cfg Config, _ *Store) (Cache, error) {
	return rds.Open(ctx, rds.Config{
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
	})
}
