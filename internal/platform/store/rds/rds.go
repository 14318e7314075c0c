// Package rds provides a small redis backed byte cache
package rds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client wraps a go-redis client with the cache surface store needs
type Client struct {
	c redis.UniversalClient
}

// Open connects and pings once
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("rds: ping: %w", err)
	}
	return &Client{c: c}, nil
}

// New wraps an existing client, for tests and shared pools
func New(c redis.UniversalClient) *Client { return &Client{c: c} }

// Get returns ok=false on a miss
func (r *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores val under key for ttl; ttl 0 means no expiry
func (r *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.c.Set(ctx, key, val, ttl).Err()
}

// Ping checks the server is reachable
func (r *Client) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// Close releases the pool
func (r *Client) Close() error { return r.c.Close() }
