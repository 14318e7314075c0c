package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	DSN     string
	// ClientTag is reported to the server in client info
	ClientTag   string
	DialTimeout time.Duration
}

// RedisConfig configures the redis result cache
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}
