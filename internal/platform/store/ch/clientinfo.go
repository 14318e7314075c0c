package ch

import (
	"os"
	"runtime"
	"strings"

	"inputdash/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo names this process in system.query_log: the service build,
// the caller's role and tag, the Go runtime and the host
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	products := []struct{ Name, Version string }{
		{version.Service, version.Info().Version + "+" + version.Short()},
		{"role", role},
		{"tag", tag},
		{"go", runtime.Version()},
		{"host", host},
	}
	info := clickhouse.ClientInfo{}
	for _, p := range products {
		if v := strings.TrimSpace(p.Version); v != "" {
			info.Products = append(info.Products, struct{ Name, Version string }{p.Name, v})
		}
	}
	return info
}
