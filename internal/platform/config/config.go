// Package config reads service configuration from namespaced environment variables.
//
// Lookups go through a Conf, which carries the accumulated prefix. Malformed
// optional values log a warning and fall back; required and enum values panic
// so a misconfigured process never boots.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"inputdash/internal/platform/logger"
)

// Source resolves a fully prefixed key; the empty string means unset
type Source func(key string) string

// Conf is a namespaced view over a Source, e.g. "SEARCH_" or "SERVICE_PGSQL_"
type Conf struct {
	prefix string
	src    Source
}

// New reads the process environment
func New() Conf { return Conf{src: os.Getenv} }

// FromMap reads from m; used by tests and tools that build config by hand
func FromMap(m map[string]string) Conf {
	return Conf{src: func(k string) string { return m[k] }}
}

// Prefix returns a child view, e.g. cfg.Prefix("SEARCH_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, src: c.src} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string {
	if c.src == nil {
		return ""
	}
	return strings.TrimSpace(c.src(c.key(k)))
}

// parsed returns parse(value), or def when the key is unset or parse fails
func parsed[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Interface("default", def).
			Err(err).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MustString panics if the key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

func (c Conf) MayInt(key string, def int) int {
	return parsed(c, key, def, "int", strconv.Atoi)
}

func (c Conf) MayBool(key string, def bool) bool {
	return parsed(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration rejects negative durations
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, def, "duration", func(s string) (time.Duration, error) {
		d, err := time.ParseDuration(s)
		if err == nil && d < 0 {
			return 0, strconv.ErrRange
		}
		return d, err
	})
}

// MayLocation loads an IANA zone name such as "America/Los_Angeles"
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	return parsed(c, key, def, "time zone", time.LoadLocation)
}

// MayCSV returns the non-empty comma separated parts, or def when there are none
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for p := range strings.SplitSeq(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lower-cased value when it is one of allowed and def when
// unset. Anything else panics.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
