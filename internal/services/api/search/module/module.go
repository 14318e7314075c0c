// Package module wires search into the API using modkit
package module

import (
	"context"
	"time"

	"inputdash/internal/core/batch"
	"inputdash/internal/core/filters"
	modkit "inputdash/internal/modkit"
	"inputdash/internal/modkit/httpkit"
	"inputdash/internal/modkit/repokit"
	"inputdash/internal/modkit/swaggerkit"
	searchhttp "inputdash/internal/services/api/search/http"
	searchrepo "inputdash/internal/services/api/search/repo"
	searchsvc "inputdash/internal/services/api/search/service"

	"github.com/robfig/cron/v3"
)

// Config is the search tuning read from SEARCH_* and CORE_API_RATE_*
type Config struct {
	Index          string
	Timeout        time.Duration
	PerPage        int
	DefaultVersion string
	CacheTTL       time.Duration
	WarmSpec       string
	RatePerMinute  int
	RateBurst      int
}

// ConfigFrom reads Config from deps
func ConfigFrom(deps modkit.Deps) Config {
	sc := deps.Cfg.Prefix("SEARCH_")
	api := deps.Cfg.Prefix("CORE_API_")
	return Config{
		Index:          sc.MayString("INDEX", "opinions"),
		Timeout:        sc.MayDuration("TIMEOUT", 5*time.Second),
		PerPage:        sc.MayInt("PERPAGE", 20),
		DefaultVersion: sc.MayString("DEFAULT_VERSION", ""),
		CacheTTL:       sc.MayDuration("CACHE_TTL", 5*time.Minute),
		WarmSpec:       sc.MayString("WARM_SPEC", ""),
		RatePerMinute:  api.MayInt("RATE_RPM", 120),
		RateBurst:      api.MayInt("RATE_BURST", 20),
	}
}

// Module wires the dashboard search service behind /search
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   searchsvc.Service
}

// New builds the search module. It panics without a search backend, and
// schedules warm up when a scheduler is passed and SEARCH_WARM_SPEC is set.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Search == nil {
		panic("search.Module requires a search backend")
	}
	cfg := ConfigFrom(deps)
	b := modkit.Build("search", "/search", opts...)
	if cfg.RatePerMinute > 0 {
		b.Use(httpkit.RateLimit(cfg.RatePerMinute, cfg.RateBurst))
	}

	searcher := &searchsvc.Searcher{
		Backend:  deps.Search,
		Resolver: repokit.MustBind(searchrepo.NewPG(), deps.PG),
		Vocab:    deps.Vocabulary(),
		Clock:    filters.Clock{Now: deps.Clock(), Loc: deps.Location()},
		Index:    cfg.Index,
		Timeout:  cfg.Timeout,
	}
	m := &Module{
		deps:  deps,
		built: b,
		svc: searchsvc.New(searcher, searchsvc.Settings{
			PerPage:        cfg.PerPage,
			DefaultVersion: cfg.DefaultVersion,
		}, deps.Cache, cfg.CacheTTL),
	}

	if b.Scheduler != nil && cfg.WarmSpec != "" {
		m.scheduleWarm(b.Scheduler, cfg)
	}

	swaggerkit.Register(func(spec map[string]any) {
		swaggerkit.AddResponse(spec, b.Prefix, "502", "Bad Gateway", backendErrorExample)
		swaggerkit.AddResponse(spec, b.Prefix, "504", "Gateway Timeout", timeoutExample)
	})
	return m
}

func (m *Module) scheduleWarm(c *cron.Cron, cfg Config) {
	log := m.deps.Logger()
	timeout := max(cfg.Timeout*2, 10*time.Second)
	_, err := c.AddFunc(cfg.WarmSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := m.svc.Warm(ctx); err != nil {
			log.Warn().Err(err).Msg("dashboard warm failed")
			return
		}
		log.Debug().Dur("elapsed", time.Since(start)).Msg("dashboard warmed")
	})
	if err != nil {
		log.Error().Err(err).Str("spec", cfg.WarmSpec).Msg("invalid SEARCH_WARM_SPEC, warm-up disabled")
		return
	}
	log.Info().Str("spec", cfg.WarmSpec).Msg("dashboard warm-up scheduled")
}

var (
	backendErrorExample = map[string]any{
		"status_code": 502,
		"status":      "Bad Gateway",
		"code":        10,
		"error":       "search backend error: connection refused",
		"request_id":  "579f33bf50b1/abc-000001",
	}
	timeoutExample = map[string]any{
		"status_code": 504,
		"status":      "Gateway Timeout",
		"code":        9,
		"error":       batch.TimeoutMessage,
		"request_id":  "579f33bf50b1/abc-000001",
	}
)

func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { searchhttp.Register(sub, m.svc) })
}

func (m *Module) Name() string { return m.built.Name }
