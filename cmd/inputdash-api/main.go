// @title         inputdash API
// @version       1.0
// @description   Read only search and reporting endpoints over product feedback

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inputdash/internal/adapters/searchd/chsearch"
	"inputdash/internal/adapters/searchd/elastic"
	"inputdash/internal/core/batch"
	"inputdash/internal/modkit/repokit"
	"inputdash/internal/platform/config"
	"inputdash/internal/platform/logger"
	phttp "inputdash/internal/platform/net/http"
	"inputdash/internal/platform/store"

	"inputdash/internal/services/api"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
)

const (
	backendElastic    = "elastic"
	backendClickhouse = "clickhouse"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := root.MayEnum("SEARCH_BACKEND", backendElastic, backendElastic, backendClickhouse)

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	st, err := store.Open(
		openCtx,
		store.Config{
			AppName: "inputdash",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled:     backend == backendClickhouse || chCfg.MayBool("ENABLED", false),
				DSN:         chCfg.MayString("DSN", ""),
				ClientTag:   "api",
				DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
			},
			RDS: store.RedisConfig{
				Enabled:  rdsCfg.MayBool("ENABLED", false),
				Addr:     rdsCfg.MayString("ADDR", "localhost:6379"),
				Password: rdsCfg.MayString("PASSWORD", ""),
				DB:       rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		cancel()
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(openCtx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	search, err := openSearch(root, backend, st)
	if err != nil {
		l.Panic().Err(err).Str("backend", backend).Msg("search backend")
	}
	if p, ok := search.(store.Pinger); ok {
		repokit.MustPing(openCtx, "search", p)
	}
	cancel()
	l.Info().Str("backend", backend).Msg("search backend ready")

	sched := cron.New()
	sched.Start()
	defer sched.Stop()

	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(chimw.Heartbeat("/health"))
	})

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Search:         search,
			Scheduler:      sched,
			Logger:         l,
			Loc:            root.MayLocation("SEARCH_TZ", time.Local),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

func openSearch(root config.Conf, backend string, st *store.Store) (batch.Backend, error) {
	text := root.MayString("SEARCH_TEXT_FIELD", "")
	parallel := root.MayInt("SEARCH_PARALLEL", chsearch.DefaultParallel)
	if backend == backendClickhouse {
		return chsearch.New(st.CH, text, chsearch.WithParallel(parallel)), nil
	}
	esCfg := root.Prefix("SERVICE_ELASTIC_")
	return elastic.Open(elastic.Config{
		Addresses:     esCfg.MayCSV("ADDRS", []string{"http://localhost:9200"}),
		Username:      esCfg.MayString("USERNAME", ""),
		Password:      esCfg.MayString("PASSWORD", ""),
		TextField:     text,
		MaxConcurrent: parallel,
	})
}
