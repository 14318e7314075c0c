// Package api provides the HTTP API for the dashboard
package api

import (
	"time"

	"inputdash/internal/core/batch"
	"inputdash/internal/platform/config"
	"inputdash/internal/platform/logger"
	phttp "inputdash/internal/platform/net/http"
	"inputdash/internal/platform/store"

	"inputdash/internal/modkit"
	"inputdash/internal/modkit/httpkit"
	"inputdash/internal/modkit/module"
	"inputdash/internal/modkit/swaggerkit"

	metamod "inputdash/internal/services/api/meta/module"
	searchmod "inputdash/internal/services/api/search/module"

	"github.com/robfig/cron/v3"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules apply their own prefixes
	Config config.Conf
	Store  *store.Store
	Search batch.Backend

	// Scheduler runs cache warm up when set
	Scheduler *cron.Cron
	Logger    *logger.Logger
	Loc       *time.Location

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log:    opt.Logger,
		Cfg:    opt.Config,
		Search: opt.Search,
		Loc:    opt.Loc,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.Cache = opt.Store.RDS
	}

	mods := []module.Module{
		metamod.New(deps),
		searchmod.New(deps, modkit.WithScheduler(opt.Scheduler)),
	}

	httpkit.MountAPIV1(r, httpkit.Stack(httpkit.StackOptions{Log: opt.Logger}), func(api httpkit.Router) {
		swaggerkit.Mount(r, swaggerkit.Options{
			Enabled:     opt.EnableSwagger,
			Server:      "/api/" + httpkit.APIVersion,
			TitleSuffix: opt.Config.Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""),
		})
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
