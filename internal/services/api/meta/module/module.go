// Package module mounts the meta endpoints: health, readiness, version, service
package module

import (
	"time"

	modkit "inputdash/internal/modkit"
	"inputdash/internal/modkit/httpkit"
	modreg "inputdash/internal/modkit/module"

	metahttp "inputdash/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/health and /meta/service
const ServiceName = "inputdash-api"

// Module serves process metadata; it exposes no ports
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New builds the meta module; the start time is taken now
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		built: modkit.Build("meta", "/meta", opts...),
		deps: metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   time.Now(),
			Pingers:     deps.Pingers(),
			Modules:     modreg.Names,
		},
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}

func (m *Module) Name() string { return m.built.Name }
func (m *Module) Ports() any   { return nil }
