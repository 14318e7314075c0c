package module

import (
	"context"

	"inputdash/internal/services/api/search/domain"
	searchsvc "inputdash/internal/services/api/search/service"
)

// Ports exposes the search service to other modules
func (m *Module) Ports() any { return adaptSearchPort{svc: m.svc} }

type adaptSearchPort struct{ svc searchsvc.Service }

// Dashboard runs the full dashboard search
func (a adaptSearchPort) Dashboard(ctx context.Context, in domain.SearchInput) (domain.Dashboard, error) {
	return a.svc.Dashboard(ctx, in)
}

// Opinions returns one page of opinions
func (a adaptSearchPort) Opinions(ctx context.Context, in domain.SearchInput) (domain.OpinionPage, error) {
	return a.svc.Opinions(ctx, in)
}

// Warm refreshes the cached default dashboard
func (a adaptSearchPort) Warm(ctx context.Context) error { return a.svc.Warm(ctx) }
