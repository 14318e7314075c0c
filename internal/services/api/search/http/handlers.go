// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"inputdash/internal/modkit/httpkit"
	"inputdash/internal/services/api/search/domain"
)

// CacheHeader reports whether a dashboard came from the response cache
const CacheHeader = "X-Cache"

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// full dashboard: page, sentiment, demographics, chart
	httpkit.PostJSON[domain.SearchInput](r, "/", h.dashboard)

	// page of opinions only
	httpkit.PostJSON[domain.SearchInput](r, "/opinions", h.opinions)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /search Search searchDashboard
// @Summary Search dashboard
// @Description Runs the primary search and every facet in one backend round trip
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Search form"
// @Success 200 {object} domain.Dashboard "ok"
// @Failure 502 {object} httpkit.Envelope "search backend error"
// @Failure 504 {object} httpkit.Envelope "search timed out"
// @Router /search [post]
func (h *handlers) dashboard(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	d, err := h.svc.Dashboard(r.Context(), in)
	if err != nil {
		return nil, err
	}
	status := "MISS"
	if d.Cached {
		status = "HIT"
		httpkit.MarkCacheHit(r.Context())
	}
	return httpkit.WithHeader(httpkit.OK(d), CacheHeader, status), nil
}

// swagger:route POST /search/opinions Search searchOpinions
// @Summary Opinion feed
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Search form"
// @Success 200 {object} domain.OpinionPage "ok"
// @Failure 502 {object} httpkit.Envelope "search backend error"
// @Failure 504 {object} httpkit.Envelope "search timed out"
// @Router /search/opinions [post]
func (h *handlers) opinions(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Opinions(r.Context(), in)
}
