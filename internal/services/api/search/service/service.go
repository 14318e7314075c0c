// Package service runs dashboard searches: form defaults, the batched search, summaries and caching
package service

import (
	"context"
	"encoding/json"
	"time"

	"inputdash/internal/core/facets"
	"inputdash/internal/core/window"
	"inputdash/internal/platform/logger"
	"inputdash/internal/platform/store"
	tim "inputdash/internal/platform/time"
	"inputdash/internal/services/api/search/domain"

	"github.com/google/uuid"
)

// Service defines the search service contract
type Service interface {
	domain.ServicePort
	domain.Warmer
}

// cacheNS scopes cache keys derived from a normalized form
var cacheNS = uuid.MustParse("6f1c55a4-7f8e-4b59-9a43-0c3f3b6d2e11")

const cachePrefix = "search:dash:"

// Svc implements the search service
type Svc struct {
	searcher *Searcher
	settings Settings
	cache    store.Cache
	ttl      time.Duration
}

// New constructs a search service. cache may be nil to disable response caching.
func New(s *Searcher, set Settings, cache store.Cache, ttl time.Duration) *Svc {
	if s == nil || s.Backend == nil {
		panic("search.Service requires a searcher with a backend")
	}
	if s.Resolver == nil {
		panic("search.Service requires a non nil Resolver")
	}
	if set.PerPage < 1 {
		set.PerPage = 20
	}
	return &Svc{searcher: s, settings: set, cache: cache, ttl: ttl}
}

func (s *Svc) today() time.Time {
	c := s.searcher.Clock
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return tim.Today(now(), c.Loc)
}

// Dashboard runs the full dashboard query: page, sentiment, demographics, period and chart
func (s *Svc) Dashboard(ctx context.Context, in domain.SearchInput) (domain.Dashboard, error) {
	return s.dashboard(ctx, in, false)
}

// Warm recomputes the default dashboard and refreshes its cache entry
func (s *Svc) Warm(ctx context.Context) error {
	_, err := s.dashboard(ctx, domain.SearchInput{}, true)
	return err
}

func (s *Svc) dashboard(ctx context.Context, in domain.SearchInput, refresh bool) (domain.Dashboard, error) {
	today := s.today()
	f, err := Normalize(in, s.settings, today)
	if err != nil {
		return domain.Dashboard{}, err
	}

	key := cacheKey(f, today)
	if !refresh {
		if d, ok := s.cached(ctx, key); ok {
			return d, nil
		}
	}

	names := make([]string, 0, len(facets.Kinds()))
	for _, k := range facets.Kinds() {
		names = append(names, k.String())
	}
	out, err := s.searcher.Query(ctx, Request{
		Term:    f.Query,
		Limit:   f.PerPage,
		Offset:  f.Offset,
		Options: f.Options(),
		Facets:  names,
	})
	if err != nil {
		return domain.Dashboard{}, err
	}

	d := domain.Dashboard{
		IsDashboard: f.Dashboard,
		Query:       f.Query,
		Product:     f.Product.Short,
		Version:     f.Version,
	}
	d.Period, d.Days = PeriodOf(f, today)
	d.Page = window.Paginate(out.View, f.Page, f.PerPage)
	d.OpinionCount = out.View.Len()

	if out.View.Len() > 0 {
		d.Sentiment = SentimentOf(out.Facets[facets.Type.String()].Attrs)
		d.Demo = DemographicsOf(out.Facets)
		d.Chart = ChartOf(out.Facets[facets.DaySentiment.String()].Days, d.Period, d.Days, f.Type)
	} else {
		d.Sentiment = SentimentOf(nil)
	}

	s.store(ctx, key, d)
	return d, nil
}

// Opinions returns one page of matching opinions without facets
func (s *Svc) Opinions(ctx context.Context, in domain.SearchInput) (domain.OpinionPage, error) {
	f, err := Normalize(in, s.settings, s.today())
	if err != nil {
		return domain.OpinionPage{}, err
	}
	out, err := s.searcher.Query(ctx, Request{
		Term:    f.Query,
		Limit:   f.PerPage,
		Offset:  f.Offset,
		Options: f.Options(),
	})
	if err != nil {
		return domain.OpinionPage{}, err
	}
	return domain.OpinionPage{
		Query:        f.Query,
		OpinionCount: out.View.Len(),
		Page:         window.Paginate(out.View, f.Page, f.PerPage),
	}, nil
}

// cacheKey names a dashboard by its normalized form and the day it was computed for
func cacheKey(f Form, today time.Time) string {
	payload := struct {
		Form  Form
		Today string
	}{f, today.Format(tim.DateLayout)}
	b, _ := json.Marshal(payload)
	return cachePrefix + uuid.NewSHA1(cacheNS, b).String()
}

func (s *Svc) cached(ctx context.Context, key string) (domain.Dashboard, bool) {
	if s.cache == nil {
		return domain.Dashboard{}, false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
		return domain.Dashboard{}, false
	}
	if !ok {
		return domain.Dashboard{}, false
	}
	var d domain.Dashboard
	if err := json.Unmarshal(b, &d); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("dashboard cache entry unreadable")
		return domain.Dashboard{}, false
	}
	d.Cached = true
	return d, true
}

func (s *Svc) store(ctx context.Context, key string, d domain.Dashboard) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	b, err := json.Marshal(d)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("dashboard cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
	}
}

var _ Service = (*Svc)(nil)
