package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"inputdash/internal/core/batch"
	"inputdash/internal/core/facets"
	"inputdash/internal/core/filters"
	"inputdash/internal/core/vocab"
	"inputdash/internal/core/window"
	"inputdash/internal/services/api/search/domain"
)

// PrimaryName is the batch name of the relevance query
const PrimaryName = "primary"

// FieldHasURL flags opinions that carry a url
const FieldHasURL = "has_url"

var urlToken = regexp.MustCompile(`\burl:\*\B`)

// Resolver turns ordered opinion ids into records without reordering them
type Resolver interface {
	ByIDs(ctx context.Context, ids []int64) ([]domain.Opinion, error)
}

// Request is one search: a term, a page window, filter options and facet names
type Request struct {
	Term    string
	Limit   int
	Offset  int
	Options filters.Options
	Facets  []string
}

// Outcome is a windowed page of opinions plus the decoded facets keyed by name
type Outcome struct {
	View   window.View[domain.Opinion]
	Facets map[string]facets.Set
}

// Searcher builds one batch per Query call and is safe to share between requests
type Searcher struct {
	Backend  batch.Backend
	Resolver Resolver
	Vocab    vocab.Provider
	Clock    filters.Clock
	Index    string

	// Timeout bounds the whole batch round trip; zero means no deadline beyond ctx
	Timeout time.Duration
}

// Sanitize strips the reserved ^ and $ markers from a search term
func Sanitize(term string) string {
	return strings.ReplaceAll(strings.Trim(term, "^$ "), "^$", "")
}

// Query runs req as one batch and resolves the primary matches
func (s *Searcher) Query(ctx context.Context, req Request) (Outcome, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	req.Limit = min(req.Limit, batch.HardLimit)
	req.Offset = max(req.Offset, 0)

	term := Sanitize(req.Term)
	b := batch.New(s.Index)
	b.SetMatchMode(batch.MatchBoolean)

	c := filters.Compile(req.Options, s.Clock)
	for _, f := range c.Exact {
		b.SetFilter(f.Field, f.Value)
	}
	for _, r := range c.Ranges {
		b.SetFilterRange(r.Field, r.Lo, r.Hi)
	}
	for _, f := range c.Metas {
		b.SetFilter(f.Field, f.Value)
	}

	if urlToken.MatchString(term) {
		b.SetFilter(FieldHasURL, 1)
		term = strings.Join(urlToken.Split(term, -1), "")
	}

	for _, name := range req.Facets {
		if _, err := b.AddFacet(name, term); err != nil {
			return Outcome{}, err
		}
	}
	if _, err := b.Add(PrimaryName, term,
		batch.WithWindow(min(batch.HardLimit-req.Limit, req.Offset), req.Limit),
		batch.WithSort(filters.FieldCreated+" DESC"),
	); err != nil {
		return Outcome{}, err
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	res, err := b.Execute(ctx, s.Backend)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{View: window.Empty[domain.Opinion](), Facets: make(map[string]facets.Set, len(req.Facets))}
	p := s.Vocab
	if p == nil {
		p = vocab.Static()
	}
	for _, name := range req.Facets {
		k, ok := facets.ParseKind(name)
		if !ok {
			continue
		}
		r, _ := res.ByName(name)
		out.Facets[name] = facets.Decode(k, r, p)
	}

	primary, _ := res.ByName(PrimaryName)
	if primary.Matches == nil {
		return out, nil
	}

	ids := make([]int64, len(primary.Matches))
	for i, m := range primary.Matches {
		ids[i] = m.ID
	}
	ops, err := s.Resolver.ByIDs(ctx, ids)
	if err != nil {
		return Outcome{}, err
	}
	out.View = window.New(ops, int(primary.TotalFound), req.Offset)
	return out, nil
}
