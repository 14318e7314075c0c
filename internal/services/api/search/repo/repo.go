// Package repo resolves opinion ids from the search index to stored records
package repo

import (
	"context"

	"inputdash/internal/core/vocab"
	"inputdash/internal/modkit/repokit"
	perr "inputdash/internal/platform/errors"
	"inputdash/internal/platform/store"
	"inputdash/internal/services/api/search/domain"
)

// Repo is the persistence surface search needs
type Repo interface {
	// ByIDs returns opinions in the order of ids; ids with no row are dropped
	ByIDs(ctx context.Context, ids []int64) ([]domain.Opinion, error)
}

type (
	// PG binds the repo to a postgres Queryer
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) ByIDs(ctx context.Context, ids []int64) ([]domain.Opinion, error) {
	if len(ids) == 0 {
		return []domain.Opinion{}, nil
	}
	const sql = `
select id, type, product, version, platform, locale,
       coalesce(manufacturer, ''), coalesce(device, ''),
       description, coalesce(url, ''), created
from feedback_opinion
where id = any($1)
`
	byID, err := store.Keyed(ctx, r.q, scanOpinion, func(o domain.Opinion) int64 { return o.ID }, sql, ids)
	if err != nil {
		return nil, perr.FromPostgres(err, "load opinions")
	}
	return ManualOrder(ids, byID), nil
}

func scanOpinion(row store.Row) (domain.Opinion, error) {
	var o domain.Opinion
	err := row.Scan(&o.ID, &o.Type, &o.Product, &o.Version, &o.Platform, &o.Locale,
		&o.Manufacturer, &o.Device, &o.Description, &o.URL, &o.Created)
	if t, ok := vocab.TypeByID(int64(o.Type)); ok {
		o.Sentiment = t.Short
	}
	return o, err
}

// ManualOrder lays out found records in ids order, skipping missing ids
func ManualOrder[T any](ids []int64, found map[int64]T) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := found[id]; ok {
			out = append(out, v)
		}
	}
	return out
}
