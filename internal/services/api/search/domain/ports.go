package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Dashboard(ctx context.Context, in SearchInput) (Dashboard, error)
	Opinions(ctx context.Context, in SearchInput) (OpinionPage, error)
}

// Warmer refreshes cached default dashboards
type Warmer interface {
	Warm(ctx context.Context) error
}
