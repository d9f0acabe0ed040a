// Package cache holds the per-user notes listing cache. Mutating operations
// invalidate the owner's entry so the next listing re-reads the store. Raw
// rows are cached; signed image URLs are minted per read and never cached.
package cache

import (
	"context"

	"notable-server/internal/domain"
)

type ListingCache interface {
	Get(ctx context.Context, userID string) ([]*domain.Note, bool)
	Set(ctx context.Context, userID string, notes []*domain.Note)
	Invalidate(ctx context.Context, userID string)
}

// Noop disables caching; every listing hits the store.
type Noop struct{}

func (Noop) Get(ctx context.Context, userID string) ([]*domain.Note, bool) { return nil, false }
func (Noop) Set(ctx context.Context, userID string, notes []*domain.Note)  {}
func (Noop) Invalidate(ctx context.Context, userID string)                 {}
