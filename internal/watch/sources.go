package watch

import (
	"context"

	"github.com/idicxi/wishfront/internal/api"
	"github.com/idicxi/wishfront/internal/event"
	"github.com/idicxi/wishfront/internal/state"
)

// WishlistSource syncs one wishlist and its gifts into a GiftStore.
// Gift events merge directly into the store; no event forces a refetch
// because contribution totals arrive as absolute values.
type WishlistSource struct {
	client api.Fetcher
	store  *state.GiftStore
	slug   string
}

// NewWishlistSource builds a source for the wishlist published under slug.
func NewWishlistSource(client api.Fetcher, store *state.GiftStore, slug string) *WishlistSource {
	return &WishlistSource{client: client, store: store, slug: slug}
}

// Topic implements Source.
func (s *WishlistSource) Topic() string {
	return "wishlist/" + s.slug
}

// Fetch resolves the wishlist by slug, then loads its gifts. On error the
// returned closure records the failure; the store keeps its previous data.
func (s *WishlistSource) Fetch(ctx context.Context) (func(), error) {
	wishlist, err := s.client.FetchWishlist(ctx, s.slug)
	if err != nil {
		return func() { s.store.Update(nil, nil, err) }, err
	}
	gifts, err := s.client.FetchGifts(ctx, wishlist.ID)
	if err != nil {
		return func() { s.store.Update(nil, nil, err) }, err
	}
	return func() { s.store.Update(&wishlist, gifts, nil) }, nil
}

// Apply implements Source.
func (s *WishlistSource) Apply(ev event.Event) bool {
	if _, ok := ev.(event.StatsChanged); ok {
		return false
	}
	s.store.ApplyEvent(ev)
	return false
}

// LandingSource syncs the landing-page aggregate into a StatsStore. The
// server pushes a bare change marker for stats, so every event turns into
// a refetch.
type LandingSource struct {
	client api.Fetcher
	store  *state.StatsStore
}

// NewLandingSource builds a source for the landing statistics.
func NewLandingSource(client api.Fetcher, store *state.StatsStore) *LandingSource {
	return &LandingSource{client: client, store: store}
}

// Topic implements Source.
func (s *LandingSource) Topic() string {
	return "landing"
}

// Fetch loads the aggregate. On error the returned closure records the
// failure; the store keeps its previous data.
func (s *LandingSource) Fetch(ctx context.Context) (func(), error) {
	stats, err := s.client.FetchStats(ctx)
	if err != nil {
		return func() { s.store.Update(nil, err) }, err
	}
	return func() { s.store.Update(&stats, nil) }, nil
}

// Apply implements Source.
func (s *LandingSource) Apply(ev event.Event) bool {
	_, ok := ev.(event.StatsChanged)
	return ok
}
