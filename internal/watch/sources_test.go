package watch

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/idicxi/wishfront/internal/api"
	"github.com/idicxi/wishfront/internal/event"
	"github.com/idicxi/wishfront/internal/state"
)

type stubFetcher struct {
	wishlist    api.Wishlist
	gifts       []api.Gift
	stats       api.Stats
	wishlistErr error
	giftsErr    error
	statsErr    error

	giftsWishlistID int64
}

func (f *stubFetcher) FetchWishlist(ctx context.Context, slug string) (api.Wishlist, error) {
	return f.wishlist, f.wishlistErr
}

func (f *stubFetcher) FetchGifts(ctx context.Context, wishlistID int64) ([]api.Gift, error) {
	f.giftsWishlistID = wishlistID
	return f.gifts, f.giftsErr
}

func (f *stubFetcher) FetchStats(ctx context.Context) (api.Stats, error) {
	return f.stats, f.statsErr
}

func TestWishlistSourceTopic(t *testing.T) {
	src := NewWishlistSource(&stubFetcher{}, new(state.GiftStore), "birthday-2026")
	require.Equal(t, "wishlist/birthday-2026", src.Topic())
}

func TestWishlistSourceFetchCommitsSnapshot(t *testing.T) {
	fetcher := &stubFetcher{
		wishlist: api.Wishlist{ID: 7, Title: "Birthday", Slug: "birthday-2026"},
		gifts: []api.Gift{
			{ID: 1, Title: "Kettle", Price: decimal.NewFromInt(90)},
			{ID: 2, Title: "Skates", Price: decimal.NewFromInt(120)},
		},
	}
	store := new(state.GiftStore)
	src := NewWishlistSource(fetcher, store, "birthday-2026")

	commit, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.False(t, store.Snapshot().HasWishlist, "nothing published before commit")
	commit()

	snap := store.Snapshot()
	require.True(t, snap.HasWishlist)
	require.Equal(t, "Birthday", snap.Wishlist.Title)
	require.Len(t, snap.Gifts, 2)
	require.Equal(t, int64(7), fetcher.giftsWishlistID)
}

func TestWishlistSourceFetchErrorKeepsPreviousData(t *testing.T) {
	fetcher := &stubFetcher{
		wishlist: api.Wishlist{ID: 7, Title: "Birthday"},
		gifts:    []api.Gift{{ID: 1, Title: "Kettle"}},
	}
	store := new(state.GiftStore)
	src := NewWishlistSource(fetcher, store, "birthday-2026")

	commit, err := src.Fetch(context.Background())
	require.NoError(t, err)
	commit()

	fetcher.giftsErr = errors.New("gateway timeout")
	commit, err = src.Fetch(context.Background())
	require.Error(t, err)
	commit()

	snap := store.Snapshot()
	require.True(t, snap.HasWishlist)
	require.Len(t, snap.Gifts, 1)
	require.ErrorContains(t, snap.LastError, "gateway timeout")
	require.Equal(t, 1, snap.ConsecutiveFailures)
}

func TestWishlistSourceAppliesGiftEvents(t *testing.T) {
	store := new(state.GiftStore)
	src := NewWishlistSource(&stubFetcher{}, store, "birthday-2026")

	refresh := src.Apply(event.GiftAdded{Gift: api.Gift{ID: 3, Title: "Lamp"}})
	require.False(t, refresh)
	require.Len(t, store.Snapshot().Gifts, 1)
}

func TestWishlistSourceIgnoresStatsEvents(t *testing.T) {
	store := new(state.GiftStore)
	src := NewWishlistSource(&stubFetcher{}, store, "birthday-2026")

	require.False(t, src.Apply(event.StatsChanged{}))
	require.Empty(t, store.Snapshot().Gifts)
}

func TestLandingSourceFetchCommitsStats(t *testing.T) {
	fetcher := &stubFetcher{stats: api.Stats{
		TotalCollected:     decimal.NewFromInt(1500),
		TotalGoal:          decimal.NewFromInt(4000),
		RecentContributors: []api.StatsContributor{{Name: "Mira"}},
	}}
	store := new(state.StatsStore)
	src := NewLandingSource(fetcher, store)
	require.Equal(t, "landing", src.Topic())

	commit, err := src.Fetch(context.Background())
	require.NoError(t, err)
	commit()

	snap := store.Snapshot()
	require.True(t, snap.HasStats)
	require.True(t, snap.Stats.TotalCollected.Equal(decimal.NewFromInt(1500)))
	require.Len(t, snap.Stats.RecentContributors, 1)
}

func TestLandingSourceFetchErrorRecordsFailure(t *testing.T) {
	fetcher := &stubFetcher{statsErr: errors.New("boom")}
	store := new(state.StatsStore)
	src := NewLandingSource(fetcher, store)

	commit, err := src.Fetch(context.Background())
	require.Error(t, err)
	commit()

	snap := store.Snapshot()
	require.ErrorContains(t, snap.LastError, "boom")
	require.Equal(t, 1, snap.ConsecutiveFailures)
}

func TestLandingSourceRefreshesOnStatsEvents(t *testing.T) {
	src := NewLandingSource(&stubFetcher{}, new(state.StatsStore))

	require.True(t, src.Apply(event.StatsChanged{}))
	require.False(t, src.Apply(event.GiftAdded{Gift: api.Gift{ID: 1}}))
}
