package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/idicxi/wishfront/internal/api"
	"github.com/idicxi/wishfront/internal/event"
)

// WishlistSnapshot represents the latest wishlist data available to the UI.
type WishlistSnapshot struct {
	Wishlist            api.Wishlist
	HasWishlist         bool
	Gifts               []api.Gift
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s WishlistSnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// GiftStore coordinates concurrent updates to one wishlist's snapshot.
// Snapshot fetches and push events both land here; readers always observe a
// fully-consistent value because every merge produces a new snapshot.
type GiftStore struct {
	mu       sync.RWMutex
	snapshot WishlistSnapshot
}

// Update replaces the stored snapshot with freshly fetched authoritative
// state. When err is non-nil the previous data is kept but the error is
// recorded for visibility: stale-but-present beats empty.
func (s *GiftStore) Update(wishlist *api.Wishlist, gifts []api.Gift, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Gifts = cloneGifts(gifts)
	if wishlist != nil {
		s.snapshot.Wishlist = *wishlist
		s.snapshot.HasWishlist = true
	} else {
		s.snapshot.HasWishlist = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// ApplyEvent merges one push event into the stored gift collection.
func (s *GiftStore) ApplyEvent(ev event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot.Gifts
	next := ApplyEvent(prev, ev)
	changed := len(next) != len(prev) || (len(prev) > 0 && &next[0] != &prev[0])
	if changed {
		s.snapshot.Gifts = next
		s.snapshot.LastUpdated = time.Now()
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *GiftStore) Snapshot() WishlistSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Gifts = cloneGifts(s.snapshot.Gifts)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// StatsSnapshot represents the latest landing aggregate available to the UI.
type StatsSnapshot struct {
	Stats               api.Stats
	HasStats            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s StatsSnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// StatsStore holds the landing aggregate. Stats are always replaced
// wholesale by a fetch; there is no incremental merge path.
type StatsStore struct {
	mu       sync.RWMutex
	snapshot StatsSnapshot
}

// Update replaces the stored stats, keeping previous data on error.
func (s *StatsStore) Update(stats *api.Stats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if stats != nil {
		s.snapshot.Stats = *stats
		s.snapshot.HasStats = true
	} else {
		s.snapshot.HasStats = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *StatsStore) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Stats.RecentContributors = append([]api.StatsContributor(nil), s.snapshot.Stats.RecentContributors...)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneGifts(gifts []api.Gift) []api.Gift {
	if len(gifts) == 0 {
		return nil
	}
	dup := make([]api.Gift, len(gifts))
	copy(dup, gifts)
	return dup
}
