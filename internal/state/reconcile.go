package state

import (
	"github.com/idicxi/wishfront/internal/api"
	"github.com/idicxi/wishfront/internal/event"
)

// ApplyEvent merges one push event into a gift collection and returns the
// next collection. The input slice is never mutated; when the event is a
// no-op the input is returned as-is.
//
// The rules are written to converge under redelivery and under snapshot/event
// races: collected amounts are absolute server values, reservation is
// one-way, and creations are deduplicated by gift id. Applying the same
// event twice therefore leaves the collection unchanged.
func ApplyEvent(gifts []api.Gift, ev event.Event) []api.Gift {
	switch ev := ev.(type) {
	case event.GiftAdded:
		return applyGiftAdded(gifts, ev)
	case event.ItemReserved:
		return applyItemReserved(gifts, ev)
	case event.ContributionAdded:
		return applyContributionAdded(gifts, ev)
	}
	// StatsChanged and future event kinds never touch gift state.
	return gifts
}

// applyGiftAdded appends the new gift, unless the id is already present.
// The same creation can arrive twice: once in the REST response to the
// creator's own request and once via push.
func applyGiftAdded(gifts []api.Gift, ev event.GiftAdded) []api.Gift {
	for _, g := range gifts {
		if g.ID == ev.Gift.ID {
			return gifts
		}
	}
	next := make([]api.Gift, len(gifts), len(gifts)+1)
	copy(next, gifts)
	return append(next, ev.Gift)
}

// applyItemReserved marks a gift reserved. Reservation is permanent: no
// event clears it, and a known reserver is never erased by a payload that
// lacks one. An event for an id not in the local view is dropped; the next
// full refresh reconciles it.
func applyItemReserved(gifts []api.Gift, ev event.ItemReserved) []api.Gift {
	return replaceGift(gifts, ev.GiftID, func(g api.Gift) api.Gift {
		g.Reserved = true
		if ev.ReservedBy != nil {
			g.ReservedBy = ev.ReservedBy
		}
		return g
	})
}

// applyContributionAdded sets the absolute collected total from the server
// (never incremented locally, so redelivery cannot double-count), recomputes
// progress, and appends the contributor when the payload carries an identity.
func applyContributionAdded(gifts []api.Gift, ev event.ContributionAdded) []api.Gift {
	for _, g := range gifts {
		if g.ID == ev.GiftID && g.Collected.Equal(ev.Total) && isLatestContribution(g.Contributors, ev) {
			// Exact redelivery of an already-applied contribution.
			return gifts
		}
	}

	return replaceGift(gifts, ev.GiftID, func(g api.Gift) api.Gift {
		g.Collected = ev.Total
		g.Progress = api.ProgressPercent(g.Collected, g.Price)
		if g.Price.Sign() > 0 && g.Collected.Cmp(g.Price) >= 0 {
			g.Reserved = true
		}

		if ev.Contributor != nil {
			contribs := make([]api.Contributor, len(g.Contributors), len(g.Contributors)+1)
			copy(contribs, g.Contributors)
			g.Contributors = append(contribs, api.Contributor{
				ID:       api.SynthContributorID(ev.Contributor.ID, len(contribs), ev.Amount),
				UserID:   ev.Contributor.ID,
				UserName: ev.Contributor.Name,
				Amount:   ev.Amount,
			})
		}
		g.HasContributions = len(g.Contributors) > 0
		return g
	})
}

// isLatestContribution reports whether the event matches the most recently
// applied contribution. Combined with an unchanged total this identifies a
// duplicate delivery, since a genuine new contribution always raises the
// total.
func isLatestContribution(contribs []api.Contributor, ev event.ContributionAdded) bool {
	if ev.Contributor == nil {
		return true
	}
	if len(contribs) == 0 {
		return false
	}
	last := contribs[len(contribs)-1]
	return last.UserID == ev.Contributor.ID && last.Amount.Equal(ev.Amount)
}

// replaceGift returns a collection with the identified gift swapped for
// mutate's result, preserving order. Unknown ids leave the input untouched.
func replaceGift(gifts []api.Gift, id int64, mutate func(api.Gift) api.Gift) []api.Gift {
	for i, g := range gifts {
		if g.ID != id {
			continue
		}
		next := make([]api.Gift, len(gifts))
		copy(next, gifts)
		next[i] = mutate(g)
		return next
	}
	return gifts
}
