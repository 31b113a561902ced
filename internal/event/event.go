// Package event defines the closed set of push notifications the backend
// emits and the decoder that turns raw transport frames into them.
//
// Unknown event types are forward-compatible no-ops: the decoder reports
// them as undecodable and the caller drops the frame, so a new server-side
// event never crashes an old client.
package event

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/idicxi/wishfront/internal/api"
)

// Wire discriminator values.
const (
	typeGiftAdded         = "gift_added"
	typeItemReserved      = "item_reserved"
	typeContributionAdded = "contribution_added"
	typeStatsUpdated      = "stats_updated"
)

// Event is one decoded push notification. The set of implementations is
// closed; consumers switch on the concrete type.
type Event interface {
	isEvent()
}

// GiftAdded announces a gift created by another client.
type GiftAdded struct {
	Gift api.Gift
}

// ItemReserved announces that a gift was reserved. ReservedBy is nil when
// the payload does not carry a complete reserver identity.
type ItemReserved struct {
	GiftID     int64
	ReservedBy *api.User
}

// ContributionAdded announces new funding toward a gift. Total is the
// server-authoritative absolute collected amount, never a delta.
// Contributor is nil when the payload lacks a usable identity.
type ContributionAdded struct {
	GiftID      int64
	Total       decimal.Decimal
	Amount      decimal.Decimal
	Contributor *api.User
}

// StatsChanged signals that the landing aggregate moved. It carries no
// payload worth merging; consumers re-fetch the snapshot instead.
type StatsChanged struct{}

func (GiftAdded) isEvent()         {}
func (ItemReserved) isEvent()      {}
func (ContributionAdded) isEvent() {}
func (StatsChanged) isEvent()      {}

type envelope struct {
	Type     string           `json:"type"`
	Gift     json.RawMessage  `json:"gift"`
	GiftID   *int64           `json:"giftId"`
	UserID   *int64           `json:"userId"`
	UserName *string          `json:"userName"`
	Total    *decimal.Decimal `json:"total"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (e envelope) user() *api.User {
	if e.UserID == nil || e.UserName == nil || *e.UserName == "" {
		return nil
	}
	return &api.User{ID: *e.UserID, Name: *e.UserName}
}

// Decode parses one raw transport frame. It reports ok=false for malformed
// payloads, unrecognized types, and frames missing a required field; it
// never panics, and the caller must silently drop anything it rejects.
func Decode(raw []byte) (Event, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}

	switch env.Type {
	case typeGiftAdded:
		if len(env.Gift) == 0 {
			return nil, false
		}
		gift, err := api.UnmarshalGift(env.Gift)
		if err != nil || gift.ID == 0 {
			return nil, false
		}
		return GiftAdded{Gift: gift}, true

	case typeItemReserved:
		if env.GiftID == nil || *env.GiftID == 0 {
			return nil, false
		}
		return ItemReserved{GiftID: *env.GiftID, ReservedBy: env.user()}, true

	case typeContributionAdded:
		if env.GiftID == nil || *env.GiftID == 0 || env.Total == nil {
			return nil, false
		}
		ev := ContributionAdded{
			GiftID:      *env.GiftID,
			Total:       *env.Total,
			Contributor: env.user(),
		}
		if env.Amount != nil {
			ev.Amount = *env.Amount
		}
		return ev, true

	case typeStatsUpdated:
		return StatsChanged{}, true
	}

	return nil, false
}
