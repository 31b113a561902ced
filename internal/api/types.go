package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// User identifies a wishlist member in transport-friendly form.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Contributor records one person's share of a gift's funding.
type Contributor struct {
	ID       int64
	UserID   int64
	UserName string
	Amount   decimal.Decimal
}

// Gift is a fully-populated wishlist entry. Every field is normalized:
// consumers never see absent numbers or nil slices.
type Gift struct {
	ID               int64
	Title            string
	Price            decimal.Decimal
	URL              string
	ImageURL         string
	Reserved         bool
	Collected        decimal.Decimal
	Progress         int
	ReservedBy       *User
	Contributors     []Contributor
	HasContributions bool
}

// Wishlist describes the list itself, separate from its gifts.
type Wishlist struct {
	ID          int64
	Title       string
	Description string
	OwnerID     int64
	Slug        string
}

// StatsContributor is a recent contributor entry on the landing stats.
type StatsContributor struct {
	Name string `json:"name"`
}

// Stats is the landing-page aggregate.
type Stats struct {
	TotalCollected     decimal.Decimal
	TotalGoal          decimal.Decimal
	RecentContributors []StatsContributor
}

// LinkPreview holds scraped metadata for prefilling a gift form.
type LinkPreview struct {
	Title string
	Image string
	Price decimal.Decimal
}

// ProgressPercent computes funding progress as an integer percentage,
// clamped to 100. A free (zero-priced) gift has no meaningful progress.
func ProgressPercent(collected, price decimal.Decimal) int {
	if price.Sign() <= 0 {
		return 0
	}
	pct := collected.Div(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// SynthContributorID derives a stable contributor id when the server omits
// one. Known weak point: the result can collide across sessions; a
// server-assigned id is preferred whenever present.
func SynthContributorID(userID int64, count int, amount decimal.Decimal) int64 {
	return userID*1_000_000 + int64(count)*1000 + amount.Round(0).IntPart()
}

// NormalizeGiftURL prepends https:// to bare hostnames so user-typed links
// are always absolute.
func NormalizeGiftURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// Wire shapes. The server omits fields freely, so everything optional is a
// pointer here and coerced to a concrete value in one place.

type wishlistWire struct {
	ID          *int64  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	OwnerID     *int64  `json:"owner_id"`
}

type userWire struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type contributorWire struct {
	ID       *int64           `json:"id"`
	UserID   *int64           `json:"user_id"`
	UserName *string          `json:"user_name"`
	Amount   *decimal.Decimal `json:"amount"`
}

type giftWire struct {
	ID           *int64            `json:"id"`
	Title        *string           `json:"title"`
	Price        *decimal.Decimal  `json:"price"`
	URL          *string           `json:"url"`
	ImageURL     *string           `json:"image_url"`
	IsReserved   *bool             `json:"is_reserved"`
	Collected    *decimal.Decimal  `json:"collected"`
	ReservedBy   *userWire         `json:"reserved_by"`
	Contributors []contributorWire `json:"contributors"`
}

type statsWire struct {
	TotalCollected     *decimal.Decimal   `json:"total_collected"`
	TotalGoal          *decimal.Decimal   `json:"total_goal"`
	RecentContributors []StatsContributor `json:"recent_contributors"`
}

type linkPreviewWire struct {
	Title *string          `json:"title"`
	Image *string          `json:"image"`
	Price *decimal.Decimal `json:"price"`
}

func (w wishlistWire) normalize(slug string) Wishlist {
	return Wishlist{
		ID:          orZeroInt(w.ID),
		Title:       orZeroStr(w.Title),
		Description: orZeroStr(w.Description),
		OwnerID:     orZeroInt(w.OwnerID),
		Slug:        slug,
	}
}

func (w userWire) normalize() *User {
	if w.ID == nil || w.Name == nil || *w.Name == "" {
		return nil
	}
	return &User{ID: *w.ID, Name: *w.Name}
}

func (w giftWire) normalize() Gift {
	g := Gift{
		ID:        orZeroInt(w.ID),
		Title:     orZeroStr(w.Title),
		Price:     orZeroDec(w.Price),
		URL:       orZeroStr(w.URL),
		ImageURL:  orZeroStr(w.ImageURL),
		Reserved:  w.IsReserved != nil && *w.IsReserved,
		Collected: orZeroDec(w.Collected),
	}
	if g.Price.Sign() < 0 {
		g.Price = decimal.Zero
	}
	if g.Collected.Sign() < 0 {
		g.Collected = decimal.Zero
	}
	if w.ReservedBy != nil {
		g.ReservedBy = w.ReservedBy.normalize()
	}

	g.Contributors = make([]Contributor, 0, len(w.Contributors))
	for _, cw := range w.Contributors {
		c := Contributor{
			UserID:   orZeroInt(cw.UserID),
			UserName: orZeroStr(cw.UserName),
			Amount:   orZeroDec(cw.Amount),
		}
		if cw.ID != nil {
			c.ID = *cw.ID
		} else {
			c.ID = SynthContributorID(c.UserID, len(g.Contributors), c.Amount)
		}
		g.Contributors = append(g.Contributors, c)
	}

	g.Progress = ProgressPercent(g.Collected, g.Price)
	if g.Collected.Cmp(g.Price) >= 0 && g.Price.Sign() > 0 {
		g.Reserved = true
	}
	g.HasContributions = len(g.Contributors) > 0
	return g
}

// UnmarshalGift decodes a single gift object from raw JSON and normalizes it.
// Push events embed gifts in the same wire shape the REST API uses.
func UnmarshalGift(data []byte) (Gift, error) {
	var w giftWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Gift{}, fmt.Errorf("decode gift: %w", err)
	}
	return w.normalize(), nil
}

func normalizeGifts(wires []giftWire) []Gift {
	gifts := make([]Gift, 0, len(wires))
	for _, w := range wires {
		gifts = append(gifts, w.normalize())
	}
	return gifts
}

func (w statsWire) normalize() Stats {
	s := Stats{
		TotalCollected:     orZeroDec(w.TotalCollected),
		TotalGoal:          orZeroDec(w.TotalGoal),
		RecentContributors: w.RecentContributors,
	}
	if s.RecentContributors == nil {
		s.RecentContributors = []StatsContributor{}
	}
	return s
}

func (w linkPreviewWire) normalize() LinkPreview {
	return LinkPreview{
		Title: orZeroStr(w.Title),
		Image: orZeroStr(w.Image),
		Price: orZeroDec(w.Price),
	}
}

func orZeroInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func orZeroStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func orZeroDec(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
