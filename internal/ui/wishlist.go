package ui

import (
	"strings"

	"github.com/idicxi/wishfront/internal/api"
)

// renderWishlist draws the gift rows for the watched wishlist.
func (m Model) renderWishlist() string {
	s := m.styles
	snap := m.wishlist

	if m.wishlistWatch == nil {
		return s.Card.Render(s.MutedText.Render("No wishlist configured. Set slug in the config to follow one."))
	}

	if !snap.HasWishlist {
		if snap.LastError != nil {
			return s.Card.Render(s.DangerText.Render("Wishlist unavailable: " + snap.LastError.Error()))
		}
		return s.Card.Render(s.MutedText.Render("Loading wishlist..."))
	}

	if len(snap.Gifts) == 0 {
		return s.Card.Render(s.MutedText.Render("No gifts yet"))
	}

	rows := make([]string, 0, len(snap.Gifts))
	for i, gift := range snap.Gifts {
		rows = append(rows, m.renderGiftRow(gift, i == m.selectedRow))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderGiftRow(gift api.Gift, selected bool) string {
	s := m.styles

	title := gift.Title
	if title == "" {
		title = "Untitled gift"
	}

	marker := "  "
	titleStyle := s.Text
	if selected {
		marker = s.AccentText.Render("> ")
		titleStyle = s.Selected
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(s.MutedText.Render(formatMoney(gift.Price)))
	b.WriteString("\n")

	if gift.Reserved {
		b.WriteString("  ")
		label := "Reserved"
		if gift.ReservedBy != nil && gift.ReservedBy.Name != "" {
			label = "Reserved by " + gift.ReservedBy.Name
		}
		b.WriteString(s.SuccessText.Render("✓ " + label))
		b.WriteString("\n")
	}

	if gift.HasContributions {
		b.WriteString("  ")
		b.WriteString(m.bar.ViewAs(float64(gift.Progress) / 100))
		b.WriteString("\n  ")
		b.WriteString(s.FaintText.Render(formatRange(gift.Collected, gift.Price)))
		b.WriteString("  ")
		b.WriteString(s.FaintText.Render(contributorLabel(len(gift.Contributors))))
		b.WriteString("\n")
	}

	if selected && gift.URL != "" {
		b.WriteString("  ")
		b.WriteString(s.FaintText.Render(displayURL(gift.URL)))
		b.WriteString("\n")
	}

	return b.String()
}
