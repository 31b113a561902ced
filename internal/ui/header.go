package ui

import (
	"strings"
	"time"
)

// renderHeader draws the logo line with the sync status on the right.
func (m Model) renderHeader() string {
	parts := []string{m.styles.Header.Render("wishfront")}

	if m.currentView == ViewWishlist && m.wishlist.HasWishlist {
		parts = append(parts, m.styles.Text.Render(m.wishlist.Wishlist.Title))
	}

	parts = append(parts, m.renderStatus())
	return strings.Join(parts, "  ")
}

// renderStatus summarizes the health of the visible view's data.
func (m Model) renderStatus() string {
	if m.inFlight() {
		return m.styles.AccentText.Render(m.spinner.View() + "refreshing")
	}

	lastErr, lastUpdated, offline := m.statusFields()
	switch {
	case offline:
		return m.styles.DangerText.Render("offline")
	case lastErr != nil:
		return m.styles.WarningText.Render("sync error, showing last data")
	default:
		return m.styles.FaintText.Render("updated " + humanizeSince(lastUpdated))
	}
}

func (m Model) statusFields() (error, time.Time, bool) {
	if m.currentView == ViewWishlist {
		return m.wishlist.LastError, m.wishlist.LastUpdated, m.wishlist.IsOffline()
	}
	return m.stats.LastError, m.stats.LastUpdated, m.stats.IsOffline()
}

// renderCommandBar draws the key hints footer.
func (m Model) renderCommandBar() string {
	hints := []string{
		"<r> refresh",
		"<tab> switch view",
		"<T> theme",
		"<?> help",
		"<q> quit",
	}
	return m.styles.Footer.Render(strings.Join(hints, "  "))
}

// renderHelp draws the full-screen help overlay.
func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"r", "Refresh the visible view"},
		{"tab", "Switch between landing and wishlist"},
		{"j/k", "Move gift selection"},
		{"g/G", "Jump to first/last gift"},
		{"T", "Cycle theme (" + strings.Join(ThemeNames(), ", ") + ")"},
		{"esc", "Back to landing"},
		{"h/?", "Help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(m.styles.AccentText.Render("<" + row.key + ">"))
		b.WriteString(" ")
		b.WriteString(m.styles.Text.Render(row.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("Press any key to close"))
	return m.styles.Card.Render(b.String())
}
