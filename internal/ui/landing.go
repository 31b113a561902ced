package ui

import (
	"strings"

	"github.com/idicxi/wishfront/internal/api"
)

const maxRecentInitials = 5

// renderLanding draws the landing stats card.
func (m Model) renderLanding() string {
	s := m.styles

	if !m.stats.HasStats {
		if m.stats.LastError != nil {
			return s.Card.Render(s.DangerText.Render("Stats unavailable: " + m.stats.LastError.Error()))
		}
		return s.Card.Render(s.MutedText.Render("Loading stats..."))
	}

	stats := m.stats.Stats
	pct := api.ProgressPercent(stats.TotalCollected, stats.TotalGoal)

	var b strings.Builder
	b.WriteString(s.AccentText.Render("Collected together"))
	b.WriteString("\n")
	b.WriteString(s.Text.Render(formatRange(stats.TotalCollected, stats.TotalGoal)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(float64(pct) / 100))
	b.WriteString("\n")

	if len(stats.RecentContributors) > 0 {
		b.WriteString("\n")
		b.WriteString(s.MutedText.Render("Recent: "))
		b.WriteString(s.Text.Render(recentInitials(stats.RecentContributors)))
	}

	return s.Card.Render(b.String())
}

func recentInitials(contributors []api.StatsContributor) string {
	shown := contributors
	if len(shown) > maxRecentInitials {
		shown = shown[:maxRecentInitials]
	}
	parts := make([]string, 0, len(shown))
	for _, c := range shown {
		parts = append(parts, initialOf(c.Name))
	}
	return strings.Join(parts, " ")
}
