package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// formatMoney renders a ruble amount with thousands separated by spaces,
// the way the mobile app formats ru-RU currency.
func formatMoney(d decimal.Decimal) string {
	return groupDigits(d.Round(0).IntPart()) + " ₽"
}

// formatRange renders "collected / goal ₽".
func formatRange(collected, goal decimal.Decimal) string {
	return groupDigits(collected.Round(0).IntPart()) + " / " + formatMoney(goal)
}

func groupDigits(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// initialOf returns the uppercased first letter of a name, or "?" when
// there is nothing to show.
func initialOf(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// contributorLabel renders a contributor count for a gift row.
func contributorLabel(n int) string {
	if n == 1 {
		return "1 contributor"
	}
	return fmt.Sprintf("%d contributors", n)
}

// displayURL strips the scheme and caps the length for row display.
func displayURL(raw string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	runes := []rune(trimmed)
	if len(runes) > 42 {
		return string(runes[:42])
	}
	return trimmed
}

func humanizeSince(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

func barWidth(total int) int {
	w := total - 24
	if w < 10 {
		w = 10
	}
	if w > 48 {
		w = 48
	}
	return w
}
