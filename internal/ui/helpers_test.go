package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "0 ₽"},
		{"999", "999 ₽"},
		{"1000", "1 000 ₽"},
		{"25000", "25 000 ₽"},
		{"1234567", "1 234 567 ₽"},
		{"1499.50", "1 500 ₽"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.amount)
		if err != nil {
			t.Fatalf("bad amount %q: %v", tt.amount, err)
		}
		if got := formatMoney(d); got != tt.want {
			t.Errorf("formatMoney(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	got := formatRange(decimal.NewFromInt(1500), decimal.NewFromInt(40000))
	if got != "1 500 / 40 000 ₽" {
		t.Errorf("formatRange = %q", got)
	}
}

func TestInitialOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Mira", "M"},
		{"  kolya", "K"},
		{"аня", "А"},
		{"", "?"},
		{"   ", "?"},
	}

	for _, tt := range tests {
		if got := initialOf(tt.name); got != tt.want {
			t.Errorf("initialOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestContributorLabel(t *testing.T) {
	if got := contributorLabel(1); got != "1 contributor" {
		t.Errorf("contributorLabel(1) = %q", got)
	}
	if got := contributorLabel(3); got != "3 contributors" {
		t.Errorf("contributorLabel(3) = %q", got)
	}
}

func TestDisplayURL(t *testing.T) {
	if got := displayURL("https://shop.example.com/item/42"); got != "shop.example.com/item/42" {
		t.Errorf("displayURL = %q", got)
	}

	long := "https://example.com/" + strings.Repeat("x", 60)
	if got := displayURL(long); len([]rune(got)) != 42 {
		t.Errorf("displayURL long = %d runes, want 42", len([]rune(got)))
	}
}

func TestHumanizeSince(t *testing.T) {
	if got := humanizeSince(time.Time{}); got != "never" {
		t.Errorf("humanizeSince(zero) = %q", got)
	}
	if got := humanizeSince(time.Now()); got != "now" {
		t.Errorf("humanizeSince(now) = %q", got)
	}
	if got := humanizeSince(time.Now().Add(-5 * time.Second)); got != "5s ago" {
		t.Errorf("humanizeSince(-5s) = %q", got)
	}
	if got := humanizeSince(time.Now().Add(-3 * time.Minute)); got != "3m ago" {
		t.Errorf("humanizeSince(-3m) = %q", got)
	}
	if got := humanizeSince(time.Now().Add(-2 * time.Hour)); got != "2h ago" {
		t.Errorf("humanizeSince(-2h) = %q", got)
	}
}

func TestBarWidth(t *testing.T) {
	if got := barWidth(10); got != 10 {
		t.Errorf("barWidth(10) = %d, want floor 10", got)
	}
	if got := barWidth(60); got != 36 {
		t.Errorf("barWidth(60) = %d, want 36", got)
	}
	if got := barWidth(500); got != 48 {
		t.Errorf("barWidth(500) = %d, want cap 48", got)
	}
}
