// Package ui provides the Bubble Tea TUI for wishfront.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idicxi/wishfront/internal/prefs"
	"github.com/idicxi/wishfront/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLanding View = iota
	ViewWishlist
)

// Refresher is the slice of watch.Watcher the UI drives.
type Refresher interface {
	Refresh()
	InFlight() bool
}

// Options configures the UI.
type Options struct {
	Context       context.Context
	GiftStore     *state.GiftStore
	StatsStore    *state.StatsStore
	WishlistWatch Refresher
	LandingWatch  Refresher
	PollTick      time.Duration
	ThemeName     string
	PrefsPath     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx           context.Context
	giftStore     *state.GiftStore
	statsStore    *state.StatsStore
	wishlistWatch Refresher
	landingWatch  Refresher
	prefsPath     string
	pollTick      time.Duration

	theme  Theme
	styles Styles

	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	spinner spinner.Model
	bar     progress.Model

	wishlist state.WishlistSnapshot
	stats    state.StatsSnapshot

	selectedRow int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Blossom"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:           ctx,
		giftStore:     opts.GiftStore,
		statsStore:    opts.StatsStore,
		wishlistWatch: opts.WishlistWatch,
		landingWatch:  opts.LandingWatch,
		prefsPath:     prefsPath,
		pollTick:      pollTick,
		theme:         theme,
		styles:        theme.Styles(),
		currentView:   ViewLanding,
		spinner:       sp,
		bar:           newBar(theme),
	}
}

func newBar(t Theme) progress.Model {
	return progress.New(
		progress.WithGradient(t.BarStart, t.BarEnd),
		progress.WithoutPercentage(),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		m.spinner.Tick,
		fetchSnapshotsCmd(m.giftStore, m.statsStore),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = barWidth(m.width)
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(
			fetchSnapshotsCmd(m.giftStore, m.statsStore),
			tickCmd(m.pollTick),
		)

	case snapshotsMsg:
		m.wishlist = msg.wishlist
		m.stats = msg.stats
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.currentView {
	case ViewLanding:
		b.WriteString(m.renderLanding())
	case ViewWishlist:
		b.WriteString(m.renderWishlist())
	}

	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "r":
		m.refreshActive()
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.bar = newBar(m.theme)
		m.bar.Width = barWidth(m.width)
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "tab":
		if m.currentView == ViewLanding {
			m.currentView = ViewWishlist
		} else {
			m.currentView = ViewLanding
		}
		return m, nil

	case "esc":
		m.currentView = ViewLanding
		return m, nil
	}

	if m.currentView == ViewWishlist {
		return m.handleWishlistKey(msg)
	}
	return m, nil
}

// handleWishlistKey processes keyboard input for the wishlist view.
func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.wishlist.Gifts)
	if count == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		m.selectedRow = count - 1
	}

	return m, nil
}

// refreshActive requests an immediate fetch for the visible view.
func (m Model) refreshActive() {
	switch m.currentView {
	case ViewLanding:
		if m.landingWatch != nil {
			m.landingWatch.Refresh()
		}
	case ViewWishlist:
		if m.wishlistWatch != nil {
			m.wishlistWatch.Refresh()
		}
	}
}

func (m *Model) clampSelection() {
	if count := len(m.wishlist.Gifts); m.selectedRow >= count {
		m.selectedRow = max(0, count-1)
	}
}

// inFlight reports whether the visible view has a fetch running.
func (m Model) inFlight() bool {
	switch m.currentView {
	case ViewWishlist:
		return m.wishlistWatch != nil && m.wishlistWatch.InFlight()
	default:
		return m.landingWatch != nil && m.landingWatch.InFlight()
	}
}

// Messages

type tickMsg time.Time

type snapshotsMsg struct {
	wishlist state.WishlistSnapshot
	stats    state.StatsSnapshot
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotsCmd(gifts *state.GiftStore, stats *state.StatsStore) tea.Cmd {
	return func() tea.Msg {
		var msg snapshotsMsg
		if gifts != nil {
			msg.wishlist = gifts.Snapshot()
		}
		if stats != nil {
			msg.stats = stats.Snapshot()
		}
		return msg
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
