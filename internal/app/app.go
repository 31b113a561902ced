package app

import (
	"context"
	"fmt"
	"time"

	"github.com/idicxi/wishfront/internal/api"
	"github.com/idicxi/wishfront/internal/config"
	"github.com/idicxi/wishfront/internal/prefs"
	"github.com/idicxi/wishfront/internal/state"
	"github.com/idicxi/wishfront/internal/ui"
	"github.com/idicxi/wishfront/internal/watch"
	"github.com/idicxi/wishfront/pkg/logger"
)

const uiTick = time.Second

// Options configure the wishfront application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/wishfront/prefs.toml
	Slug       string // overrides the configured wishlist slug
	PollEvery  int    // seconds; zero uses the configured backstop interval
}

// Run boots the wishfront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Slug != "" {
		cfg.Slug = opts.Slug
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}

	log := logger.New(cfg.LogLevel, cfg.LogPath)
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.ServerURL, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	statsStore := &state.StatsStore{}
	landingWatch := watch.NewWatcher(cfg.WSBaseURL(), cfg.PollInterval(), log)
	landingWatch.Start(ctx)
	defer landingWatch.Close()
	landingWatch.Watch(watch.NewLandingSource(client, statsStore))

	giftStore := &state.GiftStore{}
	uiOpts := ui.Options{
		Context:      ctx,
		GiftStore:    giftStore,
		StatsStore:   statsStore,
		LandingWatch: landingWatch,
		PollTick:     uiTick,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
	}

	if cfg.Slug != "" {
		wishlistWatch := watch.NewWatcher(cfg.WSBaseURL(), cfg.PollInterval(), log)
		wishlistWatch.Start(ctx)
		defer wishlistWatch.Close()
		wishlistWatch.Watch(watch.NewWishlistSource(client, giftStore, cfg.Slug))
		uiOpts.WishlistWatch = wishlistWatch
	}

	log.WithField("server", cfg.ServerURL).Info("wishfront starting")
	return ui.Run(uiOpts)
}
