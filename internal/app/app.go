package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/partysync/internal/config"
	"github.com/five82/partysync/internal/coordinator"
	"github.com/five82/partysync/internal/logging"
	"github.com/five82/partysync/internal/metrics"
	"github.com/five82/partysync/internal/party"
	"github.com/five82/partysync/internal/prefs"
	"github.com/five82/partysync/internal/state"
	"github.com/five82/partysync/internal/ui"
)

// Options configure a partysync session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/partysync/prefs.toml
	Headless   bool   // run without the TUI until the context is cancelled
}

// Run starts a session and blocks until the UI exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.DefaultPrefsPath()
	}
	userPrefs := prefs.Open(prefsPath)

	self := party.Identity(cfg.PlayerID)
	coord, err := coordinator.NewClient(cfg.Coordinator, self)
	if err != nil {
		return fmt.Errorf("init coordinator client: %w", err)
	}

	store := &state.Store{}
	loop := NewLoop(self, coord, store,
		WithLoopLogger(logger),
		WithTick(cfg.Tick),
		WithLoopPreferences(userPrefs),
		WithCriteriaTiming(cfg.Coalesce, cfg.MinSend),
	)
	poller := NewPoller(coord, loop.DeliverPoll, cfg.Poll, nil, logger.Named("poller"))

	logger.Info("starting session",
		zap.Uint64("player", cfg.PlayerID),
		zap.String("coordinator", cfg.Coordinator),
		zap.Bool("headless", opts.Headless),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return loop.Bus().Run(gctx) })
	g.Go(func() error { return poller.Run(gctx) })
	if cfg.MetricsBind != "" {
		g.Go(func() error { return metrics.Serve(gctx, logger, cfg.MetricsBind) })
	}
	if !opts.Headless {
		g.Go(func() error {
			defer cancel()
			return ui.Run(gctx, ui.Options{
				Store:        store,
				Actions:      loop,
				Prefs:        userPrefs,
				LogPath:      cfg.LogPath,
				RefreshEvery: cfg.Tick,
			})
		})
	}

	err = g.Wait()
	logger.Info("session stopped", zap.Error(err))
	return err
}
