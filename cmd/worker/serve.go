package main

import (
	"context"
	"time"

	"github.com/riskibarqy/football-sync/internal/app"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled league refreshes and live polling until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithWorker(cmd.Context(), serve)
		},
	}
}

func serve(ctx context.Context, w *app.Worker, logger *logging.Logger) error {
	cfg := w.Config
	logger.Info("worker started",
		"leagues", cfg.SyncLeagueIDs,
		"sync_interval", cfg.SyncInterval,
		"live_poll_interval", cfg.LivePollInterval,
	)

	refresh := func() {
		if len(cfg.SyncLeagueIDs) == 0 {
			return
		}
		for _, row := range w.Jobs.RefreshLeagues(ctx, cfg.SyncLeagueIDs) {
			if row.Err != nil {
				continue
			}
			logger.Info("league refreshed", "league_id", row.LeagueID, "teams", row.Teams, "fixtures", row.Fixtures)
		}
	}
	// Live polling runs inside the scheduler. Each tick registers fixtures
	// made available since the last one, including by `jobs add`.
	resume := func() {
		if _, err := w.Jobs.ResumeFixtureJobs(ctx); err != nil {
			logger.Error("resume fixture jobs failed", "error", err)
		}
	}

	refresh()
	resume()

	syncTicker := time.NewTicker(cfg.SyncInterval)
	defer syncTicker.Stop()
	jobsTicker := time.NewTicker(cfg.LivePollInterval)
	defer jobsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopping", "pending_fixtures", w.Scheduler.Pending())
			return nil
		case <-syncTicker.C:
			refresh()
		case <-jobsTicker.C:
			resume()
		}
	}
}
