package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/football-sync/internal/app"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/spf13/cobra"
)

// idCommand builds a leaf command that takes exactly n numeric ids.
func idCommand(use, short string, n int, fn func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(n),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "id")
			if err != nil {
				return err
			}
			return runWithWorker(cmd.Context(), func(ctx context.Context, w *app.Worker, logger *logging.Logger) error {
				return fn(ctx, w, logger, ids)
			})
		},
	}
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile stored entities with the provider once",
	}

	cmd.AddCommand(idCommand("league <league-id>", "Reconcile one league", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			item, err := w.Reconciler.ReconcileLeague(ctx, ids[0])
			if err != nil {
				return err
			}
			logger.Info("league synced", "league_id", item.ID, "name", item.Name, "current_season", item.CurrentSeason)
			return nil
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "current-leagues",
		Short: "Reconcile every league the provider reports as running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithWorker(cmd.Context(), func(ctx context.Context, w *app.Worker, logger *logging.Logger) error {
				items, err := w.Reconciler.ReconcileAllCurrentLeagues(ctx)
				if err != nil {
					return err
				}
				logger.Info("current leagues synced", "count", len(items))
				return nil
			})
		},
	})

	cmd.AddCommand(idCommand("teams <league-id>", "Reconcile the teams of a league's current season", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			items, err := w.Reconciler.ReconcileTeamsOfLeague(ctx, ids[0])
			if err != nil {
				return err
			}
			logger.Info("league teams synced", "league_id", ids[0], "teams", len(items))
			return nil
		}))

	cmd.AddCommand(idCommand("team <team-id>", "Reconcile one team", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			item, err := w.Reconciler.ReconcileSingleTeam(ctx, ids[0])
			if err != nil {
				return err
			}
			logger.Info("team synced", "team_id", item.ID, "name", item.Name)
			return nil
		}))

	cmd.AddCommand(idCommand("roster <team-id>", "Reconcile a team's roster", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			count, err := w.Jobs.RefreshRoster(ctx, ids[0])
			if err != nil {
				return err
			}
			logger.Info("roster synced", "team_id", ids[0], "players", count)
			return nil
		}))

	cmd.AddCommand(idCommand("team-leagues <team-id>", "Reconcile the current leagues a team plays in", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			if err := w.Jobs.RefreshCurrentLeaguesOfTeam(ctx, ids[0]); err != nil {
				return err
			}
			logger.Info("team leagues synced", "team_id", ids[0])
			return nil
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "player <player-id> <league-id> <season>",
		Short: "Reconcile one player's profile for a league season",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:2], "id")
			if err != nil {
				return err
			}
			season, err := strconv.Atoi(args[2])
			if err != nil || season <= 0 {
				return fmt.Errorf("invalid season %q", args[2])
			}
			return runWithWorker(cmd.Context(), func(ctx context.Context, w *app.Worker, logger *logging.Logger) error {
				item, err := w.Reconciler.ReconcilePlayer(ctx, ids[0], ids[1], season)
				if err != nil {
					return err
				}
				logger.Info("player synced", "player_id", item.ID, "name", item.Name)
				return nil
			})
		},
	})

	cmd.AddCommand(idCommand("fixtures <league-id>", "Reconcile the fixtures of a league's current season", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			items, err := w.Reconciler.ReconcileFixturesOfLeague(ctx, ids[0])
			if err != nil {
				return err
			}
			logger.Info("fixtures synced", "league_id", ids[0], "fixtures", len(items))
			return nil
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh [league-id...]",
		Short: "Refresh league info, teams and fixtures; defaults to SYNC_LEAGUE_IDS",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "league id")
			if err != nil {
				return err
			}
			return runWithWorker(cmd.Context(), func(ctx context.Context, w *app.Worker, logger *logging.Logger) error {
				if len(ids) == 0 {
					ids = w.Config.SyncLeagueIDs
				}
				failed := 0
				for _, row := range w.Jobs.RefreshLeagues(ctx, ids) {
					if row.Err != nil {
						failed++
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d league refreshes failed", failed, len(ids))
				}
				return nil
			})
		},
	})

	return cmd
}

func liveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Poll live match data",
	}

	cmd.AddCommand(idCommand("poll <fixture-id>", "Run one live poll for a fixture", 1,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			finished, err := w.Jobs.PollLiveFixture(ctx, ids[0])
			if err != nil {
				return err
			}
			logger.Info("fixture polled", "fixture_id", ids[0], "finished", finished)
			return nil
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Poll every available fixture that is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithWorker(cmd.Context(), func(ctx context.Context, w *app.Worker, logger *logging.Logger) error {
				results, err := w.Jobs.PollAvailableFixtures(ctx)
				if err != nil {
					return err
				}
				logger.Info("live sweep done", "fixtures", len(results))
				return nil
			})
		},
	})

	return cmd
}

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Register or remove fixture polling jobs",
	}

	cmd.AddCommand(idCommand("add <fixture-id>", "Reset live data and mark the fixture available for polling", 1,
		func(ctx context.Context, w *app.Worker, _ *logging.Logger, ids []int64) error {
			return w.Jobs.AddFixtureJobs(ctx, ids[0])
		}))
	cmd.AddCommand(idCommand("remove <fixture-id>", "Stop polling the fixture", 1,
		func(ctx context.Context, w *app.Worker, _ *logging.Logger, ids []int64) error {
			return w.Jobs.RemoveFixtureJobs(ctx, ids[0])
		}))

	return cmd
}

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Curate team rosters by hand",
	}

	cmd.AddCommand(idCommand("link <team-id> <player-id>", "Link a player to a team", 2,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			item, err := w.Curator.LinkPlayer(ctx, ids[0], ids[1])
			if err != nil {
				return err
			}
			logger.Info("player linked", "team_id", ids[0], "player_id", item.ID)
			return nil
		}))
	cmd.AddCommand(idCommand("unlink <team-id> <player-id>", "Unlink a player from a team", 2,
		func(ctx context.Context, w *app.Worker, logger *logging.Logger, ids []int64) error {
			item, err := w.Curator.UnlinkPlayer(ctx, ids[0], ids[1])
			if err != nil {
				return err
			}
			logger.Info("player unlinked", "team_id", ids[0], "player_id", item.ID)
			return nil
		}))

	var allow bool
	protect := idCommand("protect <player-id>", "Keep reconciliation from unlinking a player", 1,
		func(ctx context.Context, w *app.Worker, _ *logging.Logger, ids []int64) error {
			return w.Curator.SetPreventUnlink(ctx, ids[0], !allow)
		})
	protect.Flags().BoolVar(&allow, "clear", false, "Clear the flag instead of setting it")
	cmd.AddCommand(protect)

	return cmd
}
