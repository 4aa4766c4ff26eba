package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/domain/team"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type GraphReconcilerConfig struct {
	// ReferenceZone is the zone fixture kickoffs are normalized to.
	ReferenceZone *time.Location
}

// GraphReconciler applies league, team, roster and fixture snapshots to the
// entity store. Every pass is one transaction. Callers serialize passes per
// league or team.
type GraphReconciler struct {
	client SnapshotClient
	store  Store
	cache  cacheRecorder
	cfg    GraphReconcilerConfig
	logger *logging.Logger
}

func NewGraphReconciler(
	client SnapshotClient,
	store Store,
	cacheLog cachelog.Repository,
	clock clockwork.Clock,
	cfg GraphReconcilerConfig,
	logger *logging.Logger,
) *GraphReconciler {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.ReferenceZone == nil {
		cfg.ReferenceZone = time.UTC
	}
	logger = logger.Named("reconciler")
	return &GraphReconciler{
		client: client,
		store:  store,
		cache:  cacheRecorder{repo: cacheLog, clock: clock, logger: logger},
		cfg:    cfg,
		logger: logger,
	}
}

func (r *GraphReconciler) ReconcileLeague(ctx context.Context, leagueID int64) (result league.League, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileLeague", attribute.Int64("league_id", leagueID))
	defer func() { endSpan(span, err) }()

	if leagueID <= 0 {
		return league.League{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	snap, err := r.client.FetchLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("fetch league=%d: %w", leagueID, err)
	}
	if snap.ID != leagueID {
		return league.League{}, fmt.Errorf("%w: league response id=%d for league=%d", ErrMalformedSnapshot, snap.ID, leagueID)
	}

	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		var txErr error
		result, txErr = saveLeague(ctx, repos.Leagues, snap)
		return txErr
	})
	if err != nil {
		return league.League{}, fmt.Errorf("reconcile league=%d: %w", leagueID, err)
	}

	r.cache.record(ctx, cachelog.TypeLeague, map[string]any{"leagueId": leagueID})
	r.logger.InfoContext(ctx, "league reconciled", "league_id", leagueID, "current_season", result.CurrentSeason)
	return result, nil
}

// ReconcileAllCurrentLeagues stores every league the provider reports as running.
func (r *GraphReconciler) ReconcileAllCurrentLeagues(ctx context.Context) (result []league.League, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileAllCurrentLeagues")
	defer func() { endSpan(span, err) }()

	snaps, err := r.client.FetchCurrentLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current leagues: %w", err)
	}
	for _, s := range snaps {
		if s.ID <= 0 || s.Name == "" {
			return nil, fmt.Errorf("%w: current league without id or name", ErrMalformedSnapshot)
		}
	}

	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		result = make([]league.League, 0, len(snaps))
		for _, s := range snaps {
			saved, err := saveLeague(ctx, repos.Leagues, s)
			if err != nil {
				return err
			}
			result = append(result, saved)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile current leagues: %w", err)
	}

	r.cache.record(ctx, cachelog.TypeCurrentLeagues, nil)
	r.logger.InfoContext(ctx, "current leagues reconciled", "count", len(result))
	return result, nil
}

// ReconcileTeamsOfLeague requires the league to be cached with a current season.
func (r *GraphReconciler) ReconcileTeamsOfLeague(ctx context.Context, leagueID int64) (result []team.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileTeamsOfLeague", attribute.Int64("league_id", leagueID))
	defer func() { endSpan(span, err) }()

	lg, season, err := r.cachedLeagueSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	snaps, err := r.client.FetchTeamsOfLeague(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("fetch teams of league=%d season=%d: %w", leagueID, season, err)
	}
	for _, s := range snaps {
		if s.ID <= 0 || s.Name == "" {
			return nil, fmt.Errorf("%w: team without id or name in league=%d", ErrMalformedSnapshot, leagueID)
		}
	}

	var outcome edgeSetResult[team.Team]
	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		stored, err := repos.Teams.ListByLeague(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list teams of league=%d: %w", leagueID, err)
		}
		outcome, err = reconcileEdgeSet(ctx, leagueTeamEdges(repos, leagueID, stored, snaps))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile teams of league=%d: %w", leagueID, err)
	}

	r.cache.record(ctx, cachelog.TypeLeagueTeams, map[string]any{"leagueId": leagueID})
	r.logger.InfoContext(ctx, "league teams reconciled",
		"league_id", leagueID,
		"league", lg.Name,
		"kept", outcome.Kept,
		"linked", outcome.Linked,
		"created", outcome.Created,
		"unlinked", outcome.Unlinked,
	)
	return outcome.Related, nil
}

func leagueTeamEdges(repos Repositories, leagueID int64, stored []team.Team, snaps []TeamSnapshot) edgeSet[team.Team, TeamSnapshot] {
	return edgeSet[team.Team, TeamSnapshot]{
		stored:     stored,
		snapshot:   snaps,
		storedID:   func(t team.Team) int64 { return t.ID },
		snapshotID: func(s TeamSnapshot) int64 { return s.ID },
		sync: func(ctx context.Context, current team.Team, s TeamSnapshot) (team.Team, error) {
			merged, changed := mergeTeam(current, s)
			if !changed {
				return current, nil
			}
			if err := repos.Teams.Upsert(ctx, merged); err != nil {
				return team.Team{}, fmt.Errorf("update team=%d: %w", merged.ID, err)
			}
			return merged, nil
		},
		unlink: func(ctx context.Context, current team.Team) error {
			if err := repos.Teams.UnlinkLeague(ctx, leagueID, current.ID); err != nil {
				return fmt.Errorf("unlink team=%d from league=%d: %w", current.ID, leagueID, err)
			}
			return nil
		},
		lookup: repos.Teams.GetByIDs,
		link: func(ctx context.Context, existing team.Team, _ TeamSnapshot) (team.Team, error) {
			if err := repos.Teams.LinkLeague(ctx, leagueID, existing.ID); err != nil {
				return team.Team{}, fmt.Errorf("link team=%d to league=%d: %w", existing.ID, leagueID, err)
			}
			return existing, nil
		},
		create: func(ctx context.Context, s TeamSnapshot) (team.Team, error) {
			item := teamFromSnapshot(s)
			if err := repos.Teams.Upsert(ctx, item); err != nil {
				return team.Team{}, fmt.Errorf("create team=%d: %w", item.ID, err)
			}
			if err := repos.Teams.LinkLeague(ctx, leagueID, item.ID); err != nil {
				return team.Team{}, fmt.Errorf("link team=%d to league=%d: %w", item.ID, leagueID, err)
			}
			return item, nil
		},
	}
}

// ReconcileSingleTeam creates or refreshes one team without touching its edges.
func (r *GraphReconciler) ReconcileSingleTeam(ctx context.Context, teamID int64) (result team.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileSingleTeam", attribute.Int64("team_id", teamID))
	defer func() { endSpan(span, err) }()

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	snap, err := r.client.FetchTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("fetch team=%d: %w", teamID, err)
	}
	if snap.ID != teamID || snap.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team response id=%d for team=%d", ErrMalformedSnapshot, snap.ID, teamID)
	}

	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		current, found, err := repos.Teams.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team=%d: %w", teamID, err)
		}
		if !found {
			result = teamFromSnapshot(snap)
			return repos.Teams.Upsert(ctx, result)
		}
		var changed bool
		result, changed = mergeTeam(current, snap)
		if !changed {
			return nil
		}
		return repos.Teams.Upsert(ctx, result)
	})
	if err != nil {
		return team.Team{}, fmt.Errorf("reconcile team=%d: %w", teamID, err)
	}

	r.cache.record(ctx, cachelog.TypeTeam, map[string]any{"teamId": teamID})
	return result, nil
}

// ReconcileRoster syncs the team_players edges of a team. Players flagged
// PreventUnlink keep their edge when absent from the snapshot. An uncached
// team is fetched first.
func (r *GraphReconciler) ReconcileRoster(ctx context.Context, teamID int64) (result []player.Player, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileRoster", attribute.Int64("team_id", teamID))
	defer func() { endSpan(span, err) }()

	if err := r.ensureTeam(ctx, teamID); err != nil {
		return nil, err
	}

	snaps, err := r.client.FetchRoster(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetch roster of team=%d: %w", teamID, err)
	}
	for _, s := range snaps {
		if s.ID <= 0 || s.Name == "" {
			return nil, fmt.Errorf("%w: roster player without id or name in team=%d", ErrMalformedSnapshot, teamID)
		}
	}

	var outcome edgeSetResult[player.Player]
	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		stored, err := repos.Players.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list players of team=%d: %w", teamID, err)
		}
		outcome, err = reconcileEdgeSet(ctx, teamPlayerEdges(repos, teamID, stored, snaps))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile roster of team=%d: %w", teamID, err)
	}

	r.cache.record(ctx, cachelog.TypeSquad, map[string]any{"teamId": teamID})
	r.logger.InfoContext(ctx, "roster reconciled",
		"team_id", teamID,
		"kept", outcome.Kept,
		"linked", outcome.Linked,
		"created", outcome.Created,
		"unlinked", outcome.Unlinked,
		"retained", outcome.Retained,
	)
	return outcome.Related, nil
}

func teamPlayerEdges(repos Repositories, teamID int64, stored []player.Player, snaps []PlayerSnapshot) edgeSet[player.Player, PlayerSnapshot] {
	return edgeSet[player.Player, PlayerSnapshot]{
		stored:     stored,
		snapshot:   snaps,
		storedID:   func(p player.Player) int64 { return p.ID },
		snapshotID: func(s PlayerSnapshot) int64 { return s.ID },
		sync: func(ctx context.Context, current player.Player, s PlayerSnapshot) (player.Player, error) {
			merged, changed := mergePlayer(current, s)
			if !changed {
				return current, nil
			}
			if err := repos.Players.Upsert(ctx, merged); err != nil {
				return player.Player{}, fmt.Errorf("update player=%d: %w", merged.ID, err)
			}
			return merged, nil
		},
		retain: func(current player.Player) bool { return current.PreventUnlink },
		unlink: func(ctx context.Context, current player.Player) error {
			if err := repos.Players.UnlinkTeam(ctx, teamID, current.ID); err != nil {
				return fmt.Errorf("unlink player=%d from team=%d: %w", current.ID, teamID, err)
			}
			return nil
		},
		lookup: repos.Players.GetByIDs,
		link: func(ctx context.Context, existing player.Player, s PlayerSnapshot) (player.Player, error) {
			// A transferred player is already known through another team.
			merged, changed := mergePlayer(existing, s)
			if changed {
				if err := repos.Players.Upsert(ctx, merged); err != nil {
					return player.Player{}, fmt.Errorf("update player=%d: %w", merged.ID, err)
				}
			}
			if err := repos.Players.LinkTeam(ctx, teamID, merged.ID); err != nil {
				return player.Player{}, fmt.Errorf("link player=%d to team=%d: %w", merged.ID, teamID, err)
			}
			return merged, nil
		},
		create: func(ctx context.Context, s PlayerSnapshot) (player.Player, error) {
			item := playerFromSnapshot(s)
			if err := repos.Players.Upsert(ctx, item); err != nil {
				return player.Player{}, fmt.Errorf("create player=%d: %w", item.ID, err)
			}
			if err := repos.Players.LinkTeam(ctx, teamID, item.ID); err != nil {
				return player.Player{}, fmt.Errorf("link player=%d to team=%d: %w", item.ID, teamID, err)
			}
			return item, nil
		},
	}
}

// ReconcileCurrentLeaguesOfTeam links a team to the leagues it currently plays
// in. Stored-only leagues are past competitions and keep their edge.
func (r *GraphReconciler) ReconcileCurrentLeaguesOfTeam(ctx context.Context, teamID int64) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileCurrentLeaguesOfTeam", attribute.Int64("team_id", teamID))
	defer func() { endSpan(span, err) }()

	if err := r.ensureTeam(ctx, teamID); err != nil {
		return err
	}

	snaps, err := r.client.FetchCurrentLeaguesOfTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("fetch current leagues of team=%d: %w", teamID, err)
	}
	for _, s := range snaps {
		if s.ID <= 0 || s.Name == "" {
			return fmt.Errorf("%w: league without id or name for team=%d", ErrMalformedSnapshot, teamID)
		}
	}

	var outcome edgeSetResult[league.League]
	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		ids, err := repos.Teams.ListLeagueIDs(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list leagues of team=%d: %w", teamID, err)
		}
		stored, err := repos.Leagues.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("get leagues of team=%d: %w", teamID, err)
		}
		outcome, err = reconcileEdgeSet(ctx, teamLeagueEdges(repos, teamID, stored, snaps))
		return err
	})
	if err != nil {
		return fmt.Errorf("reconcile current leagues of team=%d: %w", teamID, err)
	}

	r.cache.record(ctx, cachelog.TypeCurrentLeaguesOfTeam, map[string]any{"teamId": teamID})
	r.logger.InfoContext(ctx, "current leagues of team reconciled",
		"team_id", teamID,
		"kept", outcome.Kept,
		"linked", outcome.Linked,
		"created", outcome.Created,
	)
	return nil
}

func teamLeagueEdges(repos Repositories, teamID int64, stored []league.League, snaps []LeagueSnapshot) edgeSet[league.League, LeagueSnapshot] {
	save := func(ctx context.Context, current league.League, s LeagueSnapshot) (league.League, error) {
		merged, changed := mergeLeague(current, s)
		if !changed {
			return current, nil
		}
		if err := repos.Leagues.Upsert(ctx, merged); err != nil {
			return league.League{}, fmt.Errorf("update league=%d: %w", merged.ID, err)
		}
		return merged, nil
	}
	link := func(ctx context.Context, leagueID int64) error {
		if err := repos.Teams.LinkLeague(ctx, leagueID, teamID); err != nil {
			return fmt.Errorf("link team=%d to league=%d: %w", teamID, leagueID, err)
		}
		return nil
	}

	return edgeSet[league.League, LeagueSnapshot]{
		stored:     stored,
		snapshot:   snaps,
		storedID:   func(l league.League) int64 { return l.ID },
		snapshotID: func(s LeagueSnapshot) int64 { return s.ID },
		sync:       save,
		retain:     func(league.League) bool { return true },
		unlink:     func(context.Context, league.League) error { return nil },
		lookup:     repos.Leagues.GetByIDs,
		link: func(ctx context.Context, existing league.League, s LeagueSnapshot) (league.League, error) {
			merged, err := save(ctx, existing, s)
			if err != nil {
				return league.League{}, err
			}
			return merged, link(ctx, merged.ID)
		},
		create: func(ctx context.Context, s LeagueSnapshot) (league.League, error) {
			item := leagueFromSnapshot(s)
			if err := repos.Leagues.Upsert(ctx, item); err != nil {
				return league.League{}, fmt.Errorf("create league=%d: %w", item.ID, err)
			}
			return item, link(ctx, item.ID)
		},
	}
}

// ReconcilePlayer refreshes one player profile. The response must describe the
// requested league and season.
func (r *GraphReconciler) ReconcilePlayer(ctx context.Context, playerID, leagueID int64, season int) (result player.Player, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcilePlayer", attribute.Int64("player_id", playerID))
	defer func() { endSpan(span, err) }()

	if playerID <= 0 || leagueID <= 0 || season <= 0 {
		return player.Player{}, fmt.Errorf("%w: player, league and season are required", ErrInvalidInput)
	}

	snap, err := r.client.FetchPlayer(ctx, playerID, leagueID, season)
	if err != nil {
		return player.Player{}, fmt.Errorf("fetch player=%d: %w", playerID, err)
	}
	if snap.LeagueID != leagueID || snap.Season != season {
		r.logger.ErrorContext(ctx, "player response scope mismatch",
			"player_id", playerID,
			"league_id", leagueID,
			"season", season,
			"response_league_id", snap.LeagueID,
			"response_season", snap.Season,
		)
		return player.Player{}, fmt.Errorf("%w: player=%d response is for league=%d season=%d", ErrMalformedSnapshot, playerID, snap.LeagueID, snap.Season)
	}
	if snap.Player.ID != playerID || snap.Player.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player response id=%d for player=%d", ErrMalformedSnapshot, snap.Player.ID, playerID)
	}

	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		current, found, err := repos.Players.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player=%d: %w", playerID, err)
		}
		if !found {
			result = playerFromSnapshot(snap.Player)
			return repos.Players.Upsert(ctx, result)
		}
		var changed bool
		result, changed = mergePlayer(current, snap.Player)
		if !changed {
			return nil
		}
		return repos.Players.Upsert(ctx, result)
	})
	if err != nil {
		return player.Player{}, fmt.Errorf("reconcile player=%d: %w", playerID, err)
	}

	r.cache.record(ctx, cachelog.TypePlayer, map[string]any{"playerId": playerID, "leagueId": leagueID, "season": season})
	return result, nil
}

// ReconcileFixturesOfLeague creates or updates every fixture of the league's
// current season together with its live status.
func (r *GraphReconciler) ReconcileFixturesOfLeague(ctx context.Context, leagueID int64) (result []fixture.Fixture, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GraphReconciler.ReconcileFixturesOfLeague", attribute.Int64("league_id", leagueID))
	defer func() { endSpan(span, err) }()

	_, season, err := r.cachedLeagueSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	snaps, err := r.client.FetchFixturesOfLeague(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures of league=%d season=%d: %w", leagueID, season, err)
	}
	for _, s := range snaps {
		if s.ID <= 0 || s.HomeTeamID <= 0 || s.AwayTeamID <= 0 {
			return nil, fmt.Errorf("%w: fixture without id or teams in league=%d", ErrMalformedSnapshot, leagueID)
		}
	}

	created, updated := 0, 0
	err = r.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		result = make([]fixture.Fixture, 0, len(snaps))
		for _, s := range snaps {
			if s.LeagueID == 0 {
				s.LeagueID = leagueID
			}
			if err := checkFixtureReferences(ctx, repos, s); err != nil {
				return err
			}
			item, isNew, changed, err := r.saveFixture(ctx, repos.Fixtures, s)
			if err != nil {
				return err
			}
			switch {
			case isNew:
				created++
			case changed:
				updated++
			}
			result = append(result, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile fixtures of league=%d: %w", leagueID, err)
	}

	r.cache.record(ctx, cachelog.TypeFixturesOfLeague, map[string]any{"leagueId": leagueID, "season": season})
	r.logger.InfoContext(ctx, "league fixtures reconciled",
		"league_id", leagueID,
		"season", season,
		"fixtures", len(result),
		"created", created,
		"updated", updated,
	)
	return result, nil
}

func (r *GraphReconciler) saveFixture(ctx context.Context, repo fixture.Repository, s FixtureSnapshot) (fixture.Fixture, bool, bool, error) {
	status := liveStatusFromSnapshot(s.ID, s.Status, s.Goals)

	current, found, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		return fixture.Fixture{}, false, false, fmt.Errorf("get fixture=%d: %w", s.ID, err)
	}
	if !found {
		item := fixtureFromSnapshot(s, r.cfg.ReferenceZone)
		if err := repo.Upsert(ctx, item); err != nil {
			return fixture.Fixture{}, false, false, fmt.Errorf("create fixture=%d: %w", s.ID, err)
		}
		if err := repo.UpsertLiveStatus(ctx, status); err != nil {
			return fixture.Fixture{}, false, false, fmt.Errorf("create live status of fixture=%d: %w", s.ID, err)
		}
		return item, true, true, nil
	}

	item, changed := mergeFixture(current, s, r.cfg.ReferenceZone)
	if changed {
		if err := repo.Upsert(ctx, item); err != nil {
			return fixture.Fixture{}, false, false, fmt.Errorf("update fixture=%d: %w", s.ID, err)
		}
	}
	statusChanged, err := saveLiveStatus(ctx, repo, status)
	if err != nil {
		return fixture.Fixture{}, false, false, err
	}
	return item, false, changed || statusChanged, nil
}

func (r *GraphReconciler) cachedLeagueSeason(ctx context.Context, leagueID int64) (league.League, int, error) {
	if leagueID <= 0 {
		return league.League{}, 0, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	lg, found, err := r.store.Repositories().Leagues.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, 0, fmt.Errorf("get league=%d: %w", leagueID, err)
	}
	if !found {
		return league.League{}, 0, fmt.Errorf("%w: league=%d is not cached", ErrPreconditionMissing, leagueID)
	}
	season, ok := lg.Season()
	if !ok {
		return league.League{}, 0, fmt.Errorf("%w: league=%d has no current season", ErrPreconditionMissing, leagueID)
	}
	return lg, season, nil
}

func (r *GraphReconciler) ensureTeam(ctx context.Context, teamID int64) error {
	if teamID <= 0 {
		return fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	_, found, err := r.store.Repositories().Teams.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team=%d: %w", teamID, err)
	}
	if found {
		return nil
	}
	r.logger.InfoContext(ctx, "team not cached, caching single team first", "team_id", teamID)
	_, err = r.ReconcileSingleTeam(ctx, teamID)
	return err
}

func saveLeague(ctx context.Context, repo league.Repository, s LeagueSnapshot) (league.League, error) {
	current, found, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league=%d: %w", s.ID, err)
	}
	if !found {
		item := leagueFromSnapshot(s)
		if err := item.Validate(); err != nil {
			return league.League{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		if err := repo.Upsert(ctx, item); err != nil {
			return league.League{}, fmt.Errorf("create league=%d: %w", s.ID, err)
		}
		return item, nil
	}

	merged, changed := mergeLeague(current, s)
	if !changed {
		return current, nil
	}
	if err := repo.Upsert(ctx, merged); err != nil {
		return league.League{}, fmt.Errorf("update league=%d: %w", s.ID, err)
	}
	return merged, nil
}

// saveLiveStatus writes status only when it differs from the stored row.
func saveLiveStatus(ctx context.Context, repo fixture.Repository, status fixture.LiveStatus) (bool, error) {
	current, found, err := repo.GetLiveStatus(ctx, status.FixtureID)
	if err != nil {
		return false, fmt.Errorf("get live status of fixture=%d: %w", status.FixtureID, err)
	}
	if found && liveStatusEqual(current, status) {
		return false, nil
	}
	if err := repo.UpsertLiveStatus(ctx, status); err != nil {
		return false, fmt.Errorf("save live status of fixture=%d: %w", status.FixtureID, err)
	}
	return true, nil
}

// checkFixtureReferences fails with ErrReferenceNotFound when the league or a
// team of the fixture is not stored.
func checkFixtureReferences(ctx context.Context, repos Repositories, s FixtureSnapshot) error {
	_, found, err := repos.Leagues.GetByID(ctx, s.LeagueID)
	if err != nil {
		return fmt.Errorf("get league=%d: %w", s.LeagueID, err)
	}
	if !found {
		return fmt.Errorf("%w: league=%d of fixture=%d", ErrReferenceNotFound, s.LeagueID, s.ID)
	}

	teams, err := repos.Teams.GetByIDs(ctx, []int64{s.HomeTeamID, s.AwayTeamID})
	if err != nil {
		return fmt.Errorf("get teams of fixture=%d: %w", s.ID, err)
	}
	known := make(map[int64]bool, len(teams))
	for _, t := range teams {
		known[t.ID] = true
	}
	for _, id := range []int64{s.HomeTeamID, s.AwayTeamID} {
		if !known[id] {
			return fmt.Errorf("%w: team=%d of fixture=%d", ErrReferenceNotFound, id, s.ID)
		}
	}
	return nil
}
