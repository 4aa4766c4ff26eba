package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-sync/internal/domain/match"
	"go.opentelemetry.io/otel/attribute"
)

// SaveLineups stores both announced lineups of a fixture. It returns false
// without writing when the poll does not carry a home and an away lineup.
// Disposable match players created from earlier events are adopted into the
// lineup instead of being duplicated.
func (s *LiveEventSynchronizer) SaveLineups(ctx context.Context, snap LiveFixtureSnapshot) (saved bool, err error) {
	fixtureID := snap.Fixture.ID
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventSynchronizer.SaveLineups", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	home, away, ok := snap.TrustedLineups()
	if !ok {
		s.logger.DebugContext(ctx, "lineups not yet available", "fixture_id", fixtureID)
		return false, nil
	}

	created, adopted := 0, 0
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := checkLiveReferences(ctx, repos, snap); err != nil {
			return err
		}
		existing, err := repos.Matches.ListPlayersByFixture(ctx, fixtureID)
		if err != nil {
			return fmt.Errorf("list match players: %w", err)
		}
		for _, l := range []LineupSnapshot{home, away} {
			c, a, err := s.saveLineup(ctx, repos, fixtureID, l, existing)
			if err != nil {
				return err
			}
			created += c
			adopted += a
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("save lineups of fixture=%d: %w", fixtureID, err)
	}

	s.logger.InfoContext(ctx, "lineups saved", "fixture_id", fixtureID, "created", created, "adopted", adopted)
	return true, nil
}

func (s *LiveEventSynchronizer) saveLineup(
	ctx context.Context,
	repos Repositories,
	fixtureID int64,
	l LineupSnapshot,
	existing []match.Player,
) (created, adopted int, err error) {
	lineup, found, err := repos.Matches.GetLineup(ctx, fixtureID, l.TeamID)
	if err != nil {
		return 0, 0, fmt.Errorf("get lineup of team=%d: %w", l.TeamID, err)
	}
	if !found {
		lineup, err = repos.Matches.CreateLineup(ctx, match.Lineup{FixtureID: fixtureID, TeamID: l.TeamID, Formation: l.Formation})
		if err != nil {
			return 0, 0, fmt.Errorf("create lineup of team=%d: %w", l.TeamID, err)
		}
	}

	var teamPlayers []match.Player
	for _, p := range existing {
		if p.TeamID == l.TeamID {
			teamPlayers = append(teamPlayers, p)
		}
	}

	entries := make([]LineupPlayerSnapshot, 0, len(l.StartXI)+len(l.Substitutes))
	entries = append(entries, l.StartXI...)
	entries = append(entries, l.Substitutes...)

	for i, entry := range entries {
		ref, err := s.lineupRef(ctx, repos, fixtureID, l.TeamID, entry.Person.Ref())
		if err != nil {
			return 0, 0, err
		}
		if ref.Kind() == PersonNone {
			s.logger.WarnContext(ctx, "lineup entry without id or name", "fixture_id", fixtureID, "team_id", l.TeamID)
			continue
		}

		item := match.Player{
			FixtureID:  fixtureID,
			TeamID:     l.TeamID,
			LineupID:   &lineup.ID,
			Position:   entry.Position,
			Grid:       entry.Grid,
			Number:     entry.Number.Ptr(),
			Substitute: i >= len(l.StartXI),
		}
		if ref.Kind() == PersonRegistered {
			id := ref.ID()
			item.PlayerID = &id
		} else {
			item.UnregisteredName = ref.Name()
		}

		idx, inLineup := findLineupPlayer(teamPlayers, ref, lineup.ID)
		switch {
		case inLineup:
			continue
		case idx >= 0:
			item.ID = teamPlayers[idx].ID
			if err := repos.Matches.UpdatePlayer(ctx, item); err != nil {
				return 0, 0, fmt.Errorf("adopt match player=%d into lineup: %w", item.ID, err)
			}
			teamPlayers[idx] = item
			adopted++
		default:
			saved, err := repos.Matches.CreatePlayer(ctx, item)
			if err != nil {
				return 0, 0, fmt.Errorf("create lineup player of team=%d: %w", l.TeamID, err)
			}
			teamPlayers = append(teamPlayers, saved)
			created++
		}
	}
	return created, adopted, nil
}

// lineupRef downgrades registered entries whose player is not cached to their name.
func (s *LiveEventSynchronizer) lineupRef(ctx context.Context, repos Repositories, fixtureID, teamID int64, ref PersonRef) (PersonRef, error) {
	if ref.Kind() != PersonRegistered {
		return ref, nil
	}
	_, found, err := repos.Players.GetByID(ctx, ref.ID())
	if err != nil {
		return PersonRef{}, fmt.Errorf("get player=%d: %w", ref.ID(), err)
	}
	if found {
		return ref, nil
	}
	s.logger.WarnContext(ctx, "player resolution anomaly",
		"fixture_id", fixtureID,
		"team_id", teamID,
		"player_id", ref.ID(),
		"player_name", ref.Name(),
	)
	if ref.Name() == "" {
		return NoPerson(), nil
	}
	return Unregistered(ref.Name()), nil
}

// findLineupPlayer returns whether ref is already part of the lineup, or else the
// index of a disposable match player with the same identity (-1 when none).
func findLineupPlayer(players []match.Player, ref PersonRef, lineupID int64) (int, bool) {
	disposable := -1
	for i, p := range players {
		if !personRefOf(p).Equal(ref) {
			continue
		}
		if p.LineupID != nil && *p.LineupID == lineupID {
			return i, true
		}
		if p.Disposable() && disposable < 0 {
			disposable = i
		}
	}
	return disposable, false
}
