package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-sync/internal/domain/match"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
)

// personResolver maps event persons to fixture-scoped match players for one
// poll. It caches every match player of the fixture it has seen.
type personResolver struct {
	repos     Repositories
	fixtureID int64
	players   map[int64]match.Player
	logger    *logging.Logger
	anomalies int
}

func newPersonResolver(ctx context.Context, repos Repositories, fixtureID int64, logger *logging.Logger) (*personResolver, error) {
	items, err := repos.Matches.ListPlayersByFixture(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("list match players of fixture=%d: %w", fixtureID, err)
	}
	players := make(map[int64]match.Player, len(items))
	for _, p := range items {
		players[p.ID] = p
	}
	return &personResolver{repos: repos, fixtureID: fixtureID, players: players, logger: logger}, nil
}

// refOf returns the identity a stored reference points at. Dangling ids read
// as nobody so the event gets re-resolved.
func (r *personResolver) refOf(id *int64) PersonRef {
	if id == nil {
		return NoPerson()
	}
	p, ok := r.players[*id]
	if !ok {
		return NoPerson()
	}
	return personRefOf(p)
}

// resolve returns the match player id for ref, creating a disposable match
// player when none exists. created lists match players made by this call.
func (r *personResolver) resolve(ctx context.Context, ref PersonRef, teamID int64) (id *int64, created []int64, err error) {
	switch ref.Kind() {
	case PersonNone:
		return nil, nil, nil
	case PersonUnregistered:
		return r.resolveByName(ctx, ref.Name(), teamID)
	}

	_, found, err := r.repos.Players.GetByID(ctx, ref.ID())
	if err != nil {
		return nil, nil, fmt.Errorf("get player=%d: %w", ref.ID(), err)
	}
	if !found {
		r.anomalies++
		r.logger.WarnContext(ctx, "player resolution anomaly",
			"fixture_id", r.fixtureID,
			"team_id", teamID,
			"player_id", ref.ID(),
			"player_name", ref.Name(),
		)
		if ref.Name() == "" {
			return nil, nil, fmt.Errorf("%w: player=%d is not cached and has no name", errEventUnresolvable, ref.ID())
		}
		return r.resolveByName(ctx, ref.Name(), teamID)
	}

	existing, found, err := r.repos.Matches.FindPlayerByPlayerID(ctx, r.fixtureID, teamID, ref.ID())
	if err != nil {
		return nil, nil, fmt.Errorf("find match player of player=%d: %w", ref.ID(), err)
	}
	if found {
		r.players[existing.ID] = existing
		return &existing.ID, nil, nil
	}
	playerID := ref.ID()
	return r.create(ctx, match.Player{FixtureID: r.fixtureID, TeamID: teamID, PlayerID: &playerID})
}

func (r *personResolver) resolveByName(ctx context.Context, name string, teamID int64) (*int64, []int64, error) {
	existing, found, err := r.repos.Matches.FindPlayerByName(ctx, r.fixtureID, teamID, name)
	if err != nil {
		return nil, nil, fmt.Errorf("find match player named %q: %w", name, err)
	}
	if found {
		r.players[existing.ID] = existing
		return &existing.ID, nil, nil
	}
	return r.create(ctx, match.Player{FixtureID: r.fixtureID, TeamID: teamID, UnregisteredName: name})
}

func (r *personResolver) create(ctx context.Context, item match.Player) (*int64, []int64, error) {
	if err := item.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errEventUnresolvable, err)
	}
	saved, err := r.repos.Matches.CreatePlayer(ctx, item)
	if err != nil {
		return nil, nil, fmt.Errorf("create match player: %w", err)
	}
	r.players[saved.ID] = saved
	return &saved.ID, []int64{saved.ID}, nil
}

// release deletes each disposable match player that no event references any more.
func (r *personResolver) release(ctx context.Context, ids ...*int64) error {
	done := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id == nil || done[*id] {
			continue
		}
		done[*id] = true

		p, ok := r.players[*id]
		if !ok || !p.Disposable() {
			continue
		}
		refs, err := r.repos.Matches.CountEventReferences(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("count references of match player=%d: %w", p.ID, err)
		}
		if refs > 0 {
			continue
		}
		if err := r.repos.Matches.DeletePlayer(ctx, p.ID); err != nil {
			return fmt.Errorf("delete match player=%d: %w", p.ID, err)
		}
		delete(r.players, p.ID)
	}
	return nil
}
