package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/football-sync/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) GetLineup(_ context.Context, fixtureID, teamID int64) (match.Lineup, bool, error) {
	var (
		item  match.Lineup
		found bool
	)
	r.store.read(func(s *state) {
		for _, row := range s.lineups {
			if row.FixtureID == fixtureID && row.TeamID == teamID {
				item, found = row, true
				return
			}
		}
	})
	return item, found, nil
}

func (r *MatchRepository) CreateLineup(_ context.Context, item match.Lineup) (match.Lineup, error) {
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.fixtures[item.FixtureID]; !ok {
			err = fmt.Errorf("create lineup: fixture=%d does not exist", item.FixtureID)
			return
		}
		for _, row := range s.lineups {
			if row.FixtureID == item.FixtureID && row.TeamID == item.TeamID {
				err = fmt.Errorf("create lineup: fixture=%d team=%d already has a lineup", item.FixtureID, item.TeamID)
				return
			}
		}
		s.nextID++
		item.ID = s.nextID
		s.lineups[item.ID] = item
	})
	if err != nil {
		return match.Lineup{}, err
	}
	return item, nil
}

func (r *MatchRepository) GetPlayer(_ context.Context, id int64) (match.Player, bool, error) {
	var (
		item match.Player
		ok   bool
	)
	r.store.read(func(s *state) {
		item, ok = s.matchPlayer[id]
	})
	return item, ok, nil
}

func (r *MatchRepository) ListPlayersByFixture(_ context.Context, fixtureID int64) ([]match.Player, error) {
	return r.players(func(p match.Player) bool { return p.FixtureID == fixtureID }), nil
}

func (r *MatchRepository) FindPlayerByName(_ context.Context, fixtureID, teamID int64, name string) (match.Player, bool, error) {
	name = strings.TrimSpace(name)
	rows := r.players(func(p match.Player) bool {
		return p.FixtureID == fixtureID && p.TeamID == teamID && p.PlayerID == nil && p.UnregisteredName == name
	})
	if len(rows) == 0 {
		return match.Player{}, false, nil
	}
	return rows[0], true, nil
}

func (r *MatchRepository) FindPlayerByPlayerID(_ context.Context, fixtureID, teamID, playerID int64) (match.Player, bool, error) {
	rows := r.players(func(p match.Player) bool {
		return p.FixtureID == fixtureID && p.TeamID == teamID && p.PlayerID != nil && *p.PlayerID == playerID
	})
	if len(rows) == 0 {
		return match.Player{}, false, nil
	}
	return rows[0], true, nil
}

// players returns matching rows, lineup-bound ones first, then by id.
func (r *MatchRepository) players(keep func(match.Player) bool) []match.Player {
	var out []match.Player
	r.store.read(func(s *state) {
		for _, p := range s.matchPlayer {
			if keep(p) {
				out = append(out, p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Disposable() != out[j].Disposable() {
			return !out[i].Disposable()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MatchRepository) CreatePlayer(_ context.Context, item match.Player) (match.Player, error) {
	if err := item.Validate(); err != nil {
		return match.Player{}, err
	}
	var err error
	r.store.write(func(s *state) {
		if err = checkPlayerRefs(s, item); err != nil {
			return
		}
		s.nextID++
		item.ID = s.nextID
		s.matchPlayer[item.ID] = item
	})
	if err != nil {
		return match.Player{}, err
	}
	return item, nil
}

func (r *MatchRepository) UpdatePlayer(_ context.Context, item match.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.matchPlayer[item.ID]; !ok {
			err = fmt.Errorf("match player=%d does not exist", item.ID)
			return
		}
		if err = checkPlayerRefs(s, item); err != nil {
			return
		}
		s.matchPlayer[item.ID] = item
	})
	return err
}

func checkPlayerRefs(s *state, item match.Player) error {
	if _, ok := s.fixtures[item.FixtureID]; !ok {
		return fmt.Errorf("match player: fixture=%d does not exist", item.FixtureID)
	}
	if item.LineupID != nil {
		if _, ok := s.lineups[*item.LineupID]; !ok {
			return fmt.Errorf("match player: lineup=%d does not exist", *item.LineupID)
		}
	}
	if item.PlayerID != nil {
		if _, ok := s.players[*item.PlayerID]; !ok {
			return fmt.Errorf("match player: player=%d does not exist", *item.PlayerID)
		}
	}
	return nil
}

func (r *MatchRepository) DeletePlayer(_ context.Context, id int64) error {
	var err error
	r.store.write(func(s *state) {
		for _, e := range s.events {
			if refersTo(e, id) {
				err = fmt.Errorf("delete match player=%d: still referenced by event=%d", id, e.ID)
				return
			}
		}
		delete(s.matchPlayer, id)
	})
	return err
}

func (r *MatchRepository) ListEventsByFixture(_ context.Context, fixtureID int64) ([]match.Event, error) {
	var out []match.Event
	r.store.read(func(s *state) {
		for _, e := range s.events {
			if e.FixtureID == fixtureID {
				out = append(out, e)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *MatchRepository) CreateEvent(_ context.Context, item match.Event) (match.Event, error) {
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.fixtures[item.FixtureID]; !ok {
			err = fmt.Errorf("create event: fixture=%d does not exist", item.FixtureID)
			return
		}
		for _, e := range s.events {
			if e.FixtureID == item.FixtureID && e.Sequence == item.Sequence {
				err = fmt.Errorf("create event: fixture=%d sequence=%d already exists", item.FixtureID, item.Sequence)
				return
			}
		}
		if err = checkEventRefs(s, item); err != nil {
			return
		}
		s.nextID++
		item.ID = s.nextID
		s.events[item.ID] = item
	})
	if err != nil {
		return match.Event{}, err
	}
	return item, nil
}

func (r *MatchRepository) UpdateEvent(_ context.Context, item match.Event) error {
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.events[item.ID]; !ok {
			err = fmt.Errorf("event=%d does not exist", item.ID)
			return
		}
		if err = checkEventRefs(s, item); err != nil {
			return
		}
		s.events[item.ID] = item
	})
	return err
}

func checkEventRefs(s *state, item match.Event) error {
	for _, ref := range []*int64{item.PlayerRefID, item.AssistRefID} {
		if ref == nil {
			continue
		}
		if _, ok := s.matchPlayer[*ref]; !ok {
			return fmt.Errorf("event sequence=%d: match player=%d does not exist", item.Sequence, *ref)
		}
	}
	return nil
}

func (r *MatchRepository) DeleteEvent(_ context.Context, id int64) error {
	r.store.write(func(s *state) {
		delete(s.events, id)
	})
	return nil
}

func (r *MatchRepository) CountEventReferences(_ context.Context, playerRefID int64) (int, error) {
	count := 0
	r.store.read(func(s *state) {
		for _, e := range s.events {
			if refersTo(e, playerRefID) {
				count++
			}
		}
	})
	return count, nil
}

func refersTo(e match.Event, id int64) bool {
	return (e.PlayerRefID != nil && *e.PlayerRefID == id) || (e.AssistRefID != nil && *e.AssistRefID == id)
}
