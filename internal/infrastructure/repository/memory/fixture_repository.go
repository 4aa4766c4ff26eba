package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/football-sync/internal/domain/fixture"
)

type FixtureRepository struct {
	store *Store
}

func (r *FixtureRepository) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	var (
		item fixture.Fixture
		ok   bool
	)
	r.store.read(func(s *state) {
		item, ok = s.fixtures[id]
	})
	return item, ok, nil
}

func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID int64) ([]fixture.Fixture, error) {
	return r.list(func(item fixture.Fixture) bool { return item.LeagueID == leagueID }), nil
}

func (r *FixtureRepository) ListAvailable(_ context.Context) ([]fixture.Fixture, error) {
	return r.list(func(item fixture.Fixture) bool { return item.Available }), nil
}

func (r *FixtureRepository) list(keep func(fixture.Fixture) bool) []fixture.Fixture {
	var out []fixture.Fixture
	r.store.read(func(s *state) {
		for _, item := range s.fixtures {
			if keep(item) {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) error {
	if err := item.Validate(); err != nil {
		return err
	}
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.leagues[item.LeagueID]; !ok {
			err = fmt.Errorf("upsert fixture=%d: league=%d does not exist", item.ID, item.LeagueID)
			return
		}
		for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
			if _, ok := s.teams[teamID]; !ok {
				err = fmt.Errorf("upsert fixture=%d: team=%d does not exist", item.ID, teamID)
				return
			}
		}
		s.fixtures[item.ID] = item
	})
	return err
}

func (r *FixtureRepository) SetAvailable(_ context.Context, id int64, available bool) error {
	var err error
	r.store.write(func(s *state) {
		item, ok := s.fixtures[id]
		if !ok {
			err = fmt.Errorf("fixture=%d does not exist", id)
			return
		}
		item.Available = available
		s.fixtures[id] = item
	})
	return err
}

func (r *FixtureRepository) GetLiveStatus(_ context.Context, fixtureID int64) (fixture.LiveStatus, bool, error) {
	var (
		item fixture.LiveStatus
		ok   bool
	)
	r.store.read(func(s *state) {
		item, ok = s.liveStatus[fixtureID]
	})
	return item, ok, nil
}

func (r *FixtureRepository) UpsertLiveStatus(_ context.Context, status fixture.LiveStatus) error {
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.fixtures[status.FixtureID]; !ok {
			err = fmt.Errorf("live status: fixture=%d does not exist", status.FixtureID)
			return
		}
		s.liveStatus[status.FixtureID] = status
	})
	return err
}
