package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/football-sync/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	var (
		item team.Team
		ok   bool
	)
	r.store.read(func(s *state) {
		item, ok = s.teams[id]
	})
	return item, ok, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, ids []int64) ([]team.Team, error) {
	out := make([]team.Team, 0, len(ids))
	r.store.read(func(s *state) {
		for _, id := range ids {
			if item, ok := s.teams[id]; ok {
				out = append(out, item)
			}
		}
	})
	return out, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	var out []team.Team
	r.store.read(func(s *state) {
		for e := range s.leagueTeams {
			if e.from == leagueID {
				out = append(out, s.teams[e.to])
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListLeagueIDs(_ context.Context, teamID int64) ([]int64, error) {
	var out []int64
	r.store.read(func(s *state) {
		for e := range s.leagueTeams {
			if e.to == teamID {
				out = append(out, e.from)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.store.write(func(s *state) {
		if current, ok := s.teams[item.ID]; ok {
			item.DisplayName = current.DisplayName
		}
		s.teams[item.ID] = item
	})
	return nil
}

func (r *TeamRepository) LinkLeague(_ context.Context, leagueID, teamID int64) error {
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.leagues[leagueID]; !ok {
			err = fmt.Errorf("link league=%d team=%d: league does not exist", leagueID, teamID)
			return
		}
		if _, ok := s.teams[teamID]; !ok {
			err = fmt.Errorf("link league=%d team=%d: team does not exist", leagueID, teamID)
			return
		}
		s.leagueTeams[edge{from: leagueID, to: teamID}] = struct{}{}
	})
	return err
}

func (r *TeamRepository) UnlinkLeague(_ context.Context, leagueID, teamID int64) error {
	r.store.write(func(s *state) {
		delete(s.leagueTeams, edge{from: leagueID, to: teamID})
	})
	return nil
}
