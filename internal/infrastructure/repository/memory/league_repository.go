package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/football-sync/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func (r *LeagueRepository) GetByID(_ context.Context, id int64) (league.League, bool, error) {
	var (
		item league.League
		ok   bool
	)
	r.store.read(func(s *state) {
		item, ok = s.leagues[id]
	})
	return item, ok, nil
}

func (r *LeagueRepository) GetByIDs(_ context.Context, ids []int64) ([]league.League, error) {
	out := make([]league.League, 0, len(ids))
	r.store.read(func(s *state) {
		for _, id := range ids {
			if item, ok := s.leagues[id]; ok {
				out = append(out, item)
			}
		}
	})
	return out, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	var out []league.League
	r.store.read(func(s *state) {
		out = make([]league.League, 0, len(s.leagues))
		for _, item := range s.leagues {
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) Upsert(_ context.Context, item league.League) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.store.write(func(s *state) {
		if current, ok := s.leagues[item.ID]; ok {
			item.DisplayName = current.DisplayName
		}
		s.leagues[item.ID] = item
	})
	return nil
}
