package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/football-sync/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	var (
		item player.Player
		ok   bool
	)
	r.store.read(func(s *state) {
		item, ok = s.players[id]
	})
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	out := make([]player.Player, 0, len(ids))
	r.store.read(func(s *state) {
		for _, id := range ids {
			if item, ok := s.players[id]; ok {
				out = append(out, item)
			}
		}
	})
	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	var out []player.Player
	r.store.read(func(s *state) {
		for e := range s.teamPlayers {
			if e.from == teamID {
				out = append(out, s.players[e.to])
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.store.write(func(s *state) {
		if current, ok := s.players[item.ID]; ok {
			item.DisplayName = current.DisplayName
			item.PreventUnlink = current.PreventUnlink
		}
		s.players[item.ID] = item
	})
	return nil
}

func (r *PlayerRepository) SetPreventUnlink(_ context.Context, id int64, prevent bool) error {
	var err error
	r.store.write(func(s *state) {
		item, ok := s.players[id]
		if !ok {
			err = fmt.Errorf("player=%d does not exist", id)
			return
		}
		item.PreventUnlink = prevent
		s.players[id] = item
	})
	return err
}

func (r *PlayerRepository) LinkTeam(_ context.Context, teamID, playerID int64) error {
	var err error
	r.store.write(func(s *state) {
		if _, ok := s.teams[teamID]; !ok {
			err = fmt.Errorf("link team=%d player=%d: team does not exist", teamID, playerID)
			return
		}
		if _, ok := s.players[playerID]; !ok {
			err = fmt.Errorf("link team=%d player=%d: player does not exist", teamID, playerID)
			return
		}
		s.teamPlayers[edge{from: teamID, to: playerID}] = struct{}{}
	})
	return err
}

func (r *PlayerRepository) UnlinkTeam(_ context.Context, teamID, playerID int64) error {
	r.store.write(func(s *state) {
		delete(s.teamPlayers, edge{from: teamID, to: playerID})
	})
	return nil
}
