package usecase

import (
	"context"

	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/match"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/domain/team"
)

// Repositories groups the entity store repositories bound to one connection or
// transaction.
type Repositories struct {
	Leagues  league.Repository
	Teams    team.Repository
	Players  player.Repository
	Fixtures fixture.Repository
	Matches  match.Repository
}

// Store is the entity store. WithinTx runs fn in one transaction: fn returning
// an error rolls back every write it made.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
