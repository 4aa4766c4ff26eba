package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-sync/internal/usecase"
)

// Store implements usecase.Store on Postgres.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repositories() usecase.Repositories {
	return repositoriesOn(s.db)
}

func (s *Store) CacheLog() *CacheLogRepository {
	return NewCacheLogRepository(s.db)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repositoriesOn(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func repositoriesOn(db queryer) usecase.Repositories {
	return usecase.Repositories{
		Leagues:  &LeagueRepository{db: db},
		Teams:    &TeamRepository{db: db},
		Players:  &PlayerRepository{db: db},
		Fixtures: &FixtureRepository{db: db},
		Matches:  &MatchRepository{db: db},
	}
}
