package fixture

import "context"

// Repository exposes fixture and live status persistence.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Fixture, error)
	ListAvailable(ctx context.Context) ([]Fixture, error)
	Upsert(ctx context.Context, item Fixture) error
	SetAvailable(ctx context.Context, id int64, available bool) error
	GetLiveStatus(ctx context.Context, fixtureID int64) (LiveStatus, bool, error)
	UpsertLiveStatus(ctx context.Context, status LiveStatus) error
}
