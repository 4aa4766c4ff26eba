package match

import "context"

// Repository persists lineups, fixture-scoped players and timeline events.
type Repository interface {
	GetLineup(ctx context.Context, fixtureID, teamID int64) (Lineup, bool, error)
	CreateLineup(ctx context.Context, item Lineup) (Lineup, error)

	GetPlayer(ctx context.Context, id int64) (Player, bool, error)
	ListPlayersByFixture(ctx context.Context, fixtureID int64) ([]Player, error)
	// FindPlayerByName matches unregistered players of a fixture+team, lineup-bound first.
	FindPlayerByName(ctx context.Context, fixtureID, teamID int64, name string) (Player, bool, error)
	// FindPlayerByPlayerID matches players bound to a registered player, lineup-bound first.
	FindPlayerByPlayerID(ctx context.Context, fixtureID, teamID, playerID int64) (Player, bool, error)
	CreatePlayer(ctx context.Context, item Player) (Player, error)
	UpdatePlayer(ctx context.Context, item Player) error
	DeletePlayer(ctx context.Context, id int64) error

	// ListEventsByFixture returns events ordered by sequence ascending.
	ListEventsByFixture(ctx context.Context, fixtureID int64) ([]Event, error)
	CreateEvent(ctx context.Context, item Event) (Event, error)
	UpdateEvent(ctx context.Context, item Event) error
	DeleteEvent(ctx context.Context, id int64) error
	CountEventReferences(ctx context.Context, playerRefID int64) (int, error)
}
