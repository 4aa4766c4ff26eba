package player

import "context"

// Repository describes player persistence needs, including the team_players edge set.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Player, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
	// Upsert writes provider fields; an existing row keeps its DisplayName and
	// PreventUnlink.
	Upsert(ctx context.Context, item Player) error
	SetPreventUnlink(ctx context.Context, id int64, prevent bool) error
	LinkTeam(ctx context.Context, teamID, playerID int64) error
	UnlinkTeam(ctx context.Context, teamID, playerID int64) error
}
