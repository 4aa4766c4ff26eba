package team

import "context"

// Repository describes team persistence needs from use cases, including the
// league_teams edge set.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Team, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Team, error)
	ListLeagueIDs(ctx context.Context, teamID int64) ([]int64, error)
	Upsert(ctx context.Context, item Team) error
	LinkLeague(ctx context.Context, leagueID, teamID int64) error
	UnlinkLeague(ctx context.Context, leagueID, teamID int64) error
}
