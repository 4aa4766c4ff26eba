package postgres

import "database/sql"

type lineupTableModel struct {
	ID        int64  `db:"id"`
	FixtureID int64  `db:"fixture_id"`
	TeamID    int64  `db:"team_id"`
	Formation string `db:"formation"`
}

type lineupInsertModel struct {
	FixtureID int64  `db:"fixture_id"`
	TeamID    int64  `db:"team_id"`
	Formation string `db:"formation"`
}

type matchPlayerTableModel struct {
	ID               int64          `db:"id"`
	FixtureID        int64          `db:"fixture_id"`
	TeamID           int64          `db:"team_id"`
	LineupID         sql.NullInt64  `db:"lineup_id"`
	PlayerID         sql.NullInt64  `db:"player_id"`
	UnregisteredName sql.NullString `db:"unregistered_name"`
	Position         string         `db:"position"`
	Grid             string         `db:"grid"`
	Number           sql.NullInt64  `db:"number"`
	Substitute       bool           `db:"substitute"`
}

type matchPlayerWriteModel struct {
	FixtureID        int64          `db:"fixture_id"`
	TeamID           int64          `db:"team_id"`
	LineupID         sql.NullInt64  `db:"lineup_id"`
	PlayerID         sql.NullInt64  `db:"player_id"`
	UnregisteredName sql.NullString `db:"unregistered_name"`
	Position         string         `db:"position"`
	Grid             string         `db:"grid"`
	Number           sql.NullInt64  `db:"number"`
	Substitute       bool           `db:"substitute"`
}

type fixtureEventTableModel struct {
	ID          int64          `db:"id"`
	FixtureID   int64          `db:"fixture_id"`
	Sequence    int            `db:"sequence"`
	Elapsed     int            `db:"elapsed"`
	Extra       sql.NullInt64  `db:"extra"`
	TeamID      sql.NullInt64  `db:"team_id"`
	Type        string         `db:"type"`
	Detail      string         `db:"detail"`
	Comments    sql.NullString `db:"comments"`
	PlayerRefID sql.NullInt64  `db:"player_match_player_id"`
	AssistRefID sql.NullInt64  `db:"assist_match_player_id"`
}

type fixtureEventWriteModel struct {
	FixtureID   int64          `db:"fixture_id"`
	Sequence    int            `db:"sequence"`
	Elapsed     int            `db:"elapsed"`
	Extra       sql.NullInt64  `db:"extra"`
	TeamID      sql.NullInt64  `db:"team_id"`
	Type        string         `db:"type"`
	Detail      string         `db:"detail"`
	Comments    sql.NullString `db:"comments"`
	PlayerRefID sql.NullInt64  `db:"player_match_player_id"`
	AssistRefID sql.NullInt64  `db:"assist_match_player_id"`
}
