package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	DisplayName   sql.NullString `db:"display_name"`
	Logo          string         `db:"logo"`
	CurrentSeason sql.NullInt64  `db:"current_season"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type leagueInsertModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	DisplayName   sql.NullString `db:"display_name"`
	Logo          string         `db:"logo"`
	CurrentSeason sql.NullInt64  `db:"current_season"`
}
