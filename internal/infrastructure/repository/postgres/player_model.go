package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	DisplayName   sql.NullString `db:"display_name"`
	Photo         string         `db:"photo"`
	Position      string         `db:"position"`
	Number        sql.NullInt64  `db:"number"`
	PreventUnlink bool           `db:"prevent_unlink"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	DisplayName   sql.NullString `db:"display_name"`
	Photo         string         `db:"photo"`
	Position      string         `db:"position"`
	Number        sql.NullInt64  `db:"number"`
	PreventUnlink bool           `db:"prevent_unlink"`
}
