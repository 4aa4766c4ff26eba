package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	DisplayName sql.NullString `db:"display_name"`
	Logo        string         `db:"logo"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	DisplayName sql.NullString `db:"display_name"`
	Logo        string         `db:"logo"`
}
