package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	qb "github.com/riskibarqy/football-sync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db queryer
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := qb.Select("*").From("players").
		Where(qb.Expr("id = ANY(?)", pq.Array(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("p.*").From("players p JOIN team_players tp ON tp.player_id = p.id").
		Where(qb.Eq("tp.team_id", teamID)).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *PlayerRepository) list(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

// Upsert inserts a player or refreshes its provider owned columns. An existing
// display name override and prevent_unlink flag are left untouched; only
// SetPreventUnlink changes curation.
func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	insertModel := playerInsertModel{
		ID:            item.ID,
		Name:          item.Name,
		DisplayName:   toNullString(item.DisplayName),
		Photo:         item.Photo,
		Position:      item.Position,
		Number:        toNullInt(item.Number),
		PreventUnlink: item.PreventUnlink,
	}
	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    photo = EXCLUDED.photo,
    position = EXCLUDED.position,
    number = EXCLUDED.number,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) SetPreventUnlink(ctx context.Context, id int64, prevent bool) error {
	query, args, err := qb.Update("players").
		Set("prevent_unlink", prevent).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set player prevent unlink query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set player prevent unlink: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("set player prevent unlink: player=%d does not exist", id)
	}
	return nil
}

func (r *PlayerRepository) LinkTeam(ctx context.Context, teamID, playerID int64) error {
	query, args, err := qb.InsertInto("team_players").
		Columns("team_id", "player_id").
		Values(teamID, playerID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build link team player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("link team player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UnlinkTeam(ctx context.Context, teamID, playerID int64) error {
	query, args, err := qb.DeleteFrom("team_players").
		Where(qb.Eq("team_id", teamID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build unlink team player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unlink team player: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:            row.ID,
		Name:          row.Name,
		DisplayName:   nullString(row.DisplayName),
		Photo:         row.Photo,
		Position:      row.Position,
		Number:        nullInt(row.Number),
		PreventUnlink: row.PreventUnlink,
	}
}
