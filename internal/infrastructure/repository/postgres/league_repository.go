package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	qb "github.com/riskibarqy/football-sync/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db queryer
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build select league by id query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league by id: %w", err)
	}
	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) GetByIDs(ctx context.Context, ids []int64) ([]league.League, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Expr("id = ANY(?)", pq.Array(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues by ids query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *LeagueRepository) list(ctx context.Context, query string, args []any) ([]league.League, error) {
	var rows []leagueTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}
	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) error {
	insertModel := leagueInsertModel{
		ID:            item.ID,
		Name:          item.Name,
		DisplayName:   toNullString(item.DisplayName),
		Logo:          item.Logo,
		CurrentSeason: toNullInt(item.CurrentSeason),
	}
	query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    logo = EXCLUDED.logo,
    current_season = EXCLUDED.current_season,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league: %w", err)
	}
	return nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:            row.ID,
		Name:          row.Name,
		DisplayName:   nullString(row.DisplayName),
		Logo:          row.Logo,
		CurrentSeason: nullInt(row.CurrentSeason),
	}
}
