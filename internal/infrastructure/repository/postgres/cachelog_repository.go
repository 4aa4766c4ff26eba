package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	qb "github.com/riskibarqy/football-sync/internal/platform/querybuilder"
)

// CacheLogRepository keys entries by (cache_type, params). Params are encoded
// with sorted keys so equal maps produce equal jsonb documents.
type CacheLogRepository struct {
	db queryer
}

func NewCacheLogRepository(db *sqlx.DB) *CacheLogRepository {
	return &CacheLogRepository{db: db}
}

func (r *CacheLogRepository) Save(ctx context.Context, entry cachelog.Entry) error {
	params, err := encodeParams(entry.Params)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("cache_log", cacheLogTableModel{
		CacheType: string(entry.Type),
		Params:    params,
		CachedAt:  utc(entry.CachedAt),
	}, "ON CONFLICT (cache_type, params) DO UPDATE SET cached_at = EXCLUDED.cached_at")
	if err != nil {
		return fmt.Errorf("build upsert cache log query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert cache log: %w", err)
	}
	return nil
}

func (r *CacheLogRepository) Get(ctx context.Context, typ cachelog.Type, params map[string]any) (cachelog.Entry, bool, error) {
	encoded, err := encodeParams(params)
	if err != nil {
		return cachelog.Entry{}, false, err
	}
	query, args, err := qb.Select("*").From("cache_log").
		Where(qb.Eq("cache_type", string(typ)), qb.Expr("params = ?::jsonb", encoded)).
		Limit(1).
		ToSQL()
	if err != nil {
		return cachelog.Entry{}, false, fmt.Errorf("build select cache log query: %w", err)
	}

	var row cacheLogTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return cachelog.Entry{}, false, nil
		}
		return cachelog.Entry{}, false, fmt.Errorf("select cache log: %w", err)
	}
	return cachelog.Entry{Type: typ, Params: params, CachedAt: row.CachedAt.UTC()}, true, nil
}

func encodeParams(params map[string]any) ([]byte, error) {
	if params == nil {
		params = map[string]any{}
	}
	out, err := sonic.ConfigStd.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode cache log params: %w", err)
	}
	return out, nil
}
