package postgres

import "time"

type cacheLogTableModel struct {
	CacheType string    `db:"cache_type"`
	Params    []byte    `db:"params"`
	CachedAt  time.Time `db:"cached_at"`
}
