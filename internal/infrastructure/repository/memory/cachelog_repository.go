package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
)

type CacheLogRepository struct {
	store *Store
}

func (r *CacheLogRepository) Save(_ context.Context, entry cachelog.Entry) error {
	key := cacheKey(entry.Type, entry.Params)
	// Cache bookkeeping is not an entity write and is left out of Writes.
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.cacheLog[key] = entry
	return nil
}

func (r *CacheLogRepository) Get(_ context.Context, typ cachelog.Type, params map[string]any) (cachelog.Entry, bool, error) {
	var (
		entry cachelog.Entry
		ok    bool
	)
	r.store.read(func(s *state) {
		entry, ok = s.cacheLog[cacheKey(typ, params)]
	})
	return entry, ok, nil
}

func cacheKey(typ cachelog.Type, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(typ))
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, params[k])
	}
	return b.String()
}
