package usecase

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
)

// cacheRecorder writes "last cached at" entries. It runs after the pass has
// committed and a failure only logs: the entry is bookkeeping, not state.
type cacheRecorder struct {
	repo   cachelog.Repository
	clock  clockwork.Clock
	logger *logging.Logger
}

func (r cacheRecorder) record(ctx context.Context, typ cachelog.Type, params map[string]any) {
	if r.repo == nil {
		return
	}
	if params == nil {
		params = map[string]any{}
	}
	entry := cachelog.Entry{Type: typ, Params: params, CachedAt: r.clock.Now()}
	if err := r.repo.Save(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "save cache log failed", "cache_type", string(typ), "params", params, "error", err)
	}
}
