package cachelog

import "context"

// Repository stores one entry per (type, params); Save overwrites CachedAt.
type Repository interface {
	Save(ctx context.Context, entry Entry) error
	Get(ctx context.Context, typ Type, params map[string]any) (Entry, bool, error)
}
