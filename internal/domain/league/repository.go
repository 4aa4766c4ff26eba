package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (League, bool, error)
	GetByIDs(ctx context.Context, ids []int64) ([]League, error)
	List(ctx context.Context) ([]League, error)
	Upsert(ctx context.Context, item League) error
}
