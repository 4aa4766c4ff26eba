package usecase

import "context"

// edgeSet describes one relation to reconcile: stored entities E already
// linked to the owner, and snapshot items S reported for the same relation.
type edgeSet[E, S any] struct {
	stored   []E
	snapshot []S

	storedID   func(E) int64
	snapshotID func(S) int64

	// sync updates an entity present on both sides. It must not write when
	// nothing changed.
	sync func(ctx context.Context, current E, incoming S) (E, error)
	// retain reports whether a stored-only edge must survive, e.g. preventUnlink.
	retain func(current E) bool
	unlink func(ctx context.Context, current E) error
	// lookup resolves snapshot-only ids against the global store.
	lookup func(ctx context.Context, ids []int64) ([]E, error)
	// link adds the missing edge to an entity known through another relation.
	link func(ctx context.Context, existing E, incoming S) (E, error)
	// create stores a brand new entity together with its edge.
	create func(ctx context.Context, incoming S) (E, error)
}

type edgeSetResult[E any] struct {
	// Related is the resulting edge set: snapshot order, then retained entities.
	Related  []E
	Kept     int
	Linked   int
	Created  int
	Unlinked int
	Retained int
}

func reconcileEdgeSet[E, S any](ctx context.Context, set edgeSet[E, S]) (edgeSetResult[E], error) {
	var result edgeSetResult[E]

	storedByID := make(map[int64]E, len(set.stored))
	for _, item := range set.stored {
		storedByID[set.storedID(item)] = item
	}

	incoming := make([]S, 0, len(set.snapshot))
	seen := make(map[int64]struct{}, len(set.snapshot))
	for _, item := range set.snapshot {
		id := set.snapshotID(item)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		incoming = append(incoming, item)
	}

	// Snapshot-only ids are looked up globally before anything is created.
	var missing []int64
	for _, item := range incoming {
		id := set.snapshotID(item)
		if _, ok := storedByID[id]; !ok {
			missing = append(missing, id)
		}
	}
	elsewhere := make(map[int64]E, len(missing))
	if len(missing) > 0 {
		found, err := set.lookup(ctx, missing)
		if err != nil {
			return edgeSetResult[E]{}, err
		}
		for _, item := range found {
			elsewhere[set.storedID(item)] = item
		}
	}

	for _, item := range incoming {
		id := set.snapshotID(item)
		if current, ok := storedByID[id]; ok {
			updated, err := set.sync(ctx, current, item)
			if err != nil {
				return edgeSetResult[E]{}, err
			}
			result.Related = append(result.Related, updated)
			result.Kept++
			continue
		}
		if existing, ok := elsewhere[id]; ok {
			linked, err := set.link(ctx, existing, item)
			if err != nil {
				return edgeSetResult[E]{}, err
			}
			result.Related = append(result.Related, linked)
			result.Linked++
			continue
		}
		created, err := set.create(ctx, item)
		if err != nil {
			return edgeSetResult[E]{}, err
		}
		result.Related = append(result.Related, created)
		result.Created++
	}

	for _, current := range set.stored {
		if _, ok := seen[set.storedID(current)]; ok {
			continue
		}
		if set.retain != nil && set.retain(current) {
			result.Related = append(result.Related, current)
			result.Retained++
			continue
		}
		if err := set.unlink(ctx, current); err != nil {
			return edgeSetResult[E]{}, err
		}
		result.Unlinked++
	}

	return result, nil
}
