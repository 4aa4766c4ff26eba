package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrPreconditionMissing means a league, team or fixture the operation
	// depends on has not been cached yet, or the league has no current season.
	ErrPreconditionMissing = errors.New("precondition not cached")
	// ErrReferenceNotFound means a fixture snapshot points at a league or team
	// missing from the store.
	ErrReferenceNotFound     = errors.New("referenced entity not found")
	ErrMalformedSnapshot     = errors.New("malformed snapshot")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ErrIntegrityViolation means stored event sequences no longer line up with
// array positions. ResolveIntegrityError rebuilds the timeline.
var ErrIntegrityViolation = errors.New("event log integrity violation")

// errEventUnresolvable marks per-event failures that degrade to a placeholder
// instead of aborting the poll.
var errEventUnresolvable = errors.New("event unresolvable")
