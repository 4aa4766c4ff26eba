package match

import (
	"fmt"
	"strings"
)

// Lineup is the announced roster of one team for one fixture.
type Lineup struct {
	ID        int64
	FixtureID int64
	TeamID    int64
	Formation string
}

// Player is a fixture-scoped player reference. It is bound either to a
// registered player (PlayerID) or to an unregistered name. A Player without a
// LineupID is disposable and exists only to satisfy event references.
type Player struct {
	ID               int64
	FixtureID        int64
	TeamID           int64
	LineupID         *int64
	PlayerID         *int64
	UnregisteredName string
	Position         string
	Grid             string
	Number           *int
	Substitute       bool
}

func (p Player) Disposable() bool {
	return p.LineupID == nil
}

func (p Player) Validate() error {
	if p.FixtureID <= 0 || p.TeamID <= 0 {
		return fmt.Errorf("match player requires fixture and team")
	}
	if p.PlayerID == nil && strings.TrimSpace(p.UnregisteredName) == "" {
		return fmt.Errorf("match player requires a player id or an unregistered name")
	}
	return nil
}

type EventType string

const (
	EventGoal    EventType = "GOAL"
	EventCard    EventType = "CARD"
	EventSubst   EventType = "SUBST"
	EventVar     EventType = "VAR"
	EventUnknown EventType = "UNKNOWN"
)

// ParseEventType maps provider values such as "Goal" or "subst".
func ParseEventType(raw string) (EventType, error) {
	switch t := EventType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case EventGoal, EventCard, EventSubst, EventVar, EventUnknown:
		return t, nil
	default:
		return EventUnknown, fmt.Errorf("unknown event type %q", raw)
	}
}

// Event is one entry of a fixture timeline. Sequence is the 0-based position in
// the provider's event array. For substitutions PlayerRefID is the player coming
// on and AssistRefID the player going off.
type Event struct {
	ID          int64
	FixtureID   int64
	Sequence    int
	Elapsed     int
	Extra       *int
	TeamID      *int64
	Type        EventType
	Detail      string
	Comments    *string
	PlayerRefID *int64
	AssistRefID *int64
}

// ExtraMinutes treats a missing extra time as zero.
func (e Event) ExtraMinutes() int {
	if e.Extra == nil {
		return 0
	}
	return *e.Extra
}

// PlaceholderMarker fills detail and comments of events that could not be resolved.
const PlaceholderMarker = "unresolved event"

// Placeholder returns the degraded event stored in place of one that could not
// be resolved.
func Placeholder(fixtureID int64, sequence int) Event {
	marker := PlaceholderMarker
	return Event{
		FixtureID: fixtureID,
		Sequence:  sequence,
		Type:      EventUnknown,
		Detail:    PlaceholderMarker,
		Comments:  &marker,
	}
}
