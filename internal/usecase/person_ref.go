package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/football-sync/internal/domain/match"
)

type PersonKind uint8

const (
	PersonNone PersonKind = iota
	PersonRegistered
	PersonUnregistered
)

// PersonRef identifies the player or assist of an event: a registered player
// id, an unregistered name, or nobody.
type PersonRef struct {
	kind PersonKind
	id   int64
	name string
}

func NoPerson() PersonRef { return PersonRef{} }

// Registered keeps the provider name so resolution can fall back to it.
func Registered(id int64, name string) PersonRef {
	return PersonRef{kind: PersonRegistered, id: id, name: strings.TrimSpace(name)}
}

func Unregistered(name string) PersonRef {
	return PersonRef{kind: PersonUnregistered, name: strings.TrimSpace(name)}
}

func (p PersonRef) Kind() PersonKind { return p.kind }
func (p PersonRef) ID() int64        { return p.id }
func (p PersonRef) Name() string     { return p.name }

// Equal compares registered refs by id and unregistered refs by name.
func (p PersonRef) Equal(other PersonRef) bool {
	if p.kind != other.kind {
		return false
	}
	switch p.kind {
	case PersonRegistered:
		return p.id == other.id
	case PersonUnregistered:
		return p.name == other.name
	default:
		return true
	}
}

func (p PersonRef) String() string {
	switch p.kind {
	case PersonRegistered:
		return fmt.Sprintf("registered(%d)", p.id)
	case PersonUnregistered:
		return fmt.Sprintf("unregistered(%q)", p.name)
	default:
		return "none"
	}
}

// PersonSnapshot is the {id, name} pair the provider sends for event persons
// and lineup entries.
type PersonSnapshot struct {
	ID   Optional[int64]
	Name Optional[string]
}

func (p PersonSnapshot) Ref() PersonRef {
	name := strings.TrimSpace(p.Name.OrElse(""))
	if id, ok := p.ID.Get(); ok && id > 0 {
		return Registered(id, name)
	}
	if name != "" {
		return Unregistered(name)
	}
	return NoPerson()
}

// personRefOf derives the identity stored on a match player.
func personRefOf(mp match.Player) PersonRef {
	if mp.PlayerID != nil {
		return Registered(*mp.PlayerID, mp.UnregisteredName)
	}
	if strings.TrimSpace(mp.UnregisteredName) != "" {
		return Unregistered(mp.UnregisteredName)
	}
	return NoPerson()
}
