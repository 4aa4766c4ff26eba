package player

import "fmt"

// Player is a registered footballer keyed by the provider's player id.
type Player struct {
	ID          int64
	Name        string
	DisplayName *string
	Photo       string
	Position    string
	Number      *int
	// PreventUnlink keeps team edges alive when the player drops out of a
	// roster snapshot. Set when a human curates the link.
	PreventUnlink bool
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}
