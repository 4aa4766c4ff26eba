package team

import "fmt"

// Team is a club keyed by the provider's team id. A team may belong to many leagues.
type Team struct {
	ID          int64
	Name        string
	DisplayName *string
	Logo        string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}
