package league

import "fmt"

// League is a competition keyed by the provider's league id.
type League struct {
	ID   int64
	Name string
	// DisplayName is a manual override and is never written by reconciliation.
	DisplayName   *string
	Logo          string
	CurrentSeason *int
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	return nil
}

// Season returns the current season year and whether it is set.
func (l League) Season() (int, bool) {
	if l.CurrentSeason == nil {
		return 0, false
	}
	return *l.CurrentSeason, true
}
