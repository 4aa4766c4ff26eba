package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinishedStatus(t *testing.T) {
	for _, s := range []string{"FT", "ft", " AET ", "PEN", "PST", "CANC", "ABD", "AWD", "WO", "TBD"} {
		assert.True(t, IsFinishedStatus(s), s)
	}
	for _, s := range []string{"1H", "HT", "2H", "NS", ""} {
		assert.False(t, IsFinishedStatus(s), s)
	}
}

func TestFixtureValidate(t *testing.T) {
	assert.Error(t, Fixture{}.Validate())
	assert.Error(t, Fixture{ID: 1, LeagueID: 39, HomeTeamID: 1}.Validate())
	assert.NoError(t, Fixture{ID: 1, LeagueID: 39, HomeTeamID: 1, AwayTeamID: 2}.Validate())
}
