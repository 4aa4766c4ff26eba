package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	for raw, want := range map[string]EventType{
		"Goal":  EventGoal,
		"Card":  EventCard,
		"subst": EventSubst,
		"Var":   EventVar,
	} {
		got, err := ParseEventType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	got, err := ParseEventType("Penalty shootout")
	require.Error(t, err)
	assert.Equal(t, EventUnknown, got)
}

func TestPlaceholder(t *testing.T) {
	e := Placeholder(10, 3)
	assert.Equal(t, EventUnknown, e.Type)
	assert.Equal(t, 3, e.Sequence)
	assert.Equal(t, 0, e.Elapsed)
	assert.Equal(t, PlaceholderMarker, e.Detail)
	require.NotNil(t, e.Comments)
	assert.Equal(t, PlaceholderMarker, *e.Comments)
	assert.Nil(t, e.TeamID)
}

func TestPlayerValidate(t *testing.T) {
	assert.Error(t, Player{FixtureID: 1, TeamID: 2}.Validate())
	assert.NoError(t, Player{FixtureID: 1, TeamID: 2, UnregisteredName: "J. Smith"}.Validate())
	assert.True(t, Player{}.Disposable())
}
