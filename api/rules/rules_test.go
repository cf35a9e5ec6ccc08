/* rules_test.go
 * Contains shared helpers for the rule module tests and the registry tests
 */

package rules

import (
	"errors"
	"testing"

	"livescore/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play applies every action in order, ignoring whether each one changed the state
func play(m RuleModule, state shared.ScoreState, actions ...shared.Action) shared.ScoreState {
	for _, a := range actions {
		state, _ = m.Transition(state, a)
	}
	return state
}

func times(a shared.Action, n int) []shared.Action {
	out := make([]shared.Action, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func testMatch(sport shared.Sport) shared.Match {
	return shared.Match{
		ID:    "m1",
		Sport: sport,
		Team1: shared.Contestant{Name: "Falcons"},
		Team2: shared.Contestant{Name: "Hawks"},
	}
}

var startPeriod = shared.Action{Type: shared.ActionStartPeriod}

// region Registry tests

func TestRegistry_BuiltInSports(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []shared.Sport{
		shared.SportBadminton,
		shared.SportCricket,
		shared.SportKabaddi,
		shared.SportVolleyball,
	}, r.Sports())

	for _, sport := range r.Sports() {
		m, err := r.Module(sport)
		require.NoError(t, err)
		assert.Equal(t, sport, m.Sport())
	}
}

func TestRegistry_UnsupportedSport(t *testing.T) {
	r := NewRegistry()

	m, err := r.Module("curling")

	assert.Nil(t, m)
	var unsupported *UnsupportedSportError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, shared.Sport("curling"), unsupported.Sport)
	assert.Contains(t, err.Error(), "curling")
}

// endregion

// region Shared behaviour tests

func TestInitialState_AllSports(t *testing.T) {
	r := NewRegistry()
	for _, sport := range r.Sports() {
		t.Run(string(sport), func(t *testing.T) {
			m, err := r.Module(sport)
			require.NoError(t, err)

			s := m.InitialState(testMatch(sport))

			assert.Equal(t, sport, s.Sport)
			assert.Equal(t, 1, s.CurrentPeriod)
			assert.Equal(t, shared.StatusInProgress, s.Status)
			assert.Equal(t, shared.Score{}, s.Points)
			assert.Equal(t, shared.Team1, s.Server)
			assert.Equal(t, shared.SideNone, s.Winner)
			assert.Len(t, s.PeriodsWon, s.Config.Periods)
			assert.False(t, m.IsPeriodOver(s))
			assert.False(t, m.IsMatchOver(s))
		})
	}
}

func TestInitialState_ConfiguredServer(t *testing.T) {
	match := testMatch(shared.SportBadminton)
	match.Format.InitialServer = shared.Team2

	s := NewBadminton().InitialState(match)

	assert.Equal(t, shared.Team2, s.Server)
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	r := NewRegistry()
	actions := []shared.Action{
		shared.Point(shared.Team1),
		{Type: shared.ActionToggleService},
		{Type: shared.ActionTimeout, Contestant: shared.Team2},
		{Type: shared.ActionRotate, Contestant: shared.Team1},
		{Type: shared.ActionAllOut, Contestant: shared.Team2},
		{Type: shared.ActionStartRaid},
		{Type: shared.ActionWicket},
		{Type: shared.ActionExtra, Value: 2},
		{Type: shared.ActionEndPeriod},
	}
	for _, sport := range r.Sports() {
		m, _ := r.Module(sport)
		s := m.InitialState(testMatch(sport))
		for _, a := range actions {
			before := s.Clone()
			next, _ := m.Transition(s, a)
			assert.Equal(t, before, s, "%s %s mutated its input", sport, a.Type)
			s = next
		}
	}
}

func TestTransition_UnknownActionIsNoOp(t *testing.T) {
	r := NewRegistry()
	for _, sport := range r.Sports() {
		m, _ := r.Module(sport)
		s := m.InitialState(testMatch(sport))

		next, changed := m.Transition(s, shared.Action{Type: "dance"})

		assert.False(t, changed, string(sport))
		assert.Equal(t, s, next, string(sport))
	}
}

func TestMarginWinner(t *testing.T) {
	tests := []struct {
		name   string
		points shared.Score
		want   shared.Side
	}{
		{"below target", shared.Score{Team1: 20, Team2: 3}, shared.SideNone},
		{"target with margin", shared.Score{Team1: 21, Team2: 19}, shared.Team1},
		{"target without margin", shared.Score{Team1: 21, Team2: 20}, shared.SideNone},
		{"extended", shared.Score{Team1: 24, Team2: 26}, shared.Team2},
		{"cap", shared.Score{Team1: 29, Team2: 30}, shared.Team2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, marginWinner(tt.points, 21, 2, 30))
		})
	}
}

// endregion
