package rules

import (
	"testing"

	"livescore/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCricket builds a one over, two wicket match so innings finish quickly
func newCricket() (*Cricket, shared.ScoreState) {
	match := testMatch(shared.SportCricket)
	match.Format.Overs = 1
	match.Format.Wickets = 2
	m := NewCricket()
	return m, m.InitialState(match)
}

func runs(n int) shared.Action {
	return shared.Action{Type: shared.ActionPoint, Value: n}
}

var wicket = shared.Action{Type: shared.ActionWicket}

// firstInnings scores 13 off the over for team1: 4 6 0 1 W 2
func firstInnings(m RuleModule, s shared.ScoreState) shared.ScoreState {
	return play(m, s, runs(4), runs(6), runs(0), runs(1), wicket, runs(2))
}

func TestCricket_Defaults(t *testing.T) {
	s := NewCricket().InitialState(testMatch(shared.SportCricket))

	assert.Equal(t, 20, s.Config.Overs)
	assert.Equal(t, 10, s.Config.Wickets)
	require.NotNil(t, s.Cricket)
	assert.Equal(t, []shared.InningsState{{Batting: shared.Team1}}, s.Cricket.Innings)
}

func TestCricket_FirstInningsSetsTarget(t *testing.T) {
	m, s := newCricket()

	s = play(m, s, runs(4), runs(6), runs(0), runs(1), wicket)
	inn := s.Cricket.Current()
	assert.Equal(t, 11, inn.Runs)
	assert.Equal(t, 5, inn.Balls)
	assert.Equal(t, 1, inn.Wickets)
	assert.Equal(t, shared.StatusInProgress, s.Status)

	s = play(m, s, runs(2))

	assert.Equal(t, shared.StatusPeriodOver, s.Status)
	assert.Equal(t, 14, s.Cricket.Target)
	assert.Equal(t, 2, s.CurrentPeriod)
	assert.Equal(t, shared.Team1, s.PeriodsWon[0])
	assert.Equal(t, shared.Score{Team1: 13}, s.Points)
	overs, balls := s.Cricket.Current().Overs()
	assert.Equal(t, 1, overs)
	assert.Equal(t, 0, balls)
}

func TestCricket_ChaseCompletesOnTarget(t *testing.T) {
	m, s := newCricket()

	s = firstInnings(m, s)
	s = play(m, s, startPeriod)
	require.Equal(t, shared.StatusInProgress, s.Status)
	assert.Equal(t, shared.Team2, s.Server)
	require.Len(t, s.Cricket.Innings, 2)

	s = play(m, s, runs(6), runs(6), shared.Action{Type: shared.ActionExtra})
	assert.Equal(t, 13, s.Cricket.Current().Runs)
	assert.Equal(t, 1, s.Cricket.Current().Extras)
	assert.Equal(t, 2, s.Cricket.Current().Balls)
	assert.Equal(t, shared.Team2, s.Flags.MatchPoint)

	s = play(m, s, runs(1))

	assert.Equal(t, shared.StatusCompleted, s.Status)
	assert.Equal(t, shared.Team2, s.Winner)
	assert.Equal(t, []shared.Side{shared.Team1, shared.Team2}, s.PeriodsWon)
	assert.Equal(t, shared.Score{Team1: 13, Team2: 14}, s.Points)
	assert.Equal(t, shared.Flags{}, s.Flags)

	_, changed := m.Transition(s, runs(4))
	assert.False(t, changed)
}

func TestCricket_DefendingSideWinsOnAllOut(t *testing.T) {
	m, s := newCricket()

	s = firstInnings(m, s)
	s = play(m, s, startPeriod, runs(3), wicket, wicket)

	assert.Equal(t, shared.StatusCompleted, s.Status)
	assert.Equal(t, shared.Team1, s.Winner)
	assert.Equal(t, []shared.Score{{Team1: 13}, {Team2: 3}}, s.PeriodScores)
}

func TestCricket_TiedChase(t *testing.T) {
	m, s := newCricket()

	s = firstInnings(m, s)
	s = play(m, s, startPeriod, runs(6), runs(6), runs(1), runs(0), runs(0), runs(0))

	assert.Equal(t, shared.StatusCompleted, s.Status)
	assert.Equal(t, shared.SideNone, s.Winner)
}

func TestCricket_DeclarationEndsInnings(t *testing.T) {
	m, s := newCricket()

	s = play(m, s, runs(4), shared.Action{Type: shared.ActionEndPeriod})

	assert.Equal(t, shared.StatusPeriodOver, s.Status)
	assert.Equal(t, 5, s.Cricket.Target)
}

func TestCricket_InvalidInputs(t *testing.T) {
	m, s := newCricket()

	for _, a := range []shared.Action{
		runs(-1),
		startPeriod,
		{Type: shared.ActionToggleService},
		{Type: shared.ActionTimeout, Contestant: shared.Team1},
	} {
		next, changed := m.Transition(s, a)
		assert.False(t, changed, string(a.Type))
		assert.Equal(t, s, next)
	}
}

func TestCricket_SecondInningsBattingOrder(t *testing.T) {
	match := testMatch(shared.SportCricket)
	match.Format.Overs = 1
	match.Format.InitialServer = shared.Team2
	m := NewCricket()
	s := m.InitialState(match)

	s = play(m, s, runs(1), shared.Action{Type: shared.ActionEndPeriod}, startPeriod)

	assert.Equal(t, shared.Team1, s.Server)
	assert.Equal(t, shared.Team1, s.Cricket.Current().Batting)
	assert.Equal(t, shared.Team2, s.PeriodsWon[0])
}
