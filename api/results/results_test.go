package results

import (
	"testing"

	"livescore/api/rules"
	"livescore/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(sport shared.Sport) shared.Match {
	return shared.Match{
		ID:    "match-42",
		Sport: sport,
		Team1: shared.Contestant{Name: "Falcons"},
		Team2: shared.Contestant{Name: "Hawks"},
	}
}

func play(t *testing.T, m shared.Match, actions ...shared.Action) shared.ScoreState {
	t.Helper()
	module, err := rules.NewRegistry().Module(m.Sport)
	require.NoError(t, err)
	s := module.InitialState(m)
	for _, a := range actions {
		s, _ = module.Transition(s, a)
	}
	return s
}

func points(side shared.Side, n int) []shared.Action {
	out := make([]shared.Action, n)
	for i := range out {
		out[i] = shared.Point(side)
	}
	return out
}

func concat(groups ...[]shared.Action) []shared.Action {
	var out []shared.Action
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var next = []shared.Action{{Type: shared.ActionStartPeriod}}

func TestCompile_BadmintonThreeSets(t *testing.T) {
	m := match(shared.SportBadminton)
	s := play(t, m, concat(
		points(shared.Team2, 19), points(shared.Team1, 21), next,
		points(shared.Team2, 21), next,
		points(shared.Team1, 21),
	)...)
	require.Equal(t, shared.StatusCompleted, s.Status)

	r := Compile(m, s)

	assert.Equal(t, "match-42", r.MatchID)
	assert.Equal(t, shared.SportBadminton, r.Sport)
	assert.Equal(t, shared.Team1, r.Winner)
	assert.Equal(t, "Falcons", r.WinnerName)
	assert.False(t, r.Draw)
	assert.Equal(t, shared.Score{Team1: 2, Team2: 1}, r.PeriodsWon)
	assert.Equal(t, shared.Score{Team1: 2, Team2: 1}, r.FinalScore)
	assert.Equal(t, "Falcons won 2-1", r.Summary)
	require.Len(t, r.Periods, 3)
	assert.Equal(t, shared.PeriodResult{
		Period: 1,
		Label:  "Set 1",
		Score:  shared.Score{Team1: 21, Team2: 19},
		Winner: shared.Team1,
		Detail: "21-19",
	}, r.Periods[0])
	assert.Equal(t, shared.Team2, r.Periods[1].Winner)
	assert.True(t, r.CompletedAt.IsZero())
}

func TestCompile_VolleyballStraightSets(t *testing.T) {
	m := match(shared.SportVolleyball)
	s := play(t, m, concat(points(shared.Team2, 25), next, points(shared.Team2, 25), next, points(shared.Team2, 25))...)

	r := Compile(m, s)

	assert.Equal(t, "Hawks won 3-0", r.Summary)
	assert.Len(t, r.Periods, 3)
}

func TestCompile_Kabaddi(t *testing.T) {
	tests := []struct {
		name    string
		actions []shared.Action
		summary string
		draw    bool
	}{
		{
			name:    "win by points",
			actions: concat(points(shared.Team1, 6), points(shared.Team2, 3)),
			summary: "Falcons won by 3 points",
		},
		{
			name:    "win by one point",
			actions: concat(points(shared.Team2, 2), points(shared.Team1, 1)),
			summary: "Hawks won by 1 point",
		},
		{
			name:    "draw",
			actions: concat(points(shared.Team2, 30), points(shared.Team1, 30)),
			summary: "Match drawn 30-30",
			draw:    true,
		},
	}
	end := []shared.Action{{Type: shared.ActionEndPeriod}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := match(shared.SportKabaddi)
			s := play(t, m, concat(end, next, tt.actions, end)...)

			r := Compile(m, s)

			assert.Equal(t, tt.summary, r.Summary)
			assert.Equal(t, tt.draw, r.Draw)
			assert.Equal(t, s.Points, r.FinalScore)
			require.Len(t, r.Periods, 2)
			assert.Equal(t, "Half 2", r.Periods[1].Label)
		})
	}
}

func TestCompile_Cricket(t *testing.T) {
	runs := func(n int) shared.Action { return shared.Action{Type: shared.ActionPoint, Value: n} }
	wicket := shared.Action{Type: shared.ActionWicket}
	first := []shared.Action{runs(6), runs(6), runs(0), runs(0), runs(0), runs(0)}

	tests := []struct {
		name    string
		chase   []shared.Action
		winner  shared.Side
		summary string
	}{
		{"chasing side", []shared.Action{runs(6), runs(6), runs(1)}, shared.Team2, "Hawks won by 2 wickets"},
		{"chasing side one wicket", []shared.Action{wicket, runs(6), runs(6), runs(1)}, shared.Team2, "Hawks won by 1 wicket"},
		{"defending side", []shared.Action{runs(1), wicket, wicket}, shared.Team1, "Falcons won by 11 runs"},
		{"tie", []shared.Action{runs(6), runs(6), runs(0), runs(0), runs(0), runs(0)}, shared.SideNone, "Match tied on 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := match(shared.SportCricket)
			m.Format.Overs = 1
			m.Format.Wickets = 2
			s := play(t, m, concat(first, next, tt.chase)...)
			require.Equal(t, shared.StatusCompleted, s.Status)

			r := Compile(m, s)

			assert.Equal(t, tt.winner, r.Winner)
			assert.Equal(t, tt.summary, r.Summary)
			require.Len(t, r.Periods, 2)
			assert.Equal(t, "Innings 1", r.Periods[0].Label)
			assert.Equal(t, "Falcons 12/0 (1.0 ov)", r.Periods[0].Detail)
		})
	}
}

func TestCompile_UnnamedContestant(t *testing.T) {
	m := match(shared.SportBadminton)
	m.Team1.Name = ""
	s := play(t, m, concat(points(shared.Team1, 21), next, points(shared.Team1, 21))...)

	r := Compile(m, s)

	assert.Equal(t, "team1", r.WinnerName)
	assert.Equal(t, "team1 won 2-0", r.Summary)
}
