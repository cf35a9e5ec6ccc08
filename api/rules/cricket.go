package rules

import "livescore/api/shared"

const (
	cricketInnings      = 2
	cricketOvers        = 20
	cricketWickets      = 10
	cricketBallsPerOver = 6
)

// Cricket implements a two-innings limited overs chase. Server is the batting side.
type Cricket struct{}

func NewCricket() *Cricket {
	return &Cricket{}
}

func (m *Cricket) Sport() shared.Sport {
	return shared.SportCricket
}

func (m *Cricket) InitialState(match shared.Match) shared.ScoreState {
	state := newState(match, shared.RuleConfig{
		Periods:      cricketInnings,
		PeriodsToWin: cricketInnings,
		Overs:        orDefault(match.Format.Overs, cricketOvers),
		Wickets:      orDefault(match.Format.Wickets, cricketWickets),
	})
	state.Sport = shared.SportCricket
	state.Cricket = &shared.CricketState{
		Innings: []shared.InningsState{{Batting: state.Server}},
	}
	return state
}

func (m *Cricket) Transition(state shared.ScoreState, action shared.Action) (shared.ScoreState, bool) {
	if state.Cricket.Current() == nil {
		return state, false
	}
	if action.Type == shared.ActionStartPeriod {
		next, ok := startNextPeriod(state)
		if !ok {
			return state, false
		}
		next.Server = next.Cricket.Innings[0].Batting.Other()
		next.Cricket.Innings = append(next.Cricket.Innings, shared.InningsState{Batting: next.Server})
		m.refreshFlags(&next)
		return next, true
	}
	if state.Status != shared.StatusInProgress {
		return state, false
	}

	next := state.Clone()
	inn := next.Cricket.Current()
	switch action.Type {
	case shared.ActionPoint:
		if action.Value < 0 {
			return state, false
		}
		inn.Runs += action.Value
		inn.Balls++
		next.Points.Add(inn.Batting, action.Value)

	case shared.ActionExtra:
		runs := orDefault(action.Value, 1)
		inn.Runs += runs
		inn.Extras += runs
		next.Points.Add(inn.Batting, runs)

	case shared.ActionWicket:
		inn.Wickets++
		inn.Balls++

	case shared.ActionEndPeriod:

	default:
		return state, false
	}

	if action.Type == shared.ActionEndPeriod || m.inningsOver(next) {
		m.closeInnings(&next)
	}
	m.refreshFlags(&next)
	return next, true
}

func (m *Cricket) IsPeriodOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusPeriodOver || state.Status == shared.StatusCompleted
}

func (m *Cricket) IsMatchOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusCompleted
}

func (m *Cricket) chasing(state shared.ScoreState) bool {
	return len(state.Cricket.Innings) == cricketInnings
}

func (m *Cricket) inningsOver(state shared.ScoreState) bool {
	inn := state.Cricket.Current()
	switch {
	case m.chasing(state) && inn.Runs >= state.Cricket.Target:
		return true
	case inn.Wickets >= state.Config.Wickets:
		return true
	case inn.Balls >= state.Config.Overs*cricketBallsPerOver:
		return true
	}
	return false
}

// closeInnings sets the target after the first innings and decides the match after the second
func (m *Cricket) closeInnings(s *shared.ScoreState) {
	inn := *s.Cricket.Current()
	var line shared.Score
	line.Add(inn.Batting, inn.Runs)

	if !m.chasing(*s) {
		s.Cricket.Target = inn.Runs + 1
		closePeriod(s, inn.Batting, line, false)
		return
	}

	closePeriod(s, inn.Batting, line, false)
	s.Status = shared.StatusCompleted
	switch {
	case inn.Runs >= s.Cricket.Target:
		s.Winner = inn.Batting
	case inn.Runs == s.Cricket.Target-1:
		s.Winner = shared.SideNone
	default:
		s.Winner = inn.Batting.Other()
	}
}

func (m *Cricket) refreshFlags(s *shared.ScoreState) {
	s.Flags = shared.Flags{}
	if s.Status != shared.StatusInProgress || !m.chasing(*s) {
		return
	}
	inn := s.Cricket.Current()
	if s.Cricket.Target-inn.Runs == 1 {
		s.Flags.MatchPoint = inn.Batting
	}
}
