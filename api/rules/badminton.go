package rules

import "livescore/api/shared"

const (
	badmintonBestOf    = 3
	badmintonPoints    = 21
	badmintonMargin    = 2
	badmintonCapOffset = 9 // 21 -> 30
)

// Badminton implements rally scoring to 21, win by 2, capped at 30
type Badminton struct{}

func NewBadminton() *Badminton {
	return &Badminton{}
}

func (m *Badminton) Sport() shared.Sport {
	return shared.SportBadminton
}

func (m *Badminton) InitialState(match shared.Match) shared.ScoreState {
	bestOf := orDefault(match.Format.BestOf, badmintonBestOf)
	points := orDefault(match.Format.PointsPerPeriod, badmintonPoints)
	state := newState(match, shared.RuleConfig{
		Periods:         bestOf,
		PeriodsToWin:    bestOf/2 + 1,
		PointsPerPeriod: points,
		PointCap:        points + badmintonCapOffset,
		WinMargin:       badmintonMargin,
	})
	state.Sport = shared.SportBadminton
	m.refreshFlags(&state)
	return state
}

func (m *Badminton) Transition(state shared.ScoreState, action shared.Action) (shared.ScoreState, bool) {
	if action.Type == shared.ActionStartPeriod {
		next, ok := startNextPeriod(state)
		if ok {
			m.refreshFlags(&next)
		}
		return next, ok
	}
	if state.Status != shared.StatusInProgress {
		return state, false
	}

	switch action.Type {
	case shared.ActionPoint:
		if !action.Contestant.Valid() {
			return state, false
		}
		next := state.Clone()
		next.Points.Add(action.Contestant, 1)
		next.Server = action.Contestant
		if winner := m.setWinner(next); winner.Valid() {
			closePeriod(&next, winner, next.Points, true)
			next.Server = winner
		}
		m.refreshFlags(&next)
		return next, true

	case shared.ActionToggleService:
		next := state.Clone()
		next.Server = next.Server.Other()
		if !next.Server.Valid() {
			next.Server = shared.Team1
		}
		return next, true
	}
	return state, false
}

func (m *Badminton) IsPeriodOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusPeriodOver || state.Status == shared.StatusCompleted
}

func (m *Badminton) IsMatchOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusCompleted
}

// setWinner applies (score >= target && lead >= 2) || score == cap
func (m *Badminton) setWinner(state shared.ScoreState) shared.Side {
	cfg := state.Config
	return marginWinner(state.Points, cfg.PointsPerPeriod, cfg.WinMargin, cfg.PointCap)
}

func (m *Badminton) refreshFlags(state *shared.ScoreState) {
	cfg := state.Config
	refreshRallyFlags(state, cfg.PointsPerPeriod, cfg.WinMargin, cfg.PointCap)
}
