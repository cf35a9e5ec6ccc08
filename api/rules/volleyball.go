package rules

import (
	"strconv"

	"livescore/api/shared"
)

const (
	volleyballBestOf   = 5
	volleyballPoints   = 25
	volleyballDecider  = 15
	volleyballMargin   = 2
	volleyballTimeouts = 2
	volleyballCourt    = 6
)

// Volleyball implements best-of-5 rally scoring with side-out rotation and per-set timeouts
type Volleyball struct{}

func NewVolleyball() *Volleyball {
	return &Volleyball{}
}

func (m *Volleyball) Sport() shared.Sport {
	return shared.SportVolleyball
}

func (m *Volleyball) InitialState(match shared.Match) shared.ScoreState {
	bestOf := orDefault(match.Format.BestOf, volleyballBestOf)
	state := newState(match, shared.RuleConfig{
		Periods:           bestOf,
		PeriodsToWin:      bestOf/2 + 1,
		PointsPerPeriod:   orDefault(match.Format.PointsPerPeriod, volleyballPoints),
		DeciderPoints:     orDefault(match.Format.DeciderPoints, volleyballDecider),
		WinMargin:         volleyballMargin,
		TimeoutsPerPeriod: orDefault(match.Format.TimeoutsPerPeriod, volleyballTimeouts),
	})
	state.Sport = shared.SportVolleyball
	state.Volleyball = &shared.VolleyballState{
		Rotation: shared.Rotation{
			Team1: startingRotation(match.Team1),
			Team2: startingRotation(match.Team2),
		},
		FirstServer: state.Server,
	}
	m.refreshFlags(&state)
	return state
}

// startingRotation takes the first six rostered players, or numbered positions without a roster
func startingRotation(c shared.Contestant) []string {
	order := make([]string, 0, volleyballCourt)
	for _, p := range c.Players {
		if len(order) == volleyballCourt {
			break
		}
		order = append(order, p.ID)
	}
	if len(order) == volleyballCourt {
		return order
	}
	order = order[:0]
	for i := 1; i <= volleyballCourt; i++ {
		order = append(order, strconv.Itoa(i))
	}
	return order
}

func (m *Volleyball) Transition(state shared.ScoreState, action shared.Action) (shared.ScoreState, bool) {
	if state.Volleyball == nil {
		return state, false
	}
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
		if next.Server != action.Contestant {
			rotate(next.Volleyball, action.Contestant)
			next.Server = action.Contestant
		}
		if winner := m.setWinner(next); winner.Valid() {
			closePeriod(&next, winner, next.Points, true)
			if next.Status == shared.StatusPeriodOver {
				next.Volleyball.TimeoutsUsed = shared.Score{}
				next.Volleyball.FirstServer = next.Volleyball.FirstServer.Other()
				next.Server = next.Volleyball.FirstServer
			}
		}
		m.refreshFlags(&next)
		return next, true

	case shared.ActionTimeout:
		if !action.Contestant.Valid() {
			return state, false
		}
		if state.Volleyball.TimeoutsUsed.Of(action.Contestant) >= state.Config.TimeoutsPerPeriod {
			return state, false
		}
		next := state.Clone()
		next.Volleyball.TimeoutsUsed.Add(action.Contestant, 1)
		return next, true

	case shared.ActionRotate:
		if !action.Contestant.Valid() {
			return state, false
		}
		next := state.Clone()
		rotate(next.Volleyball, action.Contestant)
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

func (m *Volleyball) IsPeriodOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusPeriodOver || state.Status == shared.StatusCompleted
}

func (m *Volleyball) IsMatchOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusCompleted
}

// target is 25 for regular sets and 15 for the deciding set
func (m *Volleyball) target(state shared.ScoreState) int {
	if state.CurrentPeriod == state.Config.Periods {
		return state.Config.DeciderPoints
	}
	return state.Config.PointsPerPeriod
}

func (m *Volleyball) setWinner(state shared.ScoreState) shared.Side {
	return marginWinner(state.Points, m.target(state), state.Config.WinMargin, 0)
}

func (m *Volleyball) refreshFlags(state *shared.ScoreState) {
	refreshRallyFlags(state, m.target(*state), state.Config.WinMargin, 0)
}

// rotate moves the last position of side's order to the front. The state must already be a clone.
func rotate(v *shared.VolleyballState, side shared.Side) {
	order := v.Rotation.Of(side)
	if len(order) < 2 {
		return
	}
	rotated := make([]string, 0, len(order))
	rotated = append(rotated, order[len(order)-1])
	rotated = append(rotated, order[:len(order)-1]...)
	v.Rotation.Set(side, rotated)
}
