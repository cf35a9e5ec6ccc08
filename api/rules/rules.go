/* rules.go
 * Contains the RuleModule interface that every sport implements and the period bookkeeping shared between them.
 * Rule modules are pure: they never mutate the state they are given and never perform I/O.
 */

package rules

import (
	"fmt"

	"livescore/api/shared"
)

// RuleModule is the pluggable scoring behaviour of one sport
type RuleModule interface {
	// Sport is the registry key, e.g. "badminton"
	Sport() shared.Sport
	// InitialState builds period 1, zero points, configured first server
	InitialState(match shared.Match) shared.ScoreState
	// Transition applies action and reports whether the state changed. An unchanged result is a no-op.
	Transition(state shared.ScoreState, action shared.Action) (shared.ScoreState, bool)
	IsPeriodOver(state shared.ScoreState) bool
	IsMatchOver(state shared.ScoreState) bool
}

// UnsupportedSportError is returned when no rule module is registered for a sport
type UnsupportedSportError struct {
	Sport shared.Sport
}

func (e *UnsupportedSportError) Error() string {
	return fmt.Sprintf("unsupported sport: %q", string(e.Sport))
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// newState lays out the fields every sport shares
func newState(match shared.Match, cfg shared.RuleConfig) shared.ScoreState {
	server := match.Format.InitialServer
	if !server.Valid() {
		server = shared.Team1
	}
	return shared.ScoreState{
		Sport:         match.Sport,
		Config:        cfg,
		CurrentPeriod: 1,
		PeriodsWon:    make([]shared.Side, cfg.Periods),
		Server:        server,
		Status:        shared.StatusInProgress,
	}
}

// closePeriod records the closing score of the active period, credits it to winner and either completes the
// match or moves to the next period. resetPoints is false for sports that keep running totals.
func closePeriod(s *shared.ScoreState, winner shared.Side, periodScore shared.Score, resetPoints bool) {
	idx := s.CurrentPeriod - 1
	if idx >= 0 && idx < len(s.PeriodsWon) {
		s.PeriodsWon[idx] = winner
	}
	s.PeriodScores = append(s.PeriodScores, periodScore)

	if winner.Valid() && s.PeriodsWonBy(winner) >= s.Config.PeriodsToWin {
		s.Status = shared.StatusCompleted
		s.Winner = winner
		return
	}
	if s.CurrentPeriod >= s.Config.Periods {
		s.Status = shared.StatusCompleted
		s.Winner = shared.SideNone
		return
	}

	s.CurrentPeriod++
	s.Status = shared.StatusPeriodOver
	if resetPoints {
		s.Points = shared.Score{}
	}
}

// startNextPeriod is the shared period_over -> in_progress edge
func startNextPeriod(state shared.ScoreState) (shared.ScoreState, bool) {
	if state.Status != shared.StatusPeriodOver {
		return state, false
	}
	next := state.Clone()
	next.Status = shared.StatusInProgress
	return next, true
}

// marginWinner returns the side that has reached target with at least margin lead, or the side at cap when a cap
// is configured (cap <= 0 disables it)
func marginWinner(p shared.Score, target, margin, cap int) shared.Side {
	for _, side := range shared.Sides {
		own, other := p.Of(side), p.Of(side.Other())
		if cap > 0 && own >= cap {
			return side
		}
		if own >= target && own-other >= margin {
			return side
		}
	}
	return shared.SideNone
}

// setPointFor returns the leading side for whom one more point closes the period
func setPointFor(p shared.Score, target, margin, cap int) shared.Side {
	leader := p.Leader()
	if !leader.Valid() {
		return shared.SideNone
	}
	next := p
	next.Add(leader, 1)
	if marginWinner(next, target, margin, cap) == leader {
		return leader
	}
	return shared.SideNone
}

// refreshRallyFlags recomputes the racket-sport flags in one pass after every transition
func refreshRallyFlags(s *shared.ScoreState, target, margin, cap int) {
	s.Flags = shared.Flags{}
	if s.Status == shared.StatusCompleted {
		return
	}
	s.Flags.Tiebreak = s.CurrentPeriod == s.Config.Periods
	if s.Status != shared.StatusInProgress {
		return
	}
	s.Flags.Deuce = s.Points.Team1 >= target-1 && s.Points.Team2 >= target-1
	if sp := setPointFor(s.Points, target, margin, cap); sp.Valid() {
		s.Flags.SetPoint = sp
		if s.PeriodsWonBy(sp) == s.Config.PeriodsToWin-1 {
			s.Flags.MatchPoint = sp
		}
	}
}
