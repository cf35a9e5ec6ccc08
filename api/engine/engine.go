/* engine.go
 * Contains the sport agnostic scoring engine. It owns the undo history for one match session and delegates every
 * scoring decision to the rule module registered for the match's sport.
 */

package engine

import (
	"errors"
	"fmt"

	"livescore/api/results"
	"livescore/api/rules"
	"livescore/api/shared"
)

// ErrMatchNotCompleted is returned by Finalize while the match is still being played
var ErrMatchNotCompleted = errors.New("match is not completed")

// Engine scores a single match. It is not safe for concurrent use.
type Engine struct {
	registry *rules.Registry
	module   rules.RuleModule
	match    shared.Match
	history  History
}

// New creates an engine that resolves rule modules from registry
func New(registry *rules.Registry) *Engine {
	return &Engine{registry: registry}
}

// Initialize selects the rule module for match and returns its starting state. When prior is non-nil the engine
// resumes from it unchanged. History always starts empty.
func (e *Engine) Initialize(match shared.Match, prior *shared.ScoreState) (shared.ScoreState, error) {
	module, err := e.registry.Module(match.Sport)
	if err != nil {
		return shared.ScoreState{}, fmt.Errorf("failed to initialize match %s: %w", match.ID, err)
	}

	e.module = module
	e.match = match
	e.history.Clear()

	if prior != nil {
		return prior.Clone(), nil
	}
	return module.InitialState(match), nil
}

// ApplyAction runs action through the rule module. Out of window or unrecognised actions return state unchanged and
// leave the history untouched.
func (e *Engine) ApplyAction(state shared.ScoreState, action shared.Action) shared.ScoreState {
	if e.module == nil {
		return state
	}
	next, changed := e.module.Transition(state, action)
	if !changed {
		return state
	}
	e.history.Push(state)
	return next
}

// Undo reverts the most recent change. With an empty history state is returned unchanged.
func (e *Engine) Undo(state shared.ScoreState) shared.ScoreState {
	prev, ok := e.history.Pop()
	if !ok {
		return state
	}
	return prev
}

// Finalize compiles the result of a completed match
func (e *Engine) Finalize(state shared.ScoreState) (shared.MatchResult, error) {
	if state.Status != shared.StatusCompleted {
		return shared.MatchResult{}, ErrMatchNotCompleted
	}
	return results.Compile(e.match, state), nil
}

func (e *Engine) CanUndo() bool {
	return e.history.Len() > 0
}

func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// Match returns the match the engine was initialized with
func (e *Engine) Match() shared.Match {
	return e.match
}
