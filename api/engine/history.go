package engine

import "livescore/api/shared"

// History is a LIFO stack of score snapshots taken before each mutating action
type History struct {
	entries []shared.ScoreState
}

// Push stores a deep copy of state so later mutations cannot leak into the snapshot
func (h *History) Push(state shared.ScoreState) {
	h.entries = append(h.entries, state.Clone())
}

// Pop removes and returns the most recent snapshot. ok is false when the stack is empty.
func (h *History) Pop() (shared.ScoreState, bool) {
	if len(h.entries) == 0 {
		return shared.ScoreState{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = shared.ScoreState{}
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Clear() {
	h.entries = nil
}
