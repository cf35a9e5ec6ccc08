/* test_mocks.go
 * Contains mock structures for testing the API package
 */

package api

import (
	"context"
	"sync"

	"livescore/api/publisher"
	"livescore/api/shared"
	"livescore/api/store"
)

// MockStore implements store.Interface for testing
type MockStore struct {
	// Storage for mock data
	Matches   map[string]shared.Match
	States    map[string]shared.ScoreState
	Results   map[string]shared.MatchResult
	SaveCalls int

	// Error injection for testing error paths
	LoadError        error
	SaveError        error
	SaveResultError  error
	IsCompletedError error
	DeleteError      error

	Closed bool
}

// NewMockStore creates a new empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Matches: make(map[string]shared.Match),
		States:  make(map[string]shared.ScoreState),
		Results: make(map[string]shared.MatchResult),
	}
}

func (m *MockStore) Load(_ context.Context, matchID string) (store.Snapshot, error) {
	if m.LoadError != nil {
		return store.Snapshot{}, m.LoadError
	}
	match, ok := m.Matches[matchID]
	if !ok {
		return store.Snapshot{}, &store.MatchNotFoundError{MatchID: matchID}
	}
	snap := store.Snapshot{Match: match}
	if state, ok := m.States[matchID]; ok {
		s := state.Clone()
		snap.State = &s
	}
	if result, ok := m.Results[matchID]; ok {
		snap.Result = &result
	}
	return snap, nil
}

func (m *MockStore) Save(_ context.Context, matchID string, partial store.Partial) error {
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	if partial.Result != nil && m.SaveResultError != nil {
		return m.SaveResultError
	}
	if partial.Match != nil {
		m.Matches[matchID] = *partial.Match
	}
	if partial.State != nil {
		m.States[matchID] = partial.State.Clone()
	}
	if partial.Result != nil {
		if _, exists := m.Results[matchID]; !exists {
			m.Results[matchID] = *partial.Result
		}
	}
	return nil
}

func (m *MockStore) IsCompleted(_ context.Context, matchID string) (bool, error) {
	if m.IsCompletedError != nil {
		return false, m.IsCompletedError
	}
	_, ok := m.Results[matchID]
	return ok, nil
}

func (m *MockStore) Delete(_ context.Context, matchID string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Matches, matchID)
	delete(m.States, matchID)
	delete(m.Results, matchID)
	return nil
}

func (m *MockStore) Close() error {
	m.Closed = true
	return nil
}

// MockPublisher records every update it is given
type MockPublisher struct {
	mu           sync.Mutex
	Updates      []publisher.Update
	PublishError error
}

func (p *MockPublisher) Publish(_ context.Context, update publisher.Update) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.PublishError != nil {
		return p.PublishError
	}
	p.Updates = append(p.Updates, update)
	return nil
}

// Kinds lists the kind of every published update in order
func (p *MockPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, len(p.Updates))
	for i, u := range p.Updates {
		kinds[i] = u.Kind
	}
	return kinds
}

// Ensure the mocks implement their interfaces
var (
	_ store.Interface = (*MockStore)(nil)
	_ Publisher       = (*MockPublisher)(nil)
)
