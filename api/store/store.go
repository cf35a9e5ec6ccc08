/* store.go
 * Contains the match lifecycle store. It persists the Match, the live ScoreState and the final MatchResult under a
 * per-match key namespace on top of any KV backend:
 *   match:{id}            the Match record
 *   match:{id}:summary    one ScoreState sub-object per sport plus lastUpdated
 *   match:{id}:completed  the Match merged with its result, written once
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"livescore/api/shared"
)

// MatchNotFoundError is returned by Load when no Match record exists for the id
type MatchNotFoundError struct {
	MatchID string
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("match not found: %s", e.MatchID)
}

func MatchKey(id string) string {
	return fmt.Sprintf("match:%s", id)
}

func SummaryKey(id string) string {
	return fmt.Sprintf("match:%s:summary", id)
}

func CompletedKey(id string) string {
	return fmt.Sprintf("match:%s:completed", id)
}

// SummaryRecord is the stored live score. Each sport writes only its own slot so they can coexist under one key.
type SummaryRecord struct {
	Badminton   *shared.ScoreState `json:"badminton,omitempty"`
	Volleyball  *shared.ScoreState `json:"volleyball,omitempty"`
	Kabaddi     *shared.ScoreState `json:"kabaddi,omitempty"`
	Cricket     *shared.ScoreState `json:"cricket,omitempty"`
	LastUpdated int64              `json:"lastUpdated"`
}

// For returns the slot for sport, or nil when it is empty or unknown
func (r *SummaryRecord) For(sport shared.Sport) *shared.ScoreState {
	switch sport {
	case shared.SportBadminton:
		return r.Badminton
	case shared.SportVolleyball:
		return r.Volleyball
	case shared.SportKabaddi:
		return r.Kabaddi
	case shared.SportCricket:
		return r.Cricket
	}
	return nil
}

// Put stores state in its sport's slot
func (r *SummaryRecord) Put(state shared.ScoreState) error {
	s := state.Clone()
	switch state.Sport {
	case shared.SportBadminton:
		r.Badminton = &s
	case shared.SportVolleyball:
		r.Volleyball = &s
	case shared.SportKabaddi:
		r.Kabaddi = &s
	case shared.SportCricket:
		r.Cricket = &s
	default:
		return fmt.Errorf("no summary slot for sport %q", state.Sport)
	}
	return nil
}

// CompletedRecord is the archived match: every Match field plus "result"
type CompletedRecord struct {
	shared.Match
	Result shared.MatchResult `json:"result"`
}

// Snapshot is everything Load found for one match
type Snapshot struct {
	Match  shared.Match
	State  *shared.ScoreState
	Result *shared.MatchResult
}

// Partial selects which parts Save writes. Nil parts are left untouched.
type Partial struct {
	Match  *shared.Match
	State  *shared.ScoreState
	Result *shared.MatchResult
}

type Store struct {
	KV  KV
	now func() time.Time
}

// NewStore wraps a backend in the lifecycle key scheme
func NewStore(kv KV) *Store {
	return &Store{KV: kv, now: time.Now}
}

// Load reads the match and, when present, its live state and final result
func (s *Store) Load(ctx context.Context, matchID string) (Snapshot, error) {
	var snap Snapshot
	found, err := s.getJSON(ctx, MatchKey(matchID), &snap.Match)
	if err != nil {
		return Snapshot{}, err
	}
	if !found {
		return Snapshot{}, &MatchNotFoundError{MatchID: matchID}
	}

	var summary SummaryRecord
	found, err = s.getJSON(ctx, SummaryKey(matchID), &summary)
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.State = summary.For(snap.Match.Sport)
	}

	var completed CompletedRecord
	found, err = s.getJSON(ctx, CompletedKey(matchID), &completed)
	if err != nil {
		return Snapshot{}, err
	}
	if found {
		snap.Result = &completed.Result
	}
	return snap, nil
}

// Save writes each non-nil part of partial. The completed record is first-writer-wins; later results are ignored.
func (s *Store) Save(ctx context.Context, matchID string, partial Partial) error {
	if partial.Match != nil {
		if err := s.setJSON(ctx, MatchKey(matchID), partial.Match); err != nil {
			return err
		}
	}

	if partial.State != nil {
		var summary SummaryRecord
		if _, err := s.getJSON(ctx, SummaryKey(matchID), &summary); err != nil {
			return err
		}
		if err := summary.Put(*partial.State); err != nil {
			return err
		}
		summary.LastUpdated = s.now().UTC().UnixMilli()
		if err := s.setJSON(ctx, SummaryKey(matchID), summary); err != nil {
			return err
		}
	}

	if partial.Result != nil {
		record := CompletedRecord{Result: *partial.Result}
		if partial.Match != nil {
			record.Match = *partial.Match
		} else if _, err := s.getJSON(ctx, MatchKey(matchID), &record.Match); err != nil {
			return err
		}
		if record.Match.ID == "" {
			record.Match.ID = matchID
		}
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling completed record: %w", err)
		}
		if _, err := s.KV.SetNX(ctx, CompletedKey(matchID), data); err != nil {
			return fmt.Errorf("failed to store result for %s: %w", matchID, err)
		}
	}
	return nil
}

// IsCompleted reports whether a result has been archived for the match
func (s *Store) IsCompleted(ctx context.Context, matchID string) (bool, error) {
	_, err := s.KV.Get(ctx, CompletedKey(matchID))
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes every record in the match's namespace
func (s *Store) Delete(ctx context.Context, matchID string) error {
	return s.KV.Delete(ctx, MatchKey(matchID), SummaryKey(matchID), CompletedKey(matchID))
}

func (s *Store) Close() error {
	return s.KV.Close()
}

// getJSON decodes key into out. found is false when the key is absent.
func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.KV.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.KV.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
