/* test_helpers.go
 * Contains test helper functions and sample records for store package tests
 */

package store

import (
	"time"

	"livescore/api/shared"
)

// NewMemoryStore creates a Store over a fresh in-memory backend
func NewMemoryStore() *Store {
	return NewStore(NewMemoryKV())
}

// NewStoreWithClock creates a Store whose lastUpdated stamps come from now
func NewStoreWithClock(kv KV, now func() time.Time) *Store {
	return &Store{KV: kv, now: now}
}

// CreateSampleMatch creates a Match with fixed timestamps so it survives a JSON round trip unchanged
func CreateSampleMatch(id string, sport shared.Sport) shared.Match {
	return shared.Match{
		ID:          id,
		Sport:       sport,
		Team1:       shared.Contestant{Name: "Falcons", Players: []shared.Player{{ID: "f1", Name: "Ana", OnCourt: true}}},
		Team2:       shared.Contestant{Name: "Hawks", Players: []shared.Player{{ID: "h1", Name: "Ben", OnCourt: true}}},
		Venue:       "Centre Court",
		ScheduledAt: time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC),
		Format:      shared.Format{BestOf: 3},
		Status:      shared.MatchLive,
		CreatedAt:   time.Date(2025, 3, 14, 17, 0, 0, 0, time.UTC),
	}
}

// CreateSampleState creates a mid-set ScoreState for sport
func CreateSampleState(sport shared.Sport) shared.ScoreState {
	return shared.ScoreState{
		Sport:         sport,
		Config:        shared.RuleConfig{Periods: 3, PeriodsToWin: 2, PointsPerPeriod: 21},
		CurrentPeriod: 2,
		PeriodsWon:    []shared.Side{shared.Team1, shared.SideNone, shared.SideNone},
		Points:        shared.Score{Team1: 7, Team2: 9},
		PeriodScores:  []shared.Score{{Team1: 21, Team2: 15}},
		Server:        shared.Team2,
		Status:        shared.StatusInProgress,
	}
}

// CreateSampleResult creates a MatchResult for id
func CreateSampleResult(id string, sport shared.Sport) shared.MatchResult {
	return shared.MatchResult{
		MatchID:    id,
		Sport:      sport,
		Winner:     shared.Team1,
		WinnerName: "Falcons",
		PeriodsWon: shared.Score{Team1: 2},
		Periods: []shared.PeriodResult{
			{Period: 1, Label: "Set 1", Score: shared.Score{Team1: 21, Team2: 15}, Winner: shared.Team1, Detail: "21-15"},
			{Period: 2, Label: "Set 2", Score: shared.Score{Team1: 21, Team2: 19}, Winner: shared.Team1, Detail: "21-19"},
		},
		FinalScore:  shared.Score{Team1: 2},
		Summary:     "Falcons won 2-0",
		CompletedAt: time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC),
	}
}
