package shared

import "time"

// PeriodResult is the final line of one set, half or innings
type PeriodResult struct {
	Period int    `json:"period"`
	Label  string `json:"label"`
	Score  Score  `json:"score"`
	Winner Side   `json:"winner"`
	Detail string `json:"detail,omitempty"`
}

// MatchResult is the immutable summary of a completed match
type MatchResult struct {
	MatchID     string         `json:"matchId"`
	Sport       Sport          `json:"sport"`
	Winner      Side           `json:"winner"`
	WinnerName  string         `json:"winnerName,omitempty"`
	Draw        bool           `json:"draw"`
	PeriodsWon  Score          `json:"periodsWon"`
	Periods     []PeriodResult `json:"periods"`
	FinalScore  Score          `json:"finalScore"`
	Summary     string         `json:"summary"`
	CompletedAt time.Time      `json:"completedAt"`
}
