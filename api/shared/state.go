/* state.go
 * Contains ScoreState, the authoritative in-progress score of a match, and its sport specific sub objects
 */

package shared

import "slices"

// Status is the scoring status of a ScoreState
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusPeriodOver Status = "period_over"
	StatusCompleted  Status = "completed"
)

// Score holds one integer per contestant
type Score struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// Of returns the value for side
func (s Score) Of(side Side) int {
	switch side {
	case Team1:
		return s.Team1
	case Team2:
		return s.Team2
	}
	return 0
}

// Add increments the value for side by n
func (s *Score) Add(side Side, n int) {
	switch side {
	case Team1:
		s.Team1 += n
	case Team2:
		s.Team2 += n
	}
}

// Leader returns the side with the higher value, or SideNone on a tie
func (s Score) Leader() Side {
	switch {
	case s.Team1 > s.Team2:
		return Team1
	case s.Team2 > s.Team1:
		return Team2
	}
	return SideNone
}

// Sub returns s minus o, side by side
func (s Score) Sub(o Score) Score {
	return Score{Team1: s.Team1 - o.Team1, Team2: s.Team2 - o.Team2}
}

// Flags are the milestones derived from the score after every transition
type Flags struct {
	SetPoint   Side `json:"setPoint"`
	MatchPoint Side `json:"matchPoint"`
	Deuce      bool `json:"deuce"`
	Tiebreak   bool `json:"tiebreak"`
}

// RuleConfig is the resolved rule set for one match. It lives on the state so transitions stay pure.
type RuleConfig struct {
	Periods           int `json:"periods"`
	PeriodsToWin      int `json:"periodsToWin"`
	PointsPerPeriod   int `json:"pointsPerPeriod,omitempty"`
	DeciderPoints     int `json:"deciderPoints,omitempty"`
	PointCap          int `json:"pointCap,omitempty"`
	WinMargin         int `json:"winMargin,omitempty"`
	TimeoutsPerPeriod int `json:"timeoutsPerPeriod,omitempty"`
	RaidSeconds       int `json:"raidSeconds,omitempty"`
	Overs             int `json:"overs,omitempty"`
	Wickets           int `json:"wickets,omitempty"`
}

// ScoreState is the score of a match at one instant. Only the scoring engine mutates it.
type ScoreState struct {
	Sport         Sport      `json:"sport"`
	Config        RuleConfig `json:"config"`
	CurrentPeriod int        `json:"currentPeriod"`
	PeriodsWon    []Side     `json:"periodsWon"`
	Points        Score      `json:"pointsInPeriod"`
	PeriodScores  []Score    `json:"periodScores,omitempty"`
	Server        Side       `json:"serviceOrRaidHolder"`
	Flags         Flags      `json:"flags"`
	Status        Status     `json:"status"`
	Winner        Side       `json:"winner"`

	Volleyball *VolleyballState `json:"volleyball,omitempty"`
	Kabaddi    *KabaddiState    `json:"kabaddi,omitempty"`
	Cricket    *CricketState    `json:"cricket,omitempty"`
}

// PeriodsWonBy counts the closed periods credited to side
func (s ScoreState) PeriodsWonBy(side Side) int {
	n := 0
	for _, w := range s.PeriodsWon {
		if w == side && side.Valid() {
			n++
		}
	}
	return n
}

// Rotation is a serving order per contestant. Index 0 is the server position.
type Rotation struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

// Of returns the order for side
func (r Rotation) Of(side Side) []string {
	if side == Team2 {
		return r.Team2
	}
	return r.Team1
}

// Set replaces the order for side
func (r *Rotation) Set(side Side, order []string) {
	if side == Team2 {
		r.Team2 = order
		return
	}
	r.Team1 = order
}

type VolleyballState struct {
	Rotation     Rotation `json:"rotation"`
	TimeoutsUsed Score    `json:"timeoutsUsed"`
	FirstServer  Side     `json:"firstServer"`
}

// PlayerState is a kabaddi roster entry with court status and attributed points
type PlayerState struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OnCourt bool   `json:"onCourt"`
	Points  int    `json:"points"`
}

// Rosters holds a kabaddi roster per contestant
type Rosters struct {
	Team1 []PlayerState `json:"team1"`
	Team2 []PlayerState `json:"team2"`
}

// Of returns the roster for side. The slice shares storage with r.
func (r Rosters) Of(side Side) []PlayerState {
	if side == Team2 {
		return r.Team2
	}
	return r.Team1
}

type KabaddiState struct {
	Rosters         Rosters `json:"rosters"`
	HalftimeScore   *Score  `json:"halftimeScore,omitempty"`
	FirstRaider     Side    `json:"firstRaider"`
	RaidActive      bool    `json:"raidActive"`
	Raider          Side    `json:"raider"`
	RaiderID        string  `json:"raiderId,omitempty"`
	RaidTimeLeft    int     `json:"raidTimeLeft"`
	AllOutsConceded Score   `json:"allOutsConceded"`
}

// InningsState is one batting innings
type InningsState struct {
	Batting Side `json:"batting"`
	Runs    int  `json:"runs"`
	Wickets int  `json:"wickets"`
	Balls   int  `json:"balls"`
	Extras  int  `json:"extras"`
}

// Overs renders legal balls as cricket overs notation, e.g. 13 balls -> 2.1
func (i InningsState) Overs() (int, int) {
	return i.Balls / 6, i.Balls % 6
}

type CricketState struct {
	Innings []InningsState `json:"innings"`
	Target  int            `json:"target,omitempty"`
}

// Current returns the active innings, or nil before the first ball is set up
func (c *CricketState) Current() *InningsState {
	if c == nil || len(c.Innings) == 0 {
		return nil
	}
	return &c.Innings[len(c.Innings)-1]
}

// Clone returns a deep copy of s. Nil slices and pointers stay nil so snapshots compare equal.
func (s ScoreState) Clone() ScoreState {
	out := s
	out.PeriodsWon = slices.Clone(s.PeriodsWon)
	out.PeriodScores = slices.Clone(s.PeriodScores)

	if s.Volleyball != nil {
		v := *s.Volleyball
		v.Rotation.Team1 = slices.Clone(s.Volleyball.Rotation.Team1)
		v.Rotation.Team2 = slices.Clone(s.Volleyball.Rotation.Team2)
		out.Volleyball = &v
	}
	if s.Kabaddi != nil {
		k := *s.Kabaddi
		k.Rosters.Team1 = slices.Clone(s.Kabaddi.Rosters.Team1)
		k.Rosters.Team2 = slices.Clone(s.Kabaddi.Rosters.Team2)
		if s.Kabaddi.HalftimeScore != nil {
			ht := *s.Kabaddi.HalftimeScore
			k.HalftimeScore = &ht
		}
		out.Kabaddi = &k
	}
	if s.Cricket != nil {
		c := *s.Cricket
		c.Innings = slices.Clone(s.Cricket.Innings)
		out.Cricket = &c
	}
	return out
}
