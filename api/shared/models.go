/* models.go
 * This file contain the match, contestant and format types that are shared between sub packages
 */

package shared

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Sport identifies which rule module scores a match
type Sport string

const (
	SportBadminton  Sport = "badminton"
	SportVolleyball Sport = "volleyball"
	SportKabaddi    Sport = "kabaddi"
	SportCricket    Sport = "cricket"
)

// ParseSport normalises user input such as "Badminton" or " KABADDI " into a Sport
func ParseSport(input string) (Sport, error) {
	s := Sport(strings.ToLower(strings.TrimSpace(input)))
	switch s {
	case SportBadminton, SportVolleyball, SportKabaddi, SportCricket:
		return s, nil
	}
	return "", fmt.Errorf("unknown sport: %q", input)
}

// Side references one of the two contestants of a match. SideNone is encoded as JSON null.
type Side string

const (
	SideNone Side = ""
	Team1    Side = "team1"
	Team2    Side = "team2"
)

// Sides lists both contestants in display order
var Sides = [2]Side{Team1, Team2}

// Valid reports whether s names a contestant
func (s Side) Valid() bool {
	return s == Team1 || s == Team2
}

// Other returns the opposing side. SideNone stays SideNone.
func (s Side) Other() Side {
	switch s {
	case Team1:
		return Team2
	case Team2:
		return Team1
	}
	return SideNone
}

func (s Side) MarshalJSON() ([]byte, error) {
	if s == SideNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

func (s *Side) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SideNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	side := Side(raw)
	if side != SideNone && !side.Valid() {
		return fmt.Errorf("invalid side: %q", raw)
	}
	*s = side
	return nil
}

// MatchStatus tracks the lifecycle of the Match record itself (not the score)
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

// Player is a rostered member of a contestant. OnCourt is only meaningful for kabaddi.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OnCourt bool   `json:"onCourt"`
}

// Contestant is a team or a player pair
type Contestant struct {
	Name    string   `json:"name"`
	Players []Player `json:"players,omitempty"`
}

// Format carries the best-of hint and optional rule overrides. Zero values select the sport defaults.
type Format struct {
	BestOf            int  `json:"bestOf,omitempty"`
	PointsPerPeriod   int  `json:"pointsPerPeriod,omitempty"`
	DeciderPoints     int  `json:"deciderPoints,omitempty"`
	Overs             int  `json:"overs,omitempty"`
	Wickets           int  `json:"wickets,omitempty"`
	TimeoutsPerPeriod int  `json:"timeoutsPerPeriod,omitempty"`
	RaidSeconds       int  `json:"raidSeconds,omitempty"`
	InitialServer     Side `json:"initialServer,omitempty"`
}

// Match identifies a contest between two contestants
type Match struct {
	ID          string      `json:"id"`
	Sport       Sport       `json:"sport"`
	Team1       Contestant  `json:"team1"`
	Team2       Contestant  `json:"team2"`
	Venue       string      `json:"venue,omitempty"`
	ScheduledAt time.Time   `json:"scheduledAt,omitempty"`
	Format      Format      `json:"format"`
	Status      MatchStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt,omitempty"`
}

// Contestant returns the contestant playing as side
func (m Match) Contestant(side Side) Contestant {
	if side == Team2 {
		return m.Team2
	}
	return m.Team1
}

// Name returns the display name for side, or an empty string for SideNone
func (m Match) Name(side Side) string {
	if !side.Valid() {
		return ""
	}
	return m.Contestant(side).Name
}
