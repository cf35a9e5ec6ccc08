package shared

// ActionType is the closed set of scoring inputs a host may dispatch
type ActionType string

const (
	ActionPoint         ActionType = "point"
	ActionToggleService ActionType = "toggleService"
	ActionTimeout       ActionType = "timeout"
	ActionRotate        ActionType = "rotate"
	ActionAllOut        ActionType = "allOut"
	ActionTogglePlayer  ActionType = "togglePlayerStatus"
	ActionStartRaid     ActionType = "startRaid"
	ActionEndRaid       ActionType = "endRaid"
	ActionRaidTick      ActionType = "raidTick"
	ActionWicket        ActionType = "wicket"
	ActionExtra         ActionType = "extra"
	ActionEndPeriod     ActionType = "endPeriodManually"
	ActionStartPeriod   ActionType = "startPeriod"
)

// PointSubtype tags where kabaddi points came from
type PointSubtype string

const (
	PointRaid   PointSubtype = "raid"
	PointTackle PointSubtype = "tackle"
	PointBonus  PointSubtype = "bonus"
)

// RaidOutcome is how a kabaddi raid ended
type RaidOutcome string

const (
	RaidSuccess RaidOutcome = "success"
	RaidFailure RaidOutcome = "failure"
	RaidEmpty   RaidOutcome = "empty"
)

// Action is one scoring input. Fields that do not apply to a type are ignored.
type Action struct {
	Type       ActionType   `json:"type"`
	Contestant Side         `json:"contestant,omitempty"`
	PlayerID   string       `json:"playerId,omitempty"`
	Subtype    PointSubtype `json:"subtype,omitempty"`
	Outcome    RaidOutcome  `json:"outcome,omitempty"`
	Value      int          `json:"value,omitempty"`
}

// Point is shorthand for a single rally point to side
func Point(side Side) Action {
	return Action{Type: ActionPoint, Contestant: side}
}
