/* kabaddi.go
 * Contains the kabaddi rule module. Two halves scored into one running total, with tagged point sources, all-outs
 * (requested or synthesized from the rosters) and a caller-driven raid clock.
 */

package rules

import "livescore/api/shared"

const (
	kabaddiHalves      = 2
	kabaddiRaidSeconds = 30
	kabaddiAllOutBonus = 2
)

type Kabaddi struct{}

func NewKabaddi() *Kabaddi {
	return &Kabaddi{}
}

func (m *Kabaddi) Sport() shared.Sport {
	return shared.SportKabaddi
}

func (m *Kabaddi) InitialState(match shared.Match) shared.ScoreState {
	state := newState(match, shared.RuleConfig{
		Periods:      kabaddiHalves,
		PeriodsToWin: kabaddiHalves,
		RaidSeconds:  orDefault(match.Format.RaidSeconds, kabaddiRaidSeconds),
	})
	state.Sport = shared.SportKabaddi
	state.Kabaddi = &shared.KabaddiState{
		Rosters: shared.Rosters{
			Team1: startingRoster(match.Team1),
			Team2: startingRoster(match.Team2),
		},
		FirstRaider: state.Server,
	}
	return state
}

// startingRoster copies the contestant's players. A roster with nobody marked on court starts fully on court.
func startingRoster(c shared.Contestant) []shared.PlayerState {
	if len(c.Players) == 0 {
		return nil
	}
	roster := make([]shared.PlayerState, 0, len(c.Players))
	anyOnCourt := false
	for _, p := range c.Players {
		roster = append(roster, shared.PlayerState{ID: p.ID, Name: p.Name, OnCourt: p.OnCourt})
		anyOnCourt = anyOnCourt || p.OnCourt
	}
	if !anyOnCourt {
		for i := range roster {
			roster[i].OnCourt = true
		}
	}
	return roster
}

func (m *Kabaddi) Transition(state shared.ScoreState, action shared.Action) (shared.ScoreState, bool) {
	if state.Kabaddi == nil {
		return state, false
	}
	if action.Type == shared.ActionStartPeriod {
		next, ok := startNextPeriod(state)
		if ok {
			next.Server = next.Kabaddi.FirstRaider.Other()
		}
		return next, ok
	}
	if state.Status != shared.StatusInProgress {
		return state, false
	}

	switch action.Type {
	case shared.ActionPoint:
		if !action.Contestant.Valid() {
			return state, false
		}
		switch action.Subtype {
		case "", shared.PointRaid, shared.PointTackle, shared.PointBonus:
		default:
			return state, false
		}
		next := state.Clone()
		award(&next, action.Contestant, action.PlayerID, orDefault(action.Value, 1))
		return next, true

	case shared.ActionAllOut:
		if !action.Contestant.Valid() {
			return state, false
		}
		next := state.Clone()
		allOut(&next, action.Contestant)
		return next, true

	case shared.ActionTogglePlayer:
		if !action.Contestant.Valid() {
			return state, false
		}
		idx := playerIndex(state.Kabaddi.Rosters.Of(action.Contestant), action.PlayerID)
		if idx < 0 {
			return state, false
		}
		next := state.Clone()
		roster := next.Kabaddi.Rosters.Of(action.Contestant)
		roster[idx].OnCourt = !roster[idx].OnCourt
		if nobodyOnCourt(roster) {
			allOut(&next, action.Contestant)
		}
		return next, true

	case shared.ActionStartRaid:
		if state.Kabaddi.RaidActive {
			return state, false
		}
		raider := action.Contestant
		if !raider.Valid() {
			raider = state.Server
		}
		if !raider.Valid() {
			return state, false
		}
		next := state.Clone()
		next.Server = raider
		next.Kabaddi.RaidActive = true
		next.Kabaddi.Raider = raider
		next.Kabaddi.RaiderID = action.PlayerID
		next.Kabaddi.RaidTimeLeft = state.Config.RaidSeconds
		return next, true

	case shared.ActionRaidTick:
		if !state.Kabaddi.RaidActive {
			return state, false
		}
		next := state.Clone()
		next.Kabaddi.RaidTimeLeft -= orDefault(action.Value, 1)
		if next.Kabaddi.RaidTimeLeft <= 0 {
			next.Kabaddi.RaidTimeLeft = 0
			finishRaid(&next)
		}
		return next, true

	case shared.ActionEndRaid:
		if !state.Kabaddi.RaidActive {
			return state, false
		}
		next := state.Clone()
		raider := next.Kabaddi.Raider
		switch action.Outcome {
		case shared.RaidSuccess:
			award(&next, raider, next.Kabaddi.RaiderID, orDefault(action.Value, 1))
		case shared.RaidFailure:
			award(&next, raider.Other(), action.PlayerID, 1)
		case shared.RaidEmpty:
		default:
			return state, false
		}
		finishRaid(&next)
		return next, true

	case shared.ActionToggleService:
		if state.Kabaddi.RaidActive {
			return state, false
		}
		next := state.Clone()
		next.Server = next.Server.Other()
		if !next.Server.Valid() {
			next.Server = shared.Team1
		}
		return next, true

	case shared.ActionEndPeriod:
		next := state.Clone()
		clearRaid(next.Kabaddi)
		if next.CurrentPeriod == 1 {
			half := next.Points
			next.Kabaddi.HalftimeScore = &half
			closePeriod(&next, half.Leader(), half, false)
			return next, true
		}
		var baseline shared.Score
		if next.Kabaddi.HalftimeScore != nil {
			baseline = *next.Kabaddi.HalftimeScore
		}
		second := next.Points.Sub(baseline)
		closePeriod(&next, second.Leader(), second, false)
		next.Status = shared.StatusCompleted
		next.Winner = next.Points.Leader()
		return next, true
	}
	return state, false
}

func (m *Kabaddi) IsPeriodOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusPeriodOver || state.Status == shared.StatusCompleted
}

func (m *Kabaddi) IsMatchOver(state shared.ScoreState) bool {
	return state.Status == shared.StatusCompleted
}

// award adds n points to side and credits playerID when it is on that side's roster
func award(s *shared.ScoreState, side shared.Side, playerID string, n int) {
	s.Points.Add(side, n)
	roster := s.Kabaddi.Rosters.Of(side)
	if idx := playerIndex(roster, playerID); idx >= 0 {
		roster[idx].Points += n
	}
}

// allOut gives the bonus to the other side and puts every conceding player back on court
func allOut(s *shared.ScoreState, conceding shared.Side) {
	s.Points.Add(conceding.Other(), kabaddiAllOutBonus)
	s.Kabaddi.AllOutsConceded.Add(conceding, 1)
	roster := s.Kabaddi.Rosters.Of(conceding)
	for i := range roster {
		roster[i].OnCourt = true
	}
}

// finishRaid closes the raid and hands the next raid to the other side
func finishRaid(s *shared.ScoreState) {
	raider := s.Kabaddi.Raider
	clearRaid(s.Kabaddi)
	if raider.Valid() {
		s.Server = raider.Other()
	}
}

func clearRaid(k *shared.KabaddiState) {
	k.RaidActive = false
	k.Raider = shared.SideNone
	k.RaiderID = ""
	k.RaidTimeLeft = 0
}

func playerIndex(roster []shared.PlayerState, id string) int {
	if id == "" {
		return -1
	}
	for i, p := range roster {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func nobodyOnCourt(roster []shared.PlayerState) bool {
	if len(roster) == 0 {
		return false
	}
	for _, p := range roster {
		if p.OnCourt {
			return false
		}
	}
	return true
}
