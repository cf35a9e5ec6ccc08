/* results.go
 * Contains the result compiler that turns a completed ScoreState into the immutable MatchResult handed to hosts
 */

package results

import (
	"fmt"

	"livescore/api/shared"
)

// Compile builds the per-period breakdown and summary line for a finished match. FinalScore is the set count for
// racket sports and the running total for kabaddi and cricket. CompletedAt is left for the caller to stamp.
// Compile is pure.
func Compile(match shared.Match, state shared.ScoreState) shared.MatchResult {
	result := shared.MatchResult{
		MatchID: match.ID,
		Sport:   state.Sport,
		Winner:  state.Winner,
		Draw:    state.Status == shared.StatusCompleted && !state.Winner.Valid(),
		PeriodsWon: shared.Score{
			Team1: state.PeriodsWonBy(shared.Team1),
			Team2: state.PeriodsWonBy(shared.Team2),
		},
		Periods: make([]shared.PeriodResult, 0, len(state.PeriodScores)),
	}
	if result.Sport == "" {
		result.Sport = match.Sport
	}
	if state.Winner.Valid() {
		result.WinnerName = displayName(match, state.Winner)
	}

	for i, score := range state.PeriodScores {
		period := shared.PeriodResult{
			Period: i + 1,
			Label:  fmt.Sprintf("%s %d", PeriodLabel(result.Sport), i+1),
			Score:  score,
		}
		if i < len(state.PeriodsWon) {
			period.Winner = state.PeriodsWon[i]
		}
		period.Detail = periodDetail(match, state, i, score)
		result.Periods = append(result.Periods, period)
	}

	switch result.Sport {
	case shared.SportKabaddi:
		result.FinalScore = state.Points
		result.Summary = kabaddiSummary(match, state)
	case shared.SportCricket:
		result.FinalScore = state.Points
		result.Summary = cricketSummary(match, state)
	default:
		result.FinalScore = result.PeriodsWon
		result.Summary = setSummary(match, state, result.PeriodsWon)
	}
	return result
}

// PeriodLabel names the periods of sport: Set, Half or Innings
func PeriodLabel(sport shared.Sport) string {
	switch sport {
	case shared.SportKabaddi:
		return "Half"
	case shared.SportCricket:
		return "Innings"
	}
	return "Set"
}

func periodDetail(match shared.Match, state shared.ScoreState, i int, score shared.Score) string {
	if state.Sport == shared.SportCricket && state.Cricket != nil && i < len(state.Cricket.Innings) {
		inn := state.Cricket.Innings[i]
		overs, balls := inn.Overs()
		return fmt.Sprintf("%s %d/%d (%d.%d ov)", displayName(match, inn.Batting), inn.Runs, inn.Wickets, overs, balls)
	}
	return fmt.Sprintf("%d-%d", score.Team1, score.Team2)
}

func displayName(match shared.Match, side shared.Side) string {
	if name := match.Name(side); name != "" {
		return name
	}
	return string(side)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func setSummary(match shared.Match, state shared.ScoreState, won shared.Score) string {
	if !state.Winner.Valid() {
		return fmt.Sprintf("Match drawn %d-%d", won.Team1, won.Team2)
	}
	return fmt.Sprintf("%s won %d-%d", displayName(match, state.Winner), won.Of(state.Winner), won.Of(state.Winner.Other()))
}

func kabaddiSummary(match shared.Match, state shared.ScoreState) string {
	p := state.Points
	if !state.Winner.Valid() {
		return fmt.Sprintf("Match drawn %d-%d", p.Team1, p.Team2)
	}
	margin := p.Of(state.Winner) - p.Of(state.Winner.Other())
	return fmt.Sprintf("%s won by %s", displayName(match, state.Winner), plural(margin, "point"))
}

func cricketSummary(match shared.Match, state shared.ScoreState) string {
	chase := state.Cricket.Current()
	if chase == nil || len(state.Cricket.Innings) < 2 {
		return fmt.Sprintf("%s won", displayName(match, state.Winner))
	}
	switch state.Winner {
	case shared.SideNone:
		return fmt.Sprintf("Match tied on %d", chase.Runs)
	case chase.Batting:
		left := state.Config.Wickets - chase.Wickets
		return fmt.Sprintf("%s won by %s", displayName(match, state.Winner), plural(left, "wicket"))
	}
	margin := state.Cricket.Target - 1 - chase.Runs
	return fmt.Sprintf("%s won by %s", displayName(match, state.Winner), plural(margin, "run"))
}
