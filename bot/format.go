package bot

import (
	"fmt"
	"strings"

	"livescore/api/api"
	"livescore/api/results"
	"livescore/api/shared"
)

// formatView renders the scoreboard message for view
func formatView(view api.MatchView) string {
	m, s := view.Match, view.State
	label := results.PeriodLabel(s.Sport)

	var res strings.Builder
	switch s.Sport {
	case shared.SportCricket:
		writeCricket(&res, m, s)
	case shared.SportKabaddi:
		fmt.Fprintf(&res, "%s %d - %d %s (%s %d)\n", m.Team1.Name, s.Points.Team1, s.Points.Team2, m.Team2.Name, label, s.CurrentPeriod)
		writeKabaddi(&res, m, s)
	default:
		fmt.Fprintf(&res, "%s %d - %d %s (%s %d, sets %d-%d)\n",
			m.Team1.Name, s.Points.Team1, s.Points.Team2, m.Team2.Name,
			label, s.CurrentPeriod, s.PeriodsWonBy(shared.Team1), s.PeriodsWonBy(shared.Team2),
		)
		writeRally(&res, m, s)
	}

	switch s.Status {
	case shared.StatusPeriodOver:
		fmt.Fprintf(&res, "%s %d over. Use `$next` to start %s %d\n", label, s.CurrentPeriod-1, label, s.CurrentPeriod)
	case shared.StatusCompleted:
		if view.Result != nil {
			fmt.Fprintf(&res, "Final: %s\n", view.Result.Summary)
		} else {
			res.WriteString("Match completed\n")
		}
	}
	return strings.TrimRight(res.String(), "\n")
}

func writeRally(res *strings.Builder, m shared.Match, s shared.ScoreState) {
	if s.Status == shared.StatusInProgress {
		fmt.Fprintf(res, "Serving: %s\n", m.Name(s.Server))
	}
	switch {
	case s.Flags.MatchPoint.Valid():
		fmt.Fprintf(res, "Match point %s\n", m.Name(s.Flags.MatchPoint))
	case s.Flags.SetPoint.Valid():
		fmt.Fprintf(res, "Set point %s\n", m.Name(s.Flags.SetPoint))
	case s.Flags.Deuce:
		res.WriteString("Deuce\n")
	}
	if s.Volleyball != nil {
		fmt.Fprintf(res, "Timeouts used: %d-%d\n", s.Volleyball.TimeoutsUsed.Team1, s.Volleyball.TimeoutsUsed.Team2)
	}
}

func writeKabaddi(res *strings.Builder, m shared.Match, s shared.ScoreState) {
	k := s.Kabaddi
	if k == nil || s.Status != shared.StatusInProgress {
		return
	}
	if k.RaidActive {
		fmt.Fprintf(res, "Raid: %s (%ds left)\n", m.Name(k.Raider), k.RaidTimeLeft)
		return
	}
	fmt.Fprintf(res, "Next raid: %s\n", m.Name(s.Server))
}

func writeCricket(res *strings.Builder, m shared.Match, s shared.ScoreState) {
	inn := s.Cricket.Current()
	if inn == nil {
		return
	}
	overs, balls := inn.Overs()
	fmt.Fprintf(res, "%s %d/%d (%d.%d ov, Innings %d)\n", m.Name(inn.Batting), inn.Runs, inn.Wickets, overs, balls, len(s.Cricket.Innings))
	if s.Cricket.Target > 0 && s.Status == shared.StatusInProgress {
		need := s.Cricket.Target - inn.Runs
		left := s.Config.Overs*6 - inn.Balls
		fmt.Fprintf(res, "Target %d: %s need %d from %d balls\n", s.Cricket.Target, m.Name(inn.Batting), need, left)
	}
}

// formatResult renders the final breakdown of a match
func formatResult(result shared.MatchResult) string {
	var res strings.Builder
	res.WriteString(result.Summary)
	for _, p := range result.Periods {
		fmt.Fprintf(&res, "\n- %s: %s", p.Label, p.Detail)
	}
	return res.String()
}
