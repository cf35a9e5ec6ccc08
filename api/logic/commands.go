/* commands.go
 * Contains the translation from scorer text commands (already split into arguments) into engine actions
 */

package logic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"livescore/api/shared"
)

// ErrUnknownCommand is returned for commands that do not map to a scoring action
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports a scoring command with missing or malformed arguments
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s. Usage: %s", e.Command, e.Reason, Usage[e.Command])
}

// Usage lists the argument syntax of every scoring command
var Usage = map[string]string{
	"point":     `$point <team> [value] [raid|tackle|bonus] [player]`,
	"serve":     `$serve`,
	"timeout":   `$timeout <team>`,
	"rotate":    `$rotate <team>`,
	"allout":    `$allout <team>`,
	"toggle":    `$toggle <team> <player>`,
	"raid":      `$raid [team] [player]`,
	"raidend":   `$raidend <success|failure|empty> [value]`,
	"tick":      `$tick <seconds>`,
	"runs":      `$runs <n>`,
	"extra":     `$extra [n]`,
	"wicket":    `$wicket`,
	"endperiod": `$endperiod`,
	"next":      `$next`,
}

// ParseCommand builds the action for command with args. Team and player names are resolved against match.
func ParseCommand(match shared.Match, command string, args []string) (shared.Action, error) {
	command = strings.ToLower(strings.TrimPrefix(command, "$"))
	usage := func(reason string) error {
		return &UsageError{Command: command, Reason: reason}
	}

	switch command {
	case "point":
		if len(args) == 0 {
			return shared.Action{}, usage("team is required")
		}
		side, err := ResolveContestant(match, args[0])
		if err != nil {
			return shared.Action{}, err
		}
		action := shared.Action{Type: shared.ActionPoint, Contestant: side}
		rest := args[1:]
		if len(rest) > 0 {
			if n, err := strconv.Atoi(rest[0]); err == nil {
				if n <= 0 {
					return shared.Action{}, usage("value must be positive")
				}
				action.Value = n
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			if subtype, ok := parseSubtype(rest[0]); ok {
				action.Subtype = subtype
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			id, err := ResolvePlayer(match.Contestant(side), strings.Join(rest, " "))
			if err != nil {
				return shared.Action{}, err
			}
			action.PlayerID = id
		}
		return action, nil

	case "serve":
		return shared.Action{Type: shared.ActionToggleService}, nil

	case "timeout", "rotate", "allout":
		if len(args) != 1 {
			return shared.Action{}, usage("exactly one team is required")
		}
		side, err := ResolveContestant(match, args[0])
		if err != nil {
			return shared.Action{}, err
		}
		types := map[string]shared.ActionType{
			"timeout": shared.ActionTimeout,
			"rotate":  shared.ActionRotate,
			"allout":  shared.ActionAllOut,
		}
		return shared.Action{Type: types[command], Contestant: side}, nil

	case "toggle":
		if len(args) < 2 {
			return shared.Action{}, usage("team and player are required")
		}
		side, err := ResolveContestant(match, args[0])
		if err != nil {
			return shared.Action{}, err
		}
		id, err := ResolvePlayer(match.Contestant(side), strings.Join(args[1:], " "))
		if err != nil {
			return shared.Action{}, err
		}
		return shared.Action{Type: shared.ActionTogglePlayer, Contestant: side, PlayerID: id}, nil

	case "raid":
		action := shared.Action{Type: shared.ActionStartRaid}
		if len(args) == 0 {
			return action, nil
		}
		side, err := ResolveContestant(match, args[0])
		if err != nil {
			return shared.Action{}, err
		}
		action.Contestant = side
		if len(args) > 1 {
			id, err := ResolvePlayer(match.Contestant(side), strings.Join(args[1:], " "))
			if err != nil {
				return shared.Action{}, err
			}
			action.PlayerID = id
		}
		return action, nil

	case "raidend":
		if len(args) == 0 || len(args) > 2 {
			return shared.Action{}, usage("outcome is required")
		}
		outcome := shared.RaidOutcome(strings.ToLower(args[0]))
		switch outcome {
		case shared.RaidSuccess, shared.RaidFailure, shared.RaidEmpty:
		default:
			return shared.Action{}, usage(fmt.Sprintf("unknown outcome %q", args[0]))
		}
		action := shared.Action{Type: shared.ActionEndRaid, Outcome: outcome}
		if len(args) == 2 {
			n, err := positive(args[1])
			if err != nil {
				return shared.Action{}, usage(err.Error())
			}
			action.Value = n
		}
		return action, nil

	case "tick":
		if len(args) != 1 {
			return shared.Action{}, usage("seconds are required")
		}
		n, err := positive(args[0])
		if err != nil {
			return shared.Action{}, usage(err.Error())
		}
		return shared.Action{Type: shared.ActionRaidTick, Value: n}, nil

	case "runs":
		if len(args) != 1 {
			return shared.Action{}, usage("runs are required")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return shared.Action{}, usage("runs must be zero or more")
		}
		return shared.Action{Type: shared.ActionPoint, Value: n}, nil

	case "extra":
		action := shared.Action{Type: shared.ActionExtra}
		if len(args) > 0 {
			n, err := positive(args[0])
			if err != nil {
				return shared.Action{}, usage(err.Error())
			}
			action.Value = n
		}
		return action, nil

	case "wicket":
		return shared.Action{Type: shared.ActionWicket}, nil

	case "endperiod":
		return shared.Action{Type: shared.ActionEndPeriod}, nil

	case "next":
		return shared.Action{Type: shared.ActionStartPeriod}, nil
	}
	return shared.Action{}, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
}

func parseSubtype(input string) (shared.PointSubtype, bool) {
	switch s := shared.PointSubtype(strings.ToLower(input)); s {
	case shared.PointRaid, shared.PointTackle, shared.PointBonus:
		return s, true
	}
	return "", false
}

func positive(input string) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive number", input)
	}
	return n, nil
}
