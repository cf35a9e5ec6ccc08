/* input_processing.go
 * Contains the logic for resolving user typed contestant and player names against a match
 */

package logic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"livescore/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	ErrUnknownContestant = errors.New("unknown contestant")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrAmbiguousName     = errors.New("ambiguous name")
)

// matchName finds input in candidates. An exact case-insensitive match wins, otherwise the closest fuzzy match is
// used. Two equally close fuzzy matches are ambiguous. Returns the index into candidates.
func matchName(input string, candidates []string) (int, error) {
	lowerInput := strings.ToLower(strings.TrimSpace(input))
	if lowerInput == "" {
		return -1, ErrUnknownContestant
	}

	// Convert candidates to lowercase for better matching
	lookup := make(map[string]int, len(candidates))
	lower := make([]string, 0, len(candidates))
	for i, name := range candidates {
		l := strings.ToLower(name)
		if l == lowerInput {
			return i, nil
		}
		if _, seen := lookup[l]; !seen && l != "" {
			lookup[l] = i
			lower = append(lower, l)
		}
	}

	ranks := fuzzy.RankFind(lowerInput, lower)
	if len(ranks) == 0 {
		return -1, ErrUnknownContestant
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return -1, ErrAmbiguousName
	}
	return lookup[ranks[0].Target], nil
}

// ResolveContestant maps input to a side of match. Besides names it accepts 1/2, t1/t2 and team1/team2.
func ResolveContestant(match shared.Match, input string) (shared.Side, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "t1", "team1":
		return shared.Team1, nil
	case "2", "t2", "team2":
		return shared.Team2, nil
	}

	idx, err := matchName(input, []string{match.Team1.Name, match.Team2.Name})
	if err != nil {
		return shared.SideNone, fmt.Errorf("%w: %q", err, input)
	}
	return shared.Sides[idx], nil
}

// ResolvePlayer maps input to a player ID of contestant, matching IDs exactly and names fuzzily
func ResolvePlayer(contestant shared.Contestant, input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	for _, p := range contestant.Players {
		if p.ID == trimmed {
			return p.ID, nil
		}
	}

	names := make([]string, len(contestant.Players))
	for i, p := range contestant.Players {
		names[i] = p.Name
	}
	idx, err := matchName(trimmed, names)
	if errors.Is(err, ErrUnknownContestant) {
		err = ErrUnknownPlayer
	}
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, input)
	}
	return contestant.Players[idx].ID, nil
}
