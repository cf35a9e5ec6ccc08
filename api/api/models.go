/* models.go
 * This file contain the structs that are returned to api consumers
 */

package api

import "livescore/api/shared"

// MatchView is what hosts render after every call. Changed is false when the call was a no-op.
type MatchView struct {
	Match   shared.Match        `json:"match"`
	State   shared.ScoreState   `json:"state"`
	Result  *shared.MatchResult `json:"result,omitempty"`
	CanUndo bool                `json:"canUndo"`
	Changed bool                `json:"changed"`
}

// Completed reports whether the match has an archived result
func (v MatchView) Completed() bool {
	return v.Result != nil
}
