package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"livescore/api/shared"

	"github.com/redis/go-redis/v9"
)

// Update kinds
const (
	KindAction    = "action"
	KindUndo      = "undo"
	KindCompleted = "completed"
)

// streamMaxLen caps each stream; trimming is approximate so XADD stays O(1)
const streamMaxLen = 10000

// Update is one score change pushed to listeners
type Update struct {
	MatchID string              `json:"matchId"`
	Sport   shared.Sport        `json:"sport"`
	Kind    string              `json:"kind"`
	Action  *shared.Action      `json:"action,omitempty"`
	State   shared.ScoreState   `json:"state"`
	Result  *shared.MatchResult `json:"result,omitempty"`
}

// StreamPublisher publishes match updates to Redis streams
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{
		client: client,
	}
}

// StreamKey is the per-sport stream, e.g. matches.updates.volleyball
func StreamKey(sport shared.Sport) string {
	return fmt.Sprintf("matches.updates.%s", sport)
}

// Publish appends update to its sport's stream
func (p *StreamPublisher) Publish(ctx context.Context, update Update) error {
	values, err := streamValues(update)
	if err != nil {
		return err
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(update.Sport),
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Err()
}

func streamValues(update Update) (map[string]interface{}, error) {
	data, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("marshaling match update: %w", err)
	}
	return map[string]interface{}{
		"data":     string(data),
		"match_id": update.MatchID,
		"kind":     update.Kind,
		"status":   string(update.State.Status),
	}, nil
}
