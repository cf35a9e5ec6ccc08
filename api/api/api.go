/* api.go
 * This file contains the public methods for interacting with the scoring core. Hosts (the HTTP server and the bot)
 * should only call these methods, not the engine, rules or store packages directly.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"livescore/api/engine"
	"livescore/api/publisher"
	"livescore/api/rules"
	"livescore/api/shared"
	"livescore/api/store"
	"livescore/logging"
	"livescore/metrics"

	"github.com/google/uuid"
)

var (
	// ErrResultNotReady is returned by Result while the match is still being played
	ErrResultNotReady = errors.New("match result not ready")
	// ErrInvalidMatch is returned by CreateMatch for matches that cannot be scored
	ErrInvalidMatch = errors.New("invalid match")
)

// Publisher receives every score change. StreamPublisher is the Redis implementation.
type Publisher interface {
	Publish(ctx context.Context, update publisher.Update) error
}

// session is the in-memory scoring context of one open match
type session struct {
	engine *engine.Engine
	match  shared.Match
	state  shared.ScoreState
	result *shared.MatchResult
}

// API provides methods for scoring matches on top of the lifecycle store
type API struct {
	Store store.Interface

	registry  *rules.Registry
	logger    *slog.Logger
	metrics   *metrics.Recorder
	publisher Publisher
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures optional collaborators of the API
type Option func(*API)

func WithLogger(logger *slog.Logger) Option {
	return func(a *API) { a.logger = logger }
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(a *API) { a.metrics = recorder }
}

func WithPublisher(p Publisher) Option {
	return func(a *API) { a.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(a *API) { a.newID = newID }
}

// NewAPI creates a new API instance. A nil registry selects every built-in sport.
func NewAPI(s store.Interface, registry *rules.Registry, opts ...Option) *API {
	if registry == nil {
		registry = rules.NewRegistry()
	}
	a := &API{
		Store:    s,
		registry: registry,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sports lists the sports that can be scored
func (a *API) Sports() []shared.Sport {
	return a.registry.Sports()
}

// CreateMatch validates match, assigns an ID when it has none, and persists it with its initial score
func (a *API) CreateMatch(ctx context.Context, match shared.Match) (MatchView, error) {
	match.Team1.Name = strings.TrimSpace(match.Team1.Name)
	match.Team2.Name = strings.TrimSpace(match.Team2.Name)
	if match.Team1.Name == "" || match.Team2.Name == "" {
		return MatchView{}, fmt.Errorf("%w: both contestants need a name", ErrInvalidMatch)
	}
	if strings.EqualFold(match.Team1.Name, match.Team2.Name) {
		return MatchView{}, fmt.Errorf("%w: contestants must have different names", ErrInvalidMatch)
	}
	if match.Format.InitialServer != shared.SideNone && !match.Format.InitialServer.Valid() {
		return MatchView{}, fmt.Errorf("%w: initial server must be team1 or team2", ErrInvalidMatch)
	}
	if match.Sport == shared.SportBadminton || match.Sport == shared.SportVolleyball {
		// zero selects the sport's default
		if bestOf := match.Format.BestOf; bestOf < 0 || (bestOf > 0 && bestOf%2 == 0) {
			return MatchView{}, fmt.Errorf("%w: bestOf must be a positive odd number", ErrInvalidMatch)
		}
	}

	if match.ID == "" {
		match.ID = a.newID()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = a.now().UTC()
	}
	match.Status = shared.MatchLive

	eng := engine.New(a.registry)
	state, err := eng.Initialize(match, nil)
	if err != nil {
		return MatchView{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, open := a.sessions[match.ID]; open {
		return MatchView{}, fmt.Errorf("%w: match %s already exists", ErrInvalidMatch, match.ID)
	}
	if err := a.Store.Save(ctx, match.ID, store.Partial{Match: &match, State: &state}); err != nil {
		a.metrics.RecordStoreFailure("create")
		return MatchView{}, fmt.Errorf("failed to store match %s: %w", match.ID, err)
	}

	sess := &session{engine: eng, match: match, state: state}
	a.sessions[match.ID] = sess
	logging.Info(a.logger, "match created",
		logging.FieldMatchID, match.ID,
		logging.FieldSport, string(match.Sport),
	)
	return sess.view(false), nil
}

// Apply runs action against the match. Actions outside the current scoring window are no-ops and report
// Changed == false. Completing the match archives its result.
func (a *API) Apply(ctx context.Context, matchID string, action shared.Action) (MatchView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sess, err := a.session(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}

	before := sess.engine.HistoryLen()
	next := sess.engine.ApplyAction(sess.state, action)
	changed := sess.engine.HistoryLen() > before
	a.metrics.RecordAction(string(sess.match.Sport), string(action.Type), changed)
	if !changed {
		return sess.view(false), nil
	}

	sess.state = next
	a.persistState(ctx, sess)
	a.publish(ctx, sess, publisher.KindAction, &action)

	if next.Status == shared.StatusCompleted && sess.result == nil {
		a.complete(ctx, sess)
	}
	return sess.view(true), nil
}

// Undo reverts the last change of the session. It is a no-op when nothing can be undone or the result has
// already been recorded.
func (a *API) Undo(ctx context.Context, matchID string) (MatchView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sess, err := a.session(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	if sess.result != nil || !sess.engine.CanUndo() {
		return sess.view(false), nil
	}

	sess.state = sess.engine.Undo(sess.state)
	a.metrics.RecordUndo(string(sess.match.Sport))
	a.persistState(ctx, sess)
	a.publish(ctx, sess, publisher.KindUndo, nil)
	return sess.view(true), nil
}

// Snapshot returns the current view of the match
func (a *API) Snapshot(ctx context.Context, matchID string) (MatchView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sess, err := a.session(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	return sess.view(false), nil
}

// Result returns the archived result of a completed match
func (a *API) Result(ctx context.Context, matchID string) (shared.MatchResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sess, err := a.session(ctx, matchID)
	if err != nil {
		return shared.MatchResult{}, err
	}
	if sess.result == nil {
		return shared.MatchResult{}, ErrResultNotReady
	}
	return *sess.result, nil
}

// DeleteMatch closes the session and removes every stored record of the match
func (a *API) DeleteMatch(ctx context.Context, matchID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, open := a.sessions[matchID]; !open {
		if _, err := a.Store.Load(ctx, matchID); err != nil {
			return err
		}
	}
	delete(a.sessions, matchID)
	if err := a.Store.Delete(ctx, matchID); err != nil {
		a.metrics.RecordStoreFailure("delete")
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	logging.Info(a.logger, "match deleted", logging.FieldMatchID, matchID)
	return nil
}

// Close releases the store
func (a *API) Close() error {
	return a.Store.Close()
}

// session returns the open session for matchID, resuming it from the store when needed. Callers hold a.mu.
func (a *API) session(ctx context.Context, matchID string) (*session, error) {
	if sess, ok := a.sessions[matchID]; ok {
		return sess, nil
	}

	snap, err := a.Store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	eng := engine.New(a.registry)
	state, err := eng.Initialize(snap.Match, snap.State)
	if err != nil {
		return nil, err
	}

	sess := &session{engine: eng, match: snap.Match, state: state, result: snap.Result}
	a.sessions[matchID] = sess
	logging.Info(a.logger, "match resumed",
		logging.FieldMatchID, matchID,
		logging.FieldSport, string(snap.Match.Sport),
		logging.FieldPeriod, state.CurrentPeriod,
	)

	// a crash between the final point and archiving leaves a completed score without a result
	if state.Status == shared.StatusCompleted && sess.result == nil {
		a.complete(ctx, sess)
	}
	return sess, nil
}

// complete finalizes the match and archives the result. Store failures are logged, the session keeps the result.
func (a *API) complete(ctx context.Context, sess *session) {
	result, err := sess.engine.Finalize(sess.state)
	if err != nil {
		logging.Error(a.logger, "failed to finalize match", err, logging.FieldMatchID, sess.match.ID)
		return
	}
	result.CompletedAt = a.now().UTC()
	sess.result = &result
	sess.match.Status = shared.MatchCompleted

	if err := a.Store.Save(ctx, sess.match.ID, store.Partial{Match: &sess.match, Result: &result}); err != nil {
		a.metrics.RecordStoreFailure("save_result")
		logging.Error(a.logger, "failed to store match result", err, logging.FieldMatchID, sess.match.ID)
	}
	a.metrics.RecordCompletion(string(sess.match.Sport))
	a.publish(ctx, sess, publisher.KindCompleted, nil)
	logging.Info(a.logger, "match completed",
		logging.FieldMatchID, sess.match.ID,
		logging.FieldSport, string(sess.match.Sport),
		"summary", result.Summary,
	)
}

func (a *API) persistState(ctx context.Context, sess *session) {
	state := sess.state
	if err := a.Store.Save(ctx, sess.match.ID, store.Partial{State: &state}); err != nil {
		a.metrics.RecordStoreFailure("save_summary")
		logging.Error(a.logger, "failed to store score", err, logging.FieldMatchID, sess.match.ID)
	}
}

func (a *API) publish(ctx context.Context, sess *session, kind string, action *shared.Action) {
	if a.publisher == nil {
		return
	}
	update := publisher.Update{
		MatchID: sess.match.ID,
		Sport:   sess.match.Sport,
		Kind:    kind,
		Action:  action,
		State:   sess.state,
		Result:  sess.result,
	}
	if err := a.publisher.Publish(ctx, update); err != nil {
		a.metrics.RecordPublishFailure()
		logging.Warn(a.logger, "failed to publish update", logging.FieldMatchID, sess.match.ID, "error", err)
	}
}

func (s *session) view(changed bool) MatchView {
	view := MatchView{
		Match:   s.match,
		State:   s.state.Clone(),
		CanUndo: s.result == nil && s.engine.CanUndo(),
		Changed: changed,
	}
	if s.result != nil {
		result := *s.result
		view.Result = &result
	}
	return view
}
