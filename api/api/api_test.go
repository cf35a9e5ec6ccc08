/* api_test.go
 * Contains unit tests for api.go - testing all public API methods
 */

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"livescore/api/publisher"
	"livescore/api/shared"
	"livescore/api/store"
	"livescore/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func newTestAPI(s store.Interface, opts ...Option) *API {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "generated-id" }),
	}, opts...)
	return NewAPI(s, nil, opts...)
}

func badmintonMatch(id string) shared.Match {
	return shared.Match{
		ID:    id,
		Sport: shared.SportBadminton,
		Team1: shared.Contestant{Name: "Falcons"},
		Team2: shared.Contestant{Name: "Hawks"},
	}
}

// winSet plays 21 straight points for side
func winSet(t *testing.T, a *API, id string, side shared.Side) MatchView {
	t.Helper()
	var view MatchView
	var err error
	for i := 0; i < 21; i++ {
		view, err = a.Apply(context.Background(), id, shared.Point(side))
		require.NoError(t, err)
	}
	return view
}

func storeFailures(t *testing.T, r *metrics.Recorder) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() == "livescore_store_failures_total" {
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

// region CreateMatch tests

func TestCreateMatch_Success(t *testing.T) {
	mock := NewMockStore()
	a := newTestAPI(mock)

	view, err := a.CreateMatch(context.Background(), badmintonMatch(""))
	require.NoError(t, err)

	assert.Equal(t, "generated-id", view.Match.ID)
	assert.Equal(t, shared.MatchLive, view.Match.Status)
	assert.Equal(t, fixedNow, view.Match.CreatedAt)
	assert.Equal(t, 1, view.State.CurrentPeriod)
	assert.Equal(t, shared.StatusInProgress, view.State.Status)
	assert.False(t, view.CanUndo)
	assert.False(t, view.Completed())

	assert.Contains(t, mock.Matches, "generated-id")
	assert.Contains(t, mock.States, "generated-id")
}

func TestCreateMatch_KeepsGivenID(t *testing.T) {
	a := newTestAPI(NewMockStore())

	view, err := a.CreateMatch(context.Background(), badmintonMatch("final-2025"))
	require.NoError(t, err)

	assert.Equal(t, "final-2025", view.Match.ID)
}

func TestCreateMatch_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		match shared.Match
	}{
		{"missing team1", shared.Match{Sport: shared.SportBadminton, Team2: shared.Contestant{Name: "Hawks"}}},
		{"blank team2", shared.Match{Sport: shared.SportBadminton, Team1: shared.Contestant{Name: "Falcons"}, Team2: shared.Contestant{Name: "  "}}},
		{"same names", shared.Match{Sport: shared.SportBadminton, Team1: shared.Contestant{Name: "Hawks"}, Team2: shared.Contestant{Name: "hawks"}}},
		{
			"bad server",
			shared.Match{
				Sport:  shared.SportBadminton,
				Team1:  shared.Contestant{Name: "Falcons"},
				Team2:  shared.Contestant{Name: "Hawks"},
				Format: shared.Format{InitialServer: "team3"},
			},
		},
		{
			"even best of",
			shared.Match{
				Sport:  shared.SportVolleyball,
				Team1:  shared.Contestant{Name: "Falcons"},
				Team2:  shared.Contestant{Name: "Hawks"},
				Format: shared.Format{BestOf: 4},
			},
		},
		{
			"negative best of",
			shared.Match{
				Sport:  shared.SportBadminton,
				Team1:  shared.Contestant{Name: "Falcons"},
				Team2:  shared.Contestant{Name: "Hawks"},
				Format: shared.Format{BestOf: -3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestAPI(NewMockStore()).CreateMatch(context.Background(), tt.match)
			assert.ErrorIs(t, err, ErrInvalidMatch)
		})
	}
}

func TestCreateMatch_UnsupportedSport(t *testing.T) {
	m := badmintonMatch("m1")
	m.Sport = "curling"

	_, err := newTestAPI(NewMockStore()).CreateMatch(context.Background(), m)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "curling")
}

func TestCreateMatch_Duplicate(t *testing.T) {
	a := newTestAPI(NewMockStore())
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	_, err = a.CreateMatch(context.Background(), badmintonMatch("m1"))

	assert.ErrorIs(t, err, ErrInvalidMatch)
}

func TestCreateMatch_StoreError(t *testing.T) {
	mock := NewMockStore()
	mock.SaveError = errors.New("connection refused")
	recorder := metrics.NewRecorder()
	a := newTestAPI(mock, WithMetrics(recorder))

	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1.0, storeFailures(t, recorder))

	// the failed match is not left open
	_, err = a.Snapshot(context.Background(), "m1")
	var notFound *store.MatchNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

// endregion

// region Apply tests

func TestApply_PointUpdatesAndPersists(t *testing.T) {
	mock := NewMockStore()
	pub := &MockPublisher{}
	a := newTestAPI(mock, WithPublisher(pub))
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	view, err := a.Apply(context.Background(), "m1", shared.Point(shared.Team2))
	require.NoError(t, err)

	assert.True(t, view.Changed)
	assert.True(t, view.CanUndo)
	assert.Equal(t, shared.Score{Team2: 1}, view.State.Points)
	assert.Equal(t, shared.Team2, view.State.Server)
	assert.Equal(t, shared.Score{Team2: 1}, mock.States["m1"].Points)
	require.Len(t, pub.Updates, 1)
	assert.Equal(t, publisher.KindAction, pub.Updates[0].Kind)
	assert.Equal(t, shared.Point(shared.Team2), *pub.Updates[0].Action)
}

func TestApply_NoOpIsNotPersisted(t *testing.T) {
	mock := NewMockStore()
	pub := &MockPublisher{}
	a := newTestAPI(mock, WithPublisher(pub))
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	saves := mock.SaveCalls

	view, err := a.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionWicket})
	require.NoError(t, err)

	assert.False(t, view.Changed)
	assert.False(t, view.CanUndo)
	assert.Equal(t, saves, mock.SaveCalls)
	assert.Empty(t, pub.Updates)
}

func TestApply_UnknownMatch(t *testing.T) {
	_, err := newTestAPI(NewMockStore()).Apply(context.Background(), "missing", shared.Point(shared.Team1))

	var notFound *store.MatchNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.MatchID)
}

func TestApply_LoadError(t *testing.T) {
	mock := NewMockStore()
	mock.LoadError = errors.New("timeout")

	_, err := newTestAPI(mock).Apply(context.Background(), "m1", shared.Point(shared.Team1))

	assert.EqualError(t, err, "timeout")
}

func TestApply_CompletesMatch(t *testing.T) {
	mock := NewMockStore()
	pub := &MockPublisher{}
	a := newTestAPI(mock, WithPublisher(pub))
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	view := winSet(t, a, "m1", shared.Team1)
	assert.Equal(t, shared.StatusPeriodOver, view.State.Status)
	assert.False(t, view.Completed())

	_, err = a.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionStartPeriod})
	require.NoError(t, err)
	view = winSet(t, a, "m1", shared.Team1)

	require.True(t, view.Completed())
	assert.False(t, view.CanUndo)
	assert.Equal(t, shared.MatchCompleted, view.Match.Status)
	assert.Equal(t, shared.Team1, view.Result.Winner)
	assert.Equal(t, "Falcons won 2-0", view.Result.Summary)
	assert.Equal(t, fixedNow, view.Result.CompletedAt)

	assert.Equal(t, shared.MatchCompleted, mock.Matches["m1"].Status)
	assert.Equal(t, *view.Result, mock.Results["m1"])
	kinds := pub.Kinds()
	assert.Equal(t, publisher.KindCompleted, kinds[len(kinds)-1])

	// further actions are no-ops
	after, err := a.Apply(context.Background(), "m1", shared.Point(shared.Team2))
	require.NoError(t, err)
	assert.False(t, after.Changed)
}

func TestApply_StoreFailureIsNotReturned(t *testing.T) {
	mock := NewMockStore()
	recorder := metrics.NewRecorder()
	a := newTestAPI(mock, WithMetrics(recorder))
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	mock.SaveError = errors.New("disk full")
	view, err := a.Apply(context.Background(), "m1", shared.Point(shared.Team1))

	require.NoError(t, err)
	assert.True(t, view.Changed)
	assert.Equal(t, 1, view.State.Points.Team1)
	assert.Equal(t, 1.0, storeFailures(t, recorder))
}

func TestApply_PublishFailureIsNotReturned(t *testing.T) {
	pub := &MockPublisher{PublishError: errors.New("redis down")}
	a := newTestAPI(NewMockStore(), WithPublisher(pub))
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	view, err := a.Apply(context.Background(), "m1", shared.Point(shared.Team1))

	require.NoError(t, err)
	assert.True(t, view.Changed)
}

func TestApply_ResumesFromStore(t *testing.T) {
	mock := NewMockStore()
	first := newTestAPI(mock)
	_, err := first.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = first.Apply(context.Background(), "m1", shared.Point(shared.Team2))
		require.NoError(t, err)
	}

	second := newTestAPI(mock)
	view, err := second.Apply(context.Background(), "m1", shared.Point(shared.Team1))
	require.NoError(t, err)

	assert.Equal(t, shared.Score{Team1: 1, Team2: 5}, view.State.Points)
	// history does not survive a restart
	view, err = second.Undo(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, view.Changed)
	view, err = second.Undo(context.Background(), "m1")
	require.NoError(t, err)
	assert.False(t, view.Changed)
	assert.Equal(t, shared.Score{Team2: 5}, view.State.Points)
}

func TestApply_ResumeArchivesMissingResult(t *testing.T) {
	mock := NewMockStore()
	mock.SaveResultError = errors.New("lost connection")
	first := newTestAPI(mock)
	_, err := first.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	winSet(t, first, "m1", shared.Team2)
	_, err = first.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionStartPeriod})
	require.NoError(t, err)
	winSet(t, first, "m1", shared.Team2)
	require.NotContains(t, mock.Results, "m1")

	mock.SaveResultError = nil
	second := newTestAPI(mock)
	result, err := second.Result(context.Background(), "m1")

	require.NoError(t, err)
	assert.Equal(t, shared.Team2, result.Winner)
	assert.Contains(t, mock.Results, "m1")
}

// endregion

// region Undo tests

func TestUndo_RevertsLastChange(t *testing.T) {
	mock := NewMockStore()
	pub := &MockPublisher{}
	a := newTestAPI(mock, WithPublisher(pub))
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	_, err = a.Apply(context.Background(), "m1", shared.Point(shared.Team1))
	require.NoError(t, err)
	_, err = a.Apply(context.Background(), "m1", shared.Point(shared.Team2))
	require.NoError(t, err)

	view, err := a.Undo(context.Background(), "m1")
	require.NoError(t, err)

	assert.True(t, view.Changed)
	assert.Equal(t, shared.Score{Team1: 1}, view.State.Points)
	assert.Equal(t, shared.Team1, view.State.Server)
	assert.Equal(t, shared.Score{Team1: 1}, mock.States["m1"].Points)
	assert.Equal(t, []string{publisher.KindAction, publisher.KindAction, publisher.KindUndo}, pub.Kinds())
}

func TestUndo_EmptyHistory(t *testing.T) {
	a := newTestAPI(NewMockStore())
	created, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	view, err := a.Undo(context.Background(), "m1")
	require.NoError(t, err)

	assert.False(t, view.Changed)
	assert.Equal(t, created.State, view.State)
}

func TestUndo_AfterResultIsNoOp(t *testing.T) {
	a := newTestAPI(NewMockStore())
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	winSet(t, a, "m1", shared.Team1)
	_, err = a.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionStartPeriod})
	require.NoError(t, err)
	done := winSet(t, a, "m1", shared.Team1)

	view, err := a.Undo(context.Background(), "m1")
	require.NoError(t, err)

	assert.False(t, view.Changed)
	assert.Equal(t, done.State, view.State)
	assert.True(t, view.Completed())
}

// endregion

// region Snapshot, Result and DeleteMatch tests

func TestSnapshot(t *testing.T) {
	a := newTestAPI(NewMockStore())
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	_, err = a.Apply(context.Background(), "m1", shared.Point(shared.Team1))
	require.NoError(t, err)

	view, err := a.Snapshot(context.Background(), "m1")
	require.NoError(t, err)

	assert.False(t, view.Changed)
	assert.True(t, view.CanUndo)
	assert.Equal(t, 1, view.State.Points.Team1)
}

func TestSnapshot_IsACopy(t *testing.T) {
	a := newTestAPI(NewMockStore())
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	view, err := a.Snapshot(context.Background(), "m1")
	require.NoError(t, err)
	view.State.PeriodsWon[0] = shared.Team2

	again, err := a.Snapshot(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, shared.SideNone, again.State.PeriodsWon[0])
}

func TestResult_NotReady(t *testing.T) {
	a := newTestAPI(NewMockStore())
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	_, err = a.Result(context.Background(), "m1")

	assert.ErrorIs(t, err, ErrResultNotReady)
}

func TestResult_FromStore(t *testing.T) {
	mock := NewMockStore()
	mock.Matches["m1"] = store.CreateSampleMatch("m1", shared.SportBadminton)
	mock.Results["m1"] = store.CreateSampleResult("m1", shared.SportBadminton)

	result, err := newTestAPI(mock).Result(context.Background(), "m1")

	require.NoError(t, err)
	assert.Equal(t, "Falcons won 2-0", result.Summary)
}

func TestDeleteMatch(t *testing.T) {
	mock := NewMockStore()
	a := newTestAPI(mock)
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)

	require.NoError(t, a.DeleteMatch(context.Background(), "m1"))

	assert.NotContains(t, mock.Matches, "m1")
	assert.NotContains(t, mock.States, "m1")
	_, err = a.Snapshot(context.Background(), "m1")
	var notFound *store.MatchNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteMatch_Unknown(t *testing.T) {
	err := newTestAPI(NewMockStore()).DeleteMatch(context.Background(), "nope")

	var notFound *store.MatchNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteMatch_StoreError(t *testing.T) {
	mock := NewMockStore()
	a := newTestAPI(mock)
	_, err := a.CreateMatch(context.Background(), badmintonMatch("m1"))
	require.NoError(t, err)
	mock.DeleteError = errors.New("read only")

	err = a.DeleteMatch(context.Background(), "m1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read only")
}

func TestSportsAndClose(t *testing.T) {
	mock := NewMockStore()
	a := newTestAPI(mock)

	assert.ElementsMatch(t,
		[]shared.Sport{shared.SportBadminton, shared.SportCricket, shared.SportKabaddi, shared.SportVolleyball},
		a.Sports(),
	)
	require.NoError(t, a.Close())
	assert.True(t, mock.Closed)
}

// endregion

// region integration with the lifecycle store

func TestAPI_WithMemoryStore(t *testing.T) {
	s := store.NewMemoryStore()
	a := newTestAPI(s)
	m := badmintonMatch("m1")
	m.Sport = shared.SportCricket
	m.Format = shared.Format{Overs: 1, Wickets: 2}
	_, err := a.CreateMatch(context.Background(), m)
	require.NoError(t, err)

	for _, runs := range []int{6, 6, 0, 0, 0, 0} {
		_, err = a.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionPoint, Value: runs})
		require.NoError(t, err)
	}
	_, err = a.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionStartPeriod})
	require.NoError(t, err)
	view, err := a.Apply(context.Background(), "m1", shared.Action{Type: shared.ActionPoint, Value: 4})
	require.NoError(t, err)
	assert.Equal(t, 13, view.State.Cricket.Target)

	snap, err := s.Load(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, snap.State)
	assert.Equal(t, 4, snap.State.Cricket.Current().Runs)

	done, err := s.IsCompleted(context.Background(), "m1")
	require.NoError(t, err)
	assert.False(t, done)
}

// endregion
