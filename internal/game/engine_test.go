package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzleworks/daily-riddle/internal/puzzle"
	"github.com/puzzleworks/daily-riddle/internal/verify"
)

// manualScheduler queues settle callbacks so tests control when they fire.
type manualScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

func (s *manualScheduler) Flush() {
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// memoryStore records every write-through so tests can assert persistence
// ordering.
type memoryStore struct {
	mu    sync.Mutex
	sess  DaySession
	valid bool
	saves []DaySession
}

func (m *memoryStore) Load(_ context.Context, today string) (DaySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid || m.sess.Date != today {
		m.sess = NewDaySession(today)
		m.valid = true
		m.saves = append(m.saves, m.sess)
	}
	return m.sess, nil
}

func (m *memoryStore) Save(_ context.Context, sess DaySession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	m.valid = true
	m.saves = append(m.saves, sess)
	return nil
}

func (m *memoryStore) last() DaySession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

func testSet() []puzzle.Puzzle {
	return []puzzle.Puzzle{
		{ID: 1, Title: "one", Text: "first riddle", Hint: "h1", Answer: "alpha"},
		{ID: 2, Title: "two", Text: "second riddle", Hint: "h2", Answer: "beta"},
		{ID: 3, Title: "three", Text: "third riddle", Hint: "h3", Answer: "gamma"},
		{ID: 4, Title: "four", Text: "fourth riddle", Hint: "h4", Answer: "delta"},
		{ID: 5, Title: "five", Text: "fifth riddle", Hint: "h5", Answer: "epsilon"},
	}
}

func newTestEngine(t *testing.T) (*Engine, *manualScheduler, *memoryStore) {
	t.Helper()
	sched := &manualScheduler{}
	st := &memoryStore{}
	sess, err := st.Load(context.Background(), "2024-01-04")
	require.NoError(t, err)
	v := verify.New(verify.SHA256Digester{}, zerolog.Nop())
	e := NewEngine(3, testSet(), sess, st, v, sched, time.Second, zerolog.Nop())
	return e, sched, st
}

func TestAwardTable(t *testing.T) {
	assert.Equal(t, 100, Award(0, false))
	assert.Equal(t, 75, Award(1, false))
	assert.Equal(t, 50, Award(2, false))
	assert.Equal(t, 25, Award(3, false))
	assert.Equal(t, 25, Award(9, false))

	for attempts := 0; attempts < 6; attempts++ {
		assert.Equal(t, 0, Award(attempts, true), "attempts %d", attempts)
	}
}

func TestEmptyGuessIgnored(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	assert.Equal(t, SubmitResult{}, e.Submit(ctx, ""))
	assert.Equal(t, SubmitResult{}, e.Submit(ctx, "   \t"))
	assert.Equal(t, PhaseIdle, e.View().Phase)
	assert.Equal(t, 0, e.View().Attempts)
}

func TestWrongGuessIncrementsAttemptsAndSettles(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	ctx := context.Background()

	res := e.Submit(ctx, "omega")
	assert.True(t, res.Accepted)
	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, PhaseError, e.View().Phase)

	// Not idle yet: re-submission is a no-op until the settle delay passes.
	assert.False(t, e.Submit(ctx, "alpha").Accepted)

	sched.Flush()
	assert.Equal(t, PhaseIdle, e.View().Phase)
	assert.Equal(t, 1, e.View().Attempts)
}

// Wrong twice then correct with no hint: attempts were 2 at success, so the
// award is 50 and the history gains a single 50 entry.
func TestTwoWrongThenCorrectAwardsFifty(t *testing.T) {
	e, sched, st := newTestEngine(t)
	ctx := context.Background()

	e.Submit(ctx, "omega")
	sched.Flush()
	e.Submit(ctx, "sigma")
	sched.Flush()

	res := e.Submit(ctx, "ALPHA ")
	require.True(t, res.Correct)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 50, res.Award)
	assert.Equal(t, PhaseSuccess, e.View().Phase)

	sched.Flush()
	view := e.View()
	assert.Equal(t, 1, view.Completed)
	assert.Equal(t, 50, view.Score)
	assert.Equal(t, []int{50}, view.History)
	assert.Equal(t, PhaseIdle, view.Phase)

	saved := st.last()
	assert.Equal(t, 1, saved.Completed)
	assert.Equal(t, 50, saved.Score)
	assert.Equal(t, []int{50}, saved.History)
}

// Revealing the hint caps the award at zero regardless of attempts.
func TestHintZeroesAward(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	ctx := context.Background()

	hint, ok := e.RevealHint()
	require.True(t, ok)
	assert.Equal(t, "h1", hint)

	// Idempotent: revealing again changes nothing.
	hint, ok = e.RevealHint()
	require.True(t, ok)
	assert.Equal(t, "h1", hint)

	res := e.Submit(ctx, "alpha")
	require.True(t, res.Correct)
	assert.Equal(t, 0, res.Award)

	sched.Flush()
	assert.Equal(t, []int{0}, e.View().History)
	assert.Equal(t, 0, e.View().Score)
}

// Attempts and hint flag belong to the active puzzle only; both reset to
// zero when the engine advances.
func TestAttemptStateResetsOnAdvance(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	ctx := context.Background()

	e.Submit(ctx, "wrong")
	sched.Flush()
	e.RevealHint()
	res := e.Submit(ctx, "alpha")
	require.True(t, res.Correct)
	assert.Equal(t, 0, res.Award)
	sched.Flush()

	view := e.View()
	assert.Equal(t, 0, view.Attempts)
	assert.False(t, view.HintRevealed)

	res = e.Submit(ctx, "beta")
	require.True(t, res.Correct)
	assert.Equal(t, 100, res.Award, "fresh puzzle scores full marks")
}

func TestSubmitBlockedDuringSuccessSettle(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	ctx := context.Background()

	require.True(t, e.Submit(ctx, "alpha").Correct)
	// Success pending commit: the next puzzle is not live yet.
	assert.False(t, e.Submit(ctx, "beta").Accepted)

	sched.Flush()
	assert.True(t, e.Submit(ctx, "beta").Accepted)
}

// A settle timer firing twice (or after the engine advanced) must not double
// count.
func TestDuplicateSettleTimerIsNoop(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	ctx := context.Background()

	require.True(t, e.Submit(ctx, "alpha").Correct)
	sched.Flush()
	view := e.View()
	require.Equal(t, 1, view.Completed)

	sched.Flush() // nothing queued, but also re-arm and fire stale state
	assert.Equal(t, 1, e.View().Completed)
	assert.Equal(t, 100, e.View().Score)
}

func TestFullDayCompletion(t *testing.T) {
	e, sched, st := newTestEngine(t)
	ctx := context.Background()

	answers := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, answer := range answers {
		res := e.Submit(ctx, answer)
		require.True(t, res.Correct, "puzzle %d", i)
		sched.Flush()
	}

	view := e.View()
	assert.True(t, view.Done)
	assert.Equal(t, 5, view.Completed)
	assert.Equal(t, 500, view.Score)
	assert.Equal(t, []int{100, 100, 100, 100, 100}, view.History)

	// Terminal: no more guesses, no more hints.
	assert.False(t, e.Submit(ctx, "anything").Accepted)
	_, ok := e.RevealHint()
	assert.False(t, ok)

	text, done := e.Share()
	require.True(t, done)
	assert.Contains(t, text, "Daily Riddle #4")
	assert.Contains(t, text, "500/500")

	assert.Equal(t, 5, st.last().Completed)
}

func TestShareUnavailableUntilDone(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	_, done := e.Share()
	assert.False(t, done)

	e.Submit(context.Background(), "alpha")
	sched.Flush()
	_, done = e.Share()
	assert.False(t, done)
}

// The commit persists the updated session before in-memory state advances,
// so the store never trails a state the client has already seen.
func TestCommitWritesThroughBeforeAdvancing(t *testing.T) {
	e, sched, st := newTestEngine(t)
	ctx := context.Background()

	require.True(t, e.Submit(ctx, "alpha").Correct)
	// Success but not committed: nothing persisted yet beyond the reset.
	require.Len(t, st.saves, 1)
	assert.Equal(t, 0, st.last().Completed)

	sched.Flush()
	require.Len(t, st.saves, 2)
	assert.Equal(t, st.last(), DaySession{
		Date:      "2024-01-04",
		Completed: 1,
		Score:     100,
		History:   []int{100},
	})
	assert.Equal(t, 1, e.View().Completed)
}
