package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/puzzle"
	"github.com/puzzleworks/daily-riddle/internal/verify"
)

// Phase is the verification phase of the active puzzle.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseChecking Phase = "checking"
	PhaseSuccess  Phase = "success"
	PhaseError    Phase = "error"
)

// AttemptState tracks the single active puzzle. It is in-memory only and is
// reset to zero exactly when the engine advances; persisted state never
// includes it, a reload re-derives it from scratch.
type AttemptState struct {
	Attempts     int
	HintRevealed bool
	Phase        Phase
}

// Scheduler runs a function after a delay. The engine uses it for settle
// delays; tests substitute a manual implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler is the production scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Award maps the attempt count at the moment of success to points. Revealing
// the hint caps the puzzle at zero regardless of attempts.
func Award(attempts int, hintRevealed bool) int {
	if hintRevealed {
		return 0
	}
	switch attempts {
	case 0:
		return 100
	case 1:
		return 75
	case 2:
		return 50
	default:
		return 25
	}
}

// Engine is the scoring state machine for one device's current day. All
// transitions happen under the mutex on discrete events: a guess submission,
// a hint reveal, or a settle timer firing. Settle timers capture the
// generation and puzzle index they were armed for and no-op if the engine
// has moved on.
type Engine struct {
	mu sync.Mutex

	day      int
	set      []puzzle.Puzzle
	sess     DaySession
	attempt  AttemptState
	gen      uint64
	store    SessionStore
	verifier *verify.Verifier
	sched    Scheduler
	settle   time.Duration
	logger   zerolog.Logger
}

// NewEngine builds the state machine for one day's set of puzzles, resuming
// the given session.
func NewEngine(day int, set []puzzle.Puzzle, sess DaySession, store SessionStore, verifier *verify.Verifier, sched Scheduler, settle time.Duration, logger zerolog.Logger) *Engine {
	return &Engine{
		day:      day,
		set:      set,
		sess:     sess,
		attempt:  AttemptState{Phase: PhaseIdle},
		store:    store,
		verifier: verifier,
		sched:    sched,
		settle:   settle,
		logger:   logger,
	}
}

// SubmitResult reports the outcome of a guess submission.
type SubmitResult struct {
	Accepted bool `json:"accepted"`
	Correct  bool `json:"correct"`
	Attempts int  `json:"attempts"`
	Award    int  `json:"award,omitempty"`
}

// Submit runs a guess through verification. Empty guesses, and submissions
// while the machine is not idle (a verification in flight, a settle delay
// pending, or the day already complete), are no-ops.
func (e *Engine) Submit(ctx context.Context, guess string) SubmitResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doneLocked() || e.attempt.Phase != PhaseIdle || strings.TrimSpace(guess) == "" {
		return SubmitResult{}
	}

	e.attempt.Phase = PhaseChecking
	current := e.set[e.sess.Completed]
	correct := e.verifier.Verify(guess, current)

	gen := e.gen
	index := e.sess.Completed

	if !correct {
		e.attempt.Attempts++
		e.attempt.Phase = PhaseError
		e.sched.AfterFunc(e.settle, func() { e.settleError(gen, index) })
		return SubmitResult{Accepted: true, Attempts: e.attempt.Attempts}
	}

	awarded := Award(e.attempt.Attempts, e.attempt.HintRevealed)
	e.attempt.Phase = PhaseSuccess
	e.sched.AfterFunc(e.settle, func() { e.commit(gen, index, awarded) })
	return SubmitResult{Accepted: true, Correct: true, Attempts: e.attempt.Attempts, Award: awarded}
}

// settleError returns the machine to idle after a wrong guess, unless the
// engine has already advanced past the puzzle the timer was armed for.
func (e *Engine) settleError(gen uint64, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || index != e.sess.Completed || e.attempt.Phase != PhaseError {
		return
	}
	e.attempt.Phase = PhaseIdle
}

// commit finalizes a solved puzzle: the updated session is persisted first,
// then in-memory state advances and the attempt state resets for the next
// puzzle.
func (e *Engine) commit(gen uint64, index int, awarded int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || index != e.sess.Completed || e.attempt.Phase != PhaseSuccess {
		return
	}

	next := e.sess
	next.History = append(append([]int{}, e.sess.History...), awarded)
	next.Score += awarded
	next.Completed++

	if err := e.store.Save(context.Background(), next); err != nil {
		e.logger.Error().Err(err).Str("date", next.Date).Msg("persist day session failed")
	}

	e.sess = next
	e.attempt = AttemptState{Phase: PhaseIdle}
	e.gen++

	e.logger.Info().
		Int("day", e.day).
		Int("completed", next.Completed).
		Int("award", awarded).
		Msg("puzzle solved")
}

// RevealHint marks the hint as used for the active puzzle and returns its
// text. One-way and idempotent: repeated calls change nothing further, and
// the puzzle's eventual award is capped at zero.
func (e *Engine) RevealHint() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doneLocked() {
		return "", false
	}
	e.attempt.HintRevealed = true
	return e.set[e.sess.Completed].Hint, true
}

func (e *Engine) doneLocked() bool {
	return e.sess.Completed >= len(e.set)
}

// Date returns the local date this engine was built for.
func (e *Engine) Date() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Date
}

// PuzzleView is the client-safe projection of a puzzle: no answer, no
// digest, hint only once revealed.
type PuzzleView struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Hint   string `json:"hint,omitempty"`
	Solved bool   `json:"solved"`
}

// View is a consistent snapshot of the engine for the HTTP surface.
type View struct {
	Day          int          `json:"day"`
	Date         string       `json:"date"`
	Puzzles      []PuzzleView `json:"puzzles"`
	Completed    int          `json:"completed"`
	Score        int          `json:"score"`
	History      []int        `json:"history"`
	Done         bool         `json:"done"`
	Phase        Phase        `json:"phase"`
	Attempts     int          `json:"attempts"`
	HintRevealed bool         `json:"hint_revealed"`
}

// View snapshots the current state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	puzzles := make([]PuzzleView, len(e.set))
	for i, p := range e.set {
		pv := PuzzleView{ID: p.ID, Title: p.Title, Text: p.Text, Solved: i < e.sess.Completed}
		if i == e.sess.Completed && e.attempt.HintRevealed {
			pv.Hint = p.Hint
		}
		puzzles[i] = pv
	}

	return View{
		Day:          e.day + 1,
		Date:         e.sess.Date,
		Puzzles:      puzzles,
		Completed:    e.sess.Completed,
		Score:        e.sess.Score,
		History:      append([]int{}, e.sess.History...),
		Done:         e.doneLocked(),
		Phase:        e.attempt.Phase,
		Attempts:     e.attempt.Attempts,
		HintRevealed: e.attempt.HintRevealed,
	}
}

// Share renders the day's summary. Only available once all puzzles are done.
func (e *Engine) Share() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.doneLocked() {
		return "", false
	}
	return ShareText(e.day+1, e.sess), true
}
