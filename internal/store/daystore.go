package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/game"
)

// Key suffixes of one device's day session. History is a compact JSON array
// of the per-puzzle awards in completion order.
const (
	keyDate      = "date"
	keyCompleted = "completed"
	keyScore     = "score"
	keyHistory   = "history"
)

// DayStore implements game.SessionStore on top of a KV backend, scoped to one
// device by key prefix.
type DayStore struct {
	kv     KV
	prefix string
	logger zerolog.Logger
}

// NewDayStore scopes the KV to the given device.
func NewDayStore(kv KV, deviceID string, logger zerolog.Logger) *DayStore {
	return &DayStore{
		kv:     kv,
		prefix: "riddle:" + deviceID + ":",
		logger: logger,
	}
}

var _ game.SessionStore = (*DayStore)(nil)

func (s *DayStore) key(suffix string) string {
	return s.prefix + suffix
}

// Load resumes the stored session for today, or resets it when the stored
// date is stale. The reset is persisted before the session is handed out.
// Malformed values never surface: each falls back to its default, and the
// score is reconciled against the history so a partial write cannot inflate
// it.
func (s *DayStore) Load(ctx context.Context, today string) (game.DaySession, error) {
	date := s.getString(ctx, keyDate)
	if date != today {
		sess := game.NewDaySession(today)
		if err := s.Save(ctx, sess); err != nil {
			return game.DaySession{}, fmt.Errorf("persist day reset: %w", err)
		}
		return sess, nil
	}

	sess := game.NewDaySession(today)
	sess.History = s.getHistory(ctx)
	sess.Completed = s.getInt(ctx, keyCompleted)
	if sess.Completed < 0 || sess.Completed > len(sess.History) {
		sess.Completed = len(sess.History)
	}

	sum := 0
	for _, points := range sess.History {
		sum += points
	}
	sess.Score = s.getInt(ctx, keyScore)
	if sess.Score != sum {
		s.logger.Warn().
			Int("stored", sess.Score).
			Int("derived", sum).
			Msg("stored score disagrees with history, using history")
		sess.Score = sum
	}
	return sess, nil
}

// Save writes the full session through. The date key goes last: a write torn
// before it leaves a stale date behind, which the next Load resolves by
// resetting rather than by trusting partial state.
func (s *DayStore) Save(ctx context.Context, sess game.DaySession) error {
	history, err := json.Marshal(sess.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	writes := []struct{ key, value string }{
		{keyCompleted, strconv.Itoa(sess.Completed)},
		{keyScore, strconv.Itoa(sess.Score)},
		{keyHistory, string(history)},
		{keyDate, sess.Date},
	}
	for _, w := range writes {
		if err := s.kv.Set(ctx, s.key(w.key), w.value); err != nil {
			return fmt.Errorf("persist %s: %w", w.key, err)
		}
	}
	return nil
}

func (s *DayStore) getString(ctx context.Context, suffix string) string {
	val, err := s.kv.Get(ctx, s.key(suffix))
	if err != nil {
		s.logger.Warn().Err(err).Str("key", suffix).Msg("store read failed, using default")
		return ""
	}
	return val
}

func (s *DayStore) getInt(ctx context.Context, suffix string) int {
	val := s.getString(ctx, suffix)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		s.logger.Warn().Str("key", suffix).Str("value", val).Msg("malformed stored int, using default")
		return 0
	}
	return n
}

func (s *DayStore) getHistory(ctx context.Context) []int {
	val := s.getString(ctx, keyHistory)
	if val == "" {
		return []int{}
	}
	var history []int
	if err := json.Unmarshal([]byte(val), &history); err != nil {
		s.logger.Warn().Str("value", val).Msg("malformed stored history, using default")
		return []int{}
	}
	return history
}
