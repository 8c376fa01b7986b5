package game

import "context"

// DaySession is the persisted, date-scoped progress record. It is superseded
// (never deleted) when the stored date stops matching the local calendar day.
type DaySession struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Score     int    `json:"score"`
	History   []int  `json:"history"`
}

// NewDaySession returns the zero progress record for the given local date.
func NewDaySession(date string) DaySession {
	return DaySession{Date: date, History: []int{}}
}

// SessionStore is the persistence contract for day sessions.
//
// Load compares the stored date against today: on mismatch it resets the
// session to zero for today and persists that reset before returning.
// Malformed or missing stored values substitute defaults and are never
// surfaced. Save writes the full session through; the engine calls it before
// updating in-memory state so a reload mid-session never loses a completed
// puzzle's score.
type SessionStore interface {
	Load(ctx context.Context, today string) (DaySession, error)
	Save(ctx context.Context, sess DaySession) error
}
