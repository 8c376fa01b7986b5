package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riddle_guesses_total",
		Help: "Guess submissions by outcome.",
	}, []string{"outcome"})

	hintsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riddle_hints_revealed_total",
		Help: "Hint reveals across all devices.",
	})

	daysCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riddle_days_completed_total",
		Help: "Devices that finished all five puzzles of a day.",
	})
)

const (
	outcomeCorrect  = "correct"
	outcomeWrong    = "wrong"
	outcomeRejected = "rejected"
)
