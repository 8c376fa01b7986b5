package game

import (
	"fmt"
	"strings"
)

// Rank labels by cumulative score. The thresholds are part of the share
// format contract: exactly 500 gets its own label even though it also
// satisfies the 400 branch.
func Rank(score int) string {
	switch {
	case score == 500:
		return "Enigmatologist"
	case score >= 400:
		return "Riddle Sage"
	case score >= 200:
		return "Puzzler"
	default:
		return "Apprentice"
	}
}

// emojiFor encodes one history entry for the share bar.
func emojiFor(points int) string {
	switch points {
	case 100:
		return "🟩"
	case 75:
		return "🟨"
	case 50:
		return "🟧"
	case 25:
		return "🟥"
	default:
		return "⬛"
	}
}

// ShareText renders the deterministic day summary: day number, rank, score
// out of 500, and one emoji per completed puzzle in completion order.
func ShareText(dayNumber int, sess DaySession) string {
	var bar strings.Builder
	for _, points := range sess.History {
		bar.WriteString(emojiFor(points))
	}
	return fmt.Sprintf("Daily Riddle #%d\n%s - %d/500\n%s", dayNumber, Rank(sess.Score), sess.Score, bar.String())
}
