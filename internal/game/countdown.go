package game

import (
	"fmt"
	"time"

	"github.com/puzzleworks/daily-riddle/internal/schedule"
)

// UntilNextDay returns how long until the current daily set expires at the
// next local midnight.
func UntilNextDay(now time.Time) time.Duration {
	return schedule.NextMidnight(now).Sub(now)
}

// FormatCountdown renders a duration as HH:MM:SS for the countdown display.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
