package schedule

import "time"

// Epoch parameters of the schedule: day zero is 2024-01-01 in the player's
// local timezone. Local wall-clock is deliberate — players in different
// timezones roll over to the next set at different real-world instants, and
// that is accepted behavior, not a bug.
const (
	epochYear  = 2024
	epochMonth = time.January
	epochDay   = 1

	dayMillis = 86_400_000
)

// Epoch returns local midnight of the epoch date in now's location.
func Epoch(now time.Time) time.Time {
	return time.Date(epochYear, epochMonth, epochDay, 0, 0, 0, 0, now.Location())
}

// midnight truncates t to local midnight.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayOffset maps a wall-clock instant to the number of local days since the
// epoch: both ends truncated to local midnight, millisecond difference
// floor-divided by 86,400,000. Never negative; clocks set before the epoch
// clamp to day zero.
func DayOffset(now time.Time) int {
	ms := midnight(now).Sub(Epoch(now)).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms / dayMillis)
}

// DateKey renders the local calendar date as the string the persistence
// layer scopes a session by.
func DateKey(now time.Time) string {
	return now.Format("2006-01-02")
}

// NextMidnight returns the first instant of the next local day, when the
// current daily set expires.
func NextMidnight(now time.Time) time.Time {
	return midnight(now).AddDate(0, 0, 1)
}
