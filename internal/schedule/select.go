package schedule

// PuzzlesPerDay is the size of each daily set.
const PuzzlesPerDay = 5

// DailySet picks the five puzzle ids for the given day offset out of the
// master order: a sliding window of five that wraps around, so the pool is
// consumed five-at-a-time and recycles once exhausted. Repeats within one
// day's set can only happen when the pool itself is smaller than five.
func DailySet(offset int, order []int) []int {
	set := make([]int, PuzzlesPerDay)
	for k := 0; k < PuzzlesPerDay; k++ {
		set[k] = order[(offset*PuzzlesPerDay+k)%len(order)]
	}
	return set
}
