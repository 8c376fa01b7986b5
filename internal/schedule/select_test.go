package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pool of 7, seed 42, day offset 3: the window starts at 15 and wraps, so the
// set is positions (15..19) mod 7 of the master order.
func TestDailySetWrappingWindow(t *testing.T) {
	order := MasterOrder([]int{11, 22, 33, 44, 55, 66, 77}, 42)
	require.Equal(t, []int{44, 22, 11, 66, 77, 33, 55}, order)

	set := DailySet(3, order)
	assert.Equal(t, []int{22, 11, 66, 77, 33}, set)
}

func TestDailySetAlwaysFiveFromPool(t *testing.T) {
	order := MasterOrder([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, MasterSeed)
	members := map[int]bool{}
	for _, id := range order {
		members[id] = true
	}

	for offset := 0; offset < 50; offset++ {
		set := DailySet(offset, order)
		require.Len(t, set, PuzzlesPerDay, "offset %d", offset)
		seen := map[int]bool{}
		for _, id := range set {
			assert.True(t, members[id], "offset %d id %d", offset, id)
			assert.False(t, seen[id], "offset %d repeated id %d", offset, id)
			seen[id] = true
		}
	}
}

func TestDailySetRepeatsOnlyForTinyPools(t *testing.T) {
	order := MasterOrder([]int{1, 2, 3}, MasterSeed)
	set := DailySet(0, order)
	require.Len(t, set, PuzzlesPerDay)
	// A 3-puzzle pool must repeat within one day's set.
	seen := map[int]int{}
	for _, id := range set {
		seen[id]++
	}
	assert.Len(t, seen, 3)
}
