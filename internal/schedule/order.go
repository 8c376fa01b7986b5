package schedule

import "sync"

// MasterSeed is the fixed seed shared by every client. Changing it reshuffles
// the entire schedule for everyone, so it is compiled in rather than
// configured.
const MasterSeed uint32 = 20240101

// MasterOrder returns the canonical permutation of the pool ids for the given
// seed. The loop is Fisher-Yates iterating i from len-1 down to 1 with
// j = floor(r * (i+1)); that exact shape is part of the cross-client
// contract — a different (even unbiased) shuffle yields a different
// permutation for the same seed and breaks agreement on the daily sets.
func MasterOrder(ids []int, seed uint32) []int {
	order := make([]int, len(ids))
	copy(order, ids)
	rng := NewRand(seed)
	for i := len(order) - 1; i >= 1; i-- {
		r := rng.Float64()
		j := int(r * float64(i+1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// OrderCache memoizes the master order for the process lifetime. The order is
// pure derived state: recomputing it would reproduce the same slice, the
// cache only avoids redoing the shuffle on every request. Write-once, so
// concurrent readers never race.
type OrderCache struct {
	once  sync.Once
	order []int
}

// Get returns the cached master order, building it on first use.
func (c *OrderCache) Get(ids []int, seed uint32) []int {
	c.once.Do(func() {
		c.order = MasterOrder(ids, seed)
	})
	return c.order
}
