package schedule

// Rand is the deterministic generator every client derives the master order
// from. It is mulberry32: all mixing happens in uint32 with natural
// wraparound, so the stream is bit-identical on every platform. Widening any
// intermediate to 64 bits, or rounding through float64, would silently
// desynchronize clients, which is why the steps below are kept in uint32
// even where Go would let wider types through.
type Rand struct {
	state uint32
}

// NewRand returns a generator for the given seed. Equal seeds produce equal
// streams, always.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 advances the state and returns the next 32-bit draw.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next draw scaled into [0, 1). A uint32 over 2^32 is
// exactly representable in a float64, so no precision is lost here.
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}
