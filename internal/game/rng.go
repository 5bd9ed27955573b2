package game

// RNG is a small deterministic random generator (mulberry32). Every source
// of randomness in the engine goes through an explicitly seeded RNG so that
// a seed fully reproduces a game; nothing reads from a global source.
type RNG struct {
	state uint32
}

// NewRNG returns a generator seeded from the given value. Equal seeds
// produce equal sequences.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed) ^ uint32(seed>>32)}
}

func (r *RNG) next() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.next()) / (1 << 32)
}

// Intn returns a value in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("game: Intn called with non-positive n")
	}
	return int(uint64(r.next()) * uint64(n) >> 32)
}

// Chance returns true with the given percent probability (0-100).
func (r *RNG) Chance(percent int) bool {
	return r.Intn(100) < percent
}

// Shuffle permutes n elements in place using the swap function.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
