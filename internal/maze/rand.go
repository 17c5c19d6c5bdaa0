package maze

// RNG is the randomness the generator consumes: uniform integers in [0, n).
type RNG interface {
	Intn(n int) int
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// shuffle arranges dirs in random order with a partial Fisher-Yates pass:
// slot i swaps with a uniform pick from [i, n).
func shuffle(rng RNG, dirs []Direction) {
	n := len(dirs)
	for i := 0; i < n-1; i++ {
		j := i + rng.Intn(n-i)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
}
