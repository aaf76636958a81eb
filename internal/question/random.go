package question

import (
	"math/rand/v2"
	"strconv"
	"sync"
)

// Random is the pseudo-random source behind fallback questions and prompt
// variation tokens. It is safe for concurrent use; equal seeds replay equal
// sequences.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewUnseededRandom returns a Random seeded from the runtime's entropy source.
func NewUnseededRandom() *Random {
	return NewRandom(rand.Uint64())
}

// IntRange returns a uniformly distributed integer in [lo, hi].
func (r *Random) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.IntN(hi-lo+1)
}

// Shuffle returns a shuffled copy of items.
func (r *Random) Shuffle(items []string) []string {
	out := append([]string(nil), items...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Token returns a short base-36 token.
func (r *Random) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strconv.FormatUint(r.rng.Uint64()>>24, 36)
}
