package sampler

import (
	"github.com/bwoodyear/level-replay/core"
)

// SeedRegistry is the immutable bijection between level seeds and the
// dense indices used by the ledger. The pool is fixed at construction.
type SeedRegistry struct {
	seeds []int
	index map[int]int
}

func NewSeedRegistry(seeds []int) *SeedRegistry {
	r := &SeedRegistry{
		seeds: make([]int, len(seeds)),
		index: make(map[int]int, len(seeds)),
	}
	copy(r.seeds, seeds)
	for i, seed := range r.seeds {
		r.index[seed] = i
	}
	return r
}

func (r *SeedRegistry) Len() int {
	return len(r.seeds)
}

func (r *SeedRegistry) IndexOf(seed int) (int, error) {
	i, ok := r.index[seed]
	if !ok {
		return 0, &core.UnknownSeedError{Seed: seed}
	}
	return i, nil
}

func (r *SeedRegistry) SeedAt(index int) int {
	return r.seeds[index]
}

// Range returns the smallest and largest seed in the pool.
func (r *SeedRegistry) Range() (int, int) {
	min, max := r.seeds[0], r.seeds[0]
	for _, seed := range r.seeds[1:] {
		if seed < min {
			min = seed
		}
		if seed > max {
			max = seed
		}
	}
	return min, max
}
