package sampler

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Transform names one of the closed set of score-to-weight shapes.
type Transform string

const (
	TransformConstant  Transform = "constant"
	TransformMax       Transform = "max"
	TransformEpsGreedy Transform = "eps_greedy"
	TransformRank      Transform = "rank"
	TransformPower     Transform = "power"
	TransformSoftmax   Transform = "softmax"
)

var transforms = map[Transform]bool{
	TransformConstant:  true,
	TransformMax:       true,
	TransformEpsGreedy: true,
	TransformRank:      true,
	TransformPower:     true,
	TransformSoftmax:   true,
}

func ParseTransform(name string) (Transform, error) {
	t := Transform(name)
	if !transforms[t] {
		return "", fmt.Errorf("unsupported score transform, %s", name)
	}
	return t, nil
}

// transformWeights maps a raw score vector to unnormalized sampling
// weights. Unseen masking and normalization happen in SampleWeights.
func (s *LevelSampler) transformWeights(transform Transform, temperature float64, scores []float64) []float64 {
	n := len(scores)
	weights := make([]float64, n)

	switch transform {
	case TransformConstant:
		for i := range weights {
			weights[i] = 1
		}
	case TransformMax:
		// The argmax only ranges over seen levels; ties are broken
		// uniformly at random.
		masked := make([]float64, n)
		copy(masked, scores)
		for i, u := range s.ledger.Unseen() {
			if u > 0 {
				masked[i] = math.Inf(-1)
			}
		}
		maxVal := floats.Max(masked)
		argmax := make([]int, 0)
		for i, v := range masked {
			if v == maxVal {
				argmax = append(argmax, i)
			}
		}
		weights[argmax[s.rand.Intn(len(argmax))]] = 1
	case TransformEpsGreedy:
		weights[floats.MaxIdx(scores)] = 1 - s.cfg.Eps
		for i := range weights {
			weights[i] += s.cfg.Eps / float64(n)
		}
	case TransformRank:
		for i, rank := range descendingRanks(scores) {
			weights[i] = 1 / math.Pow(float64(rank), 1/temperature)
		}
	case TransformPower:
		// Staleness weighting already keeps zero-score levels
		// reachable; without it a small floor does the same.
		eps := 1e-3
		if s.cfg.StalenessCoef > 0 {
			eps = 0
		}
		for i, score := range scores {
			weights[i] = math.Pow(score+eps, 1/temperature)
		}
	case TransformSoftmax:
		for i, score := range scores {
			weights[i] = math.Exp(score / temperature)
		}
	}

	return weights
}

// descendingRanks assigns rank 1 to the highest score, rank len(scores)
// to the lowest.
func descendingRanks(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	ranks := make([]int, len(scores))
	for rank, idx := range order {
		ranks[idx] = rank + 1
	}
	return ranks
}
