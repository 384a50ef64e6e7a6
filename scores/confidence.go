package scores

import (
	"math"

	"github.com/bwoodyear/level-replay/core"
)

// LeastConfidence scores a segment by the mean of 1 - p(best action):
// the less confident the policy, the higher the score.
type LeastConfidence struct{}

var _ core.Scorer = &LeastConfidence{}

func NewLeastConfidence() *LeastConfidence {
	return &LeastConfidence{}
}

func (l *LeastConfidence) RequiresValueBuffers() bool { return false }

func (l *LeastConfidence) Score(seg *core.Segment) (float64, bool) {
	if seg.Len() == 0 {
		return 0, false
	}
	total := float64(0)
	for _, logProbs := range seg.LogProbs {
		top, _ := topTwo(logProbs)
		total += 1 - math.Exp(top)
	}
	return total / float64(seg.Len()), true
}

// MinMargin scores a segment by 1 minus the mean margin between the two
// most probable actions at each step.
type MinMargin struct{}

var _ core.Scorer = &MinMargin{}

func NewMinMargin() *MinMargin {
	return &MinMargin{}
}

func (m *MinMargin) RequiresValueBuffers() bool { return false }

func (m *MinMargin) Score(seg *core.Segment) (float64, bool) {
	if seg.Len() == 0 {
		return 0, false
	}
	total := float64(0)
	for _, logProbs := range seg.LogProbs {
		top, second := topTwo(logProbs)
		total += math.Exp(top) - math.Exp(second)
	}
	return 1 - total/float64(seg.Len()), true
}

// topTwo returns the two largest log-probabilities of a step.
func topTwo(logProbs []float64) (float64, float64) {
	top := math.Inf(-1)
	second := math.Inf(-1)
	for _, lp := range logProbs {
		if lp > top {
			second = top
			top = lp
		} else if lp > second {
			second = lp
		}
	}
	return top, second
}
