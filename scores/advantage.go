package scores

import (
	"math"

	"github.com/bwoodyear/level-replay/core"
)

// GAE scores a segment by the signed mean advantage, return minus value
// estimate, over its steps.
type GAE struct{}

var _ core.Scorer = &GAE{}

func NewGAE() *GAE {
	return &GAE{}
}

func (g *GAE) RequiresValueBuffers() bool { return true }

func (g *GAE) Score(seg *core.Segment) (float64, bool) {
	if seg.Len() == 0 {
		return 0, false
	}
	total := float64(0)
	for t := range seg.Returns {
		total += seg.Returns[t] - seg.ValuePreds[t]
	}
	return total / float64(seg.Len()), true
}

// ValueL1 scores a segment by the mean absolute advantage.
type ValueL1 struct{}

var _ core.Scorer = &ValueL1{}

func NewValueL1() *ValueL1 {
	return &ValueL1{}
}

func (v *ValueL1) RequiresValueBuffers() bool { return true }

func (v *ValueL1) Score(seg *core.Segment) (float64, bool) {
	if seg.Len() == 0 {
		return 0, false
	}
	total := float64(0)
	for t := range seg.Returns {
		total += math.Abs(seg.Returns[t] - seg.ValuePreds[t])
	}
	return total / float64(seg.Len()), true
}

// OneStepTDError scores a segment by the mean absolute one-step
// temporal-difference error over consecutive step pairs. A segment
// shorter than two steps has no valid pair and contributes nothing.
type OneStepTDError struct{}

var _ core.Scorer = &OneStepTDError{}

func NewOneStepTDError() *OneStepTDError {
	return &OneStepTDError{}
}

func (o *OneStepTDError) RequiresValueBuffers() bool { return true }

func (o *OneStepTDError) Score(seg *core.Segment) (float64, bool) {
	if seg.Len() < 2 {
		return 0, false
	}
	total := float64(0)
	for t := 0; t < seg.Len()-1; t++ {
		total += math.Abs(seg.Rewards[t] + seg.ValuePreds[t] - seg.ValuePreds[t+1])
	}
	return total / float64(seg.Len()-1), true
}
