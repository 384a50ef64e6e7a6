package scores

import (
	"math"

	"github.com/bwoodyear/level-replay/core"
)

// PolicyEntropy scores a segment by the mean per-step entropy of the
// action distribution, normalized by the maximum entropy log(numActions)
// so a uniform policy scores 1.
type PolicyEntropy struct {
	maxEntropy float64
}

var _ core.Scorer = &PolicyEntropy{}

func NewPolicyEntropy(numActions int) *PolicyEntropy {
	n := float64(numActions)
	return &PolicyEntropy{
		maxEntropy: -(1 / n) * math.Log(1/n) * n,
	}
}

func (p *PolicyEntropy) RequiresValueBuffers() bool { return false }

func (p *PolicyEntropy) Score(seg *core.Segment) (float64, bool) {
	if seg.Len() == 0 {
		return 0, false
	}
	total := float64(0)
	for _, logProbs := range seg.LogProbs {
		for _, lp := range logProbs {
			total += -math.Exp(lp) * lp
		}
	}
	return total / float64(seg.Len()) / p.maxEntropy, true
}
