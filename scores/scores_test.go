package scores

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwoodyear/level-replay/core"
)

func logDist(probs ...float64) []float64 {
	logProbs := make([]float64, len(probs))
	for i, p := range probs {
		logProbs[i] = math.Log(p)
	}
	return logProbs
}

func TestForStrategy(t *testing.T) {
	for _, strategy := range []core.Strategy{
		core.StrategyPolicyEntropy,
		core.StrategyLeastConfidence,
		core.StrategyMinMargin,
		core.StrategyGAE,
		core.StrategyValueL1,
		core.StrategyOneStepTDError,
	} {
		scorer, err := ForStrategy(strategy, 4)
		require.NoError(t, err)
		require.NotNil(t, scorer)
	}

	_, err := ForStrategy(core.StrategyRandom, 4)
	var unsupported *core.UnsupportedStrategyError
	assert.ErrorAs(t, err, &unsupported)
}

func TestRequiresValueBuffers(t *testing.T) {
	assert.False(t, NewPolicyEntropy(4).RequiresValueBuffers())
	assert.False(t, NewLeastConfidence().RequiresValueBuffers())
	assert.False(t, NewMinMargin().RequiresValueBuffers())
	assert.True(t, NewGAE().RequiresValueBuffers())
	assert.True(t, NewValueL1().RequiresValueBuffers())
	assert.True(t, NewOneStepTDError().RequiresValueBuffers())
}

func TestPolicyEntropyUniformIsOne(t *testing.T) {
	seg := &core.Segment{
		LogProbs: [][]float64{
			logDist(0.25, 0.25, 0.25, 0.25),
			logDist(0.25, 0.25, 0.25, 0.25),
		},
	}

	score, ok := NewPolicyEntropy(4).Score(seg)
	require.True(t, ok)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestPolicyEntropyPeakedIsLow(t *testing.T) {
	seg := &core.Segment{
		LogProbs: [][]float64{logDist(0.97, 0.01, 0.01, 0.01)},
	}

	score, ok := NewPolicyEntropy(4).Score(seg)
	require.True(t, ok)
	assert.Less(t, score, 0.2)
	assert.Greater(t, score, 0.0)
}

func TestLeastConfidence(t *testing.T) {
	seg := &core.Segment{
		LogProbs: [][]float64{
			logDist(0.6, 0.4),
			logDist(0.8, 0.2),
		},
	}

	score, ok := NewLeastConfidence().Score(seg)
	require.True(t, ok)
	// mean(1-0.6, 1-0.8)
	assert.InDelta(t, 0.3, score, 1e-12)
}

func TestMinMargin(t *testing.T) {
	seg := &core.Segment{
		LogProbs: [][]float64{
			logDist(0.6, 0.4),
			logDist(0.5, 0.5),
		},
	}

	score, ok := NewMinMargin().Score(seg)
	require.True(t, ok)
	// 1 - mean(0.6-0.4, 0.5-0.5)
	assert.InDelta(t, 0.9, score, 1e-12)
}

func TestMinMarginUnorderedActions(t *testing.T) {
	// Top two probabilities must be found regardless of position.
	seg := &core.Segment{
		LogProbs: [][]float64{logDist(0.1, 0.7, 0.2)},
	}

	score, ok := NewMinMargin().Score(seg)
	require.True(t, ok)
	assert.InDelta(t, 1-(0.7-0.2), score, 1e-12)
}

func TestGAESigned(t *testing.T) {
	seg := &core.Segment{
		LogProbs:   make([][]float64, 2),
		Returns:    []float64{1.0, 2.0},
		ValuePreds: []float64{1.5, 3.0},
	}

	score, ok := NewGAE().Score(seg)
	require.True(t, ok)
	// mean(-0.5, -1.0): the sign survives.
	assert.InDelta(t, -0.75, score, 1e-12)
}

func TestValueL1(t *testing.T) {
	seg := &core.Segment{
		LogProbs:   make([][]float64, 2),
		Returns:    []float64{1.0, 2.0},
		ValuePreds: []float64{1.5, 3.0},
	}

	score, ok := NewValueL1().Score(seg)
	require.True(t, ok)
	assert.InDelta(t, 0.75, score, 1e-12)
}

func TestOneStepTDError(t *testing.T) {
	seg := &core.Segment{
		LogProbs:   make([][]float64, 3),
		Rewards:    []float64{1.0, 0.5, 0.0},
		ValuePreds: []float64{0.5, 0.2, 0.8},
	}

	score, ok := NewOneStepTDError().Score(seg)
	require.True(t, ok)
	// mean(|1.0+0.5-0.2|, |0.5+0.2-0.8|) = mean(1.3, 0.1)
	assert.InDelta(t, 0.7, score, 1e-12)
}

func TestOneStepTDErrorShortSegment(t *testing.T) {
	seg := &core.Segment{
		LogProbs:   make([][]float64, 1),
		Rewards:    []float64{1.0},
		ValuePreds: []float64{0.5},
	}

	_, ok := NewOneStepTDError().Score(seg)
	assert.False(t, ok)
}

func TestEmptySegmentsScoreNothing(t *testing.T) {
	seg := &core.Segment{}

	for _, scorer := range []core.Scorer{
		NewPolicyEntropy(4), NewLeastConfidence(), NewMinMargin(),
		NewGAE(), NewValueL1(), NewOneStepTDError(),
	} {
		_, ok := scorer.Score(seg)
		assert.False(t, ok)
	}
}
