package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwoodyear/level-replay/core"
)

func TestSampleRandomStaysInPool(t *testing.T) {
	seeds := []int{11, 22, 33}
	cfg := DefaultConfig(seeds, 2, 1)
	s := newTestSampler(t, cfg)

	for i := 0; i < 100; i++ {
		seed := s.Sample()
		assert.Contains(t, seeds, seed)
	}
}

func TestSampleSequentialWrapsAround(t *testing.T) {
	cfg := DefaultConfig([]int{10, 20, 30}, 2, 1)
	cfg.Strategy = core.StrategySequential
	s := newTestSampler(t, cfg)

	got := make([]int, 0)
	for i := 0; i < 7; i++ {
		got = append(got, s.Sample())
	}
	assert.Equal(t, []int{10, 20, 30, 10, 20, 30, 10}, got)
}

func TestSeedRange(t *testing.T) {
	cfg := DefaultConfig([]int{104, 3, 77}, 2, 1)
	s := newTestSampler(t, cfg)

	min, max := s.SeedRange()
	assert.Equal(t, 3, min)
	assert.Equal(t, 104, max)
}

func TestFixedScheduleBoundaryReplays(t *testing.T) {
	// 1 of 5 seeds seen puts proportionSeen exactly at rho. With nu=0
	// the draw always exceeds nu, so the scheduler must replay, and the
	// replay distribution only carries mass on the seen seed.
	cfg := DefaultConfig([]int{0, 1, 2, 3, 4}, 2, 1)
	cfg.Strategy = core.StrategyValueL1
	cfg.Rho = 0.2
	cfg.Nu = 0
	s := newTestSampler(t, cfg)
	s.ledger.Finalize(0, 2, 1.0, 5)

	for i := 0; i < 20; i++ {
		assert.Equal(t, 2, s.Sample())
	}
}

func TestFixedScheduleBelowRhoSamplesUnseen(t *testing.T) {
	cfg := DefaultConfig([]int{0, 1, 2, 3, 4}, 2, 1)
	cfg.Strategy = core.StrategyValueL1
	cfg.Rho = 0.9
	s := newTestSampler(t, cfg)
	s.ledger.Finalize(0, 2, 1.0, 5)

	for i := 0; i < 50; i++ {
		assert.NotEqual(t, 2, s.Sample())
	}
}

func TestProportionateSchedule(t *testing.T) {
	cfg := DefaultConfig([]int{0, 1, 2, 3}, 2, 1)
	cfg.Strategy = core.StrategyValueL1
	cfg.ReplaySchedule = ScheduleProportionate
	cfg.Rho = 0.2
	s := newTestSampler(t, cfg)
	for i := 0; i < 4; i++ {
		s.ledger.Finalize(0, i, float64(i+1), 5)
	}

	// Everything seen: the draw is always below proportionSeen=1.
	for i := 0; i < 50; i++ {
		assert.Contains(t, []int{0, 1, 2, 3}, s.Sample())
	}
}

func TestUnseenExhaustion(t *testing.T) {
	cfg := DefaultConfig([]int{0, 1, 2, 3, 4}, 2, 1)
	cfg.Strategy = core.StrategyValueL1
	s := newTestSampler(t, cfg)
	for i := 0; i < 5; i++ {
		s.ledger.Finalize(0, i, float64(i)+0.5, 3)
	}

	require.Zero(t, s.ledger.NumUnseen())

	// Once everything is seen the fixed schedule replays on every draw,
	// regardless of the nu comparison.
	for i := 0; i < 100; i++ {
		assert.True(t, s.shouldReplay(s.proportionSeen()))
	}
	for i := 0; i < 100; i++ {
		assert.Contains(t, []int{0, 1, 2, 3, 4}, s.Sample())
	}
}

func TestStalenessResetOnSample(t *testing.T) {
	cfg := DefaultConfig([]int{0, 1, 2, 3}, 2, 1)
	cfg.Strategy = core.StrategyValueL1
	cfg.StalenessCoef = 0.3
	s := newTestSampler(t, cfg)
	for i := 0; i < 4; i++ {
		s.ledger.Finalize(0, i, float64(i+1), 5)
	}

	for i := 0; i < 25; i++ {
		before := make([]float64, 4)
		copy(before, s.ledger.Staleness())

		seed := s.Sample()
		selected, err := s.registry.IndexOf(seed)
		require.NoError(t, err)

		after := s.ledger.Staleness()
		assert.Zero(t, after[selected])
		for idx := range after {
			if idx != selected {
				assert.Equal(t, before[idx]+1, after[idx])
			}
		}
	}
}

func rolloutLogProbs(pBest float64, numActions int) []float64 {
	rest := (1 - pBest) / float64(numActions-1)
	logProbs := make([]float64, numActions)
	logProbs[0] = math.Log(pBest)
	for a := 1; a < numActions; a++ {
		logProbs[a] = math.Log(rest)
	}
	return logProbs
}

// twoWorkerBatch builds a 6-step batch: worker 0 carries a stale done
// flag at offset 0, finishes seed 7's episode at step 3 and starts seed
// 8; worker 1 runs seed 9 the whole way with no termination.
func twoWorkerBatch(numActions int) *core.RolloutBatch {
	const steps = 6
	batch := &core.RolloutBatch{
		Dones:    make([][]bool, steps),
		Seeds:    make([][]int, steps),
		LogProbs: make([][][]float64, steps),
	}
	for t := 0; t < steps; t++ {
		batch.Dones[t] = []bool{t == 0 || t == 3, false}
		workerSeed := 7
		if t >= 3 {
			workerSeed = 8
		}
		batch.Seeds[t] = []int{workerSeed, 9}
		batch.LogProbs[t] = [][]float64{
			rolloutLogProbs(0.6, numActions),
			rolloutLogProbs(0.6, numActions),
		}
	}
	return batch
}

func TestUpdateWithRolloutsSegments(t *testing.T) {
	cfg := DefaultConfig([]int{7, 8, 9}, 2, 2)
	cfg.Strategy = core.StrategyLeastConfidence
	s := newTestSampler(t, cfg)

	require.NoError(t, s.UpdateWithRollouts(twoWorkerBatch(2)))

	// Every step scores 1 - 0.6 = 0.4 under least_confidence.
	// Worker 0, seed 7: finalized over steps [0,3).
	assert.InDelta(t, 0.4, s.ledger.Scores()[0], 1e-12)
	assert.Zero(t, s.ledger.Unseen()[0])

	// Worker 0, seed 8: partial tail [3,6).
	partial, steps := s.ledger.PartialAt(0, 1)
	assert.InDelta(t, 0.4, partial, 1e-12)
	assert.Equal(t, 3, steps)
	assert.Equal(t, float64(1), s.ledger.Unseen()[1])

	// Worker 1, seed 9: whole batch partial.
	partial, steps = s.ledger.PartialAt(1, 2)
	assert.InDelta(t, 0.4, partial, 1e-12)
	assert.Equal(t, 6, steps)
}

func TestAfterUpdateFlushesPartials(t *testing.T) {
	cfg := DefaultConfig([]int{7, 8, 9}, 2, 2)
	cfg.Strategy = core.StrategyLeastConfidence
	cfg.Alpha = 0.5
	s := newTestSampler(t, cfg)

	require.NoError(t, s.UpdateWithRollouts(twoWorkerBatch(2)))
	s.AfterUpdate()

	// The seed 8 partial of (0.4, 3 steps) becomes one EMA step from 0.
	assert.InDelta(t, 0.2, s.ledger.Scores()[1], 1e-12)
	partial, steps := s.ledger.PartialAt(0, 1)
	assert.Zero(t, partial)
	assert.Zero(t, steps)

	partial, steps = s.ledger.PartialAt(1, 2)
	assert.Zero(t, partial)
	assert.Zero(t, steps)
}

func TestUpdateWithRolloutsUnknownSeed(t *testing.T) {
	cfg := DefaultConfig([]int{7, 8}, 2, 2)
	cfg.Strategy = core.StrategyLeastConfidence
	s := newTestSampler(t, cfg)

	err := s.UpdateWithRollouts(twoWorkerBatch(2))
	require.Error(t, err)

	var unknown *core.UnknownSeedError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 9, unknown.Seed)
}

func TestUpdateWithRolloutsRandomIsNoOp(t *testing.T) {
	cfg := DefaultConfig([]int{7, 8, 9}, 2, 2)
	s := newTestSampler(t, cfg)

	require.NoError(t, s.UpdateWithRollouts(twoWorkerBatch(2)))
	assert.Equal(t, 3, s.ledger.NumUnseen())
}

func TestUpdateWithRolloutsSequentialUnsupported(t *testing.T) {
	cfg := DefaultConfig([]int{7, 8, 9}, 2, 2)
	cfg.Strategy = core.StrategySequential
	s := newTestSampler(t, cfg)

	err := s.UpdateWithRollouts(twoWorkerBatch(2))
	var unsupported *core.UnsupportedStrategyError
	require.ErrorAs(t, err, &unsupported)
}

func TestNewLevelSamplerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig([]int{1, 1}, 2, 1)
	_, err := NewLevelSampler(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig([]int{1, 2}, 2, 0)
	_, err = NewLevelSampler(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig([]int{1, 2}, 2, 1)
	cfg.Strategy = core.Strategy("does_not_exist")
	_, err = NewLevelSampler(cfg)
	var unsupported *core.UnsupportedStrategyError
	assert.ErrorAs(t, err, &unsupported)

	cfg = DefaultConfig([]int{1, 2}, 2, 1)
	cfg.ScoreTransform = Transform("nope")
	_, err = NewLevelSampler(cfg)
	assert.Error(t, err)
}
