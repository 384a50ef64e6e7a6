package sampler

import (
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/bwoodyear/level-replay/core"
	"github.com/bwoodyear/level-replay/scores"
)

// LevelSampler decides which level seed to hand out next, biased toward
// levels whose latest episodes were informative to the current policy.
type LevelSampler struct {
	cfg      Config
	registry *SeedRegistry
	ledger   *ScoreLedger
	scorer   core.Scorer

	rand *erand.Rand

	// Round-robin cursor, used only by the sequential strategy.
	nextSeedIndex int
}

func NewLevelSampler(cfg Config) (*LevelSampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if _, err := core.ParseStrategy(string(cfg.Strategy)); err != nil {
		return nil, err
	}

	s := &LevelSampler{
		cfg:      cfg,
		registry: NewSeedRegistry(cfg.Seeds),
		ledger:   NewScoreLedger(cfg.NumWorkers, len(cfg.Seeds), cfg.Alpha),
		rand:     erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}

	if cfg.Strategy.Scoring() {
		scorer, err := scores.ForStrategy(cfg.Strategy, cfg.NumActions)
		if err != nil {
			return nil, err
		}
		s.scorer = scorer
	}

	return s, nil
}

// SeedRange returns the smallest and largest seed in the pool.
func (s *LevelSampler) SeedRange() (int, int) {
	return s.registry.Range()
}

// Sample returns the next seed to train on under the configured
// strategy.
func (s *LevelSampler) Sample() int {
	return s.SampleWithStrategy(s.cfg.Strategy)
}

// SampleWithStrategy draws with an explicit strategy, overriding the
// configured one. Useful for random or sequential diagnostic draws from
// an otherwise score-driven sampler.
func (s *LevelSampler) SampleWithStrategy(strategy core.Strategy) int {
	switch strategy {
	case core.StrategyRandom:
		return s.registry.SeedAt(s.rand.Intn(s.registry.Len()))
	case core.StrategySequential:
		idx := s.nextSeedIndex
		s.nextSeedIndex = (s.nextSeedIndex + 1) % s.registry.Len()
		return s.registry.SeedAt(idx)
	}

	if s.shouldReplay(s.proportionSeen()) {
		return s.sampleReplayLevel()
	}
	return s.sampleUnseenLevel()
}

func (s *LevelSampler) proportionSeen() float64 {
	n := s.registry.Len()
	return float64(n-s.ledger.NumUnseen()) / float64(n)
}

// shouldReplay is the replay-schedule decision. The random draw is only
// consumed once the seen proportion has reached rho.
func (s *LevelSampler) shouldReplay(proportionSeen float64) bool {
	if proportionSeen < s.cfg.Rho {
		return false
	}
	if s.cfg.ReplaySchedule == ScheduleFixed {
		// Replay with probability 1-nu, or always once every level has
		// been seen at least once.
		return s.rand.Float64() > s.cfg.Nu || proportionSeen >= 1.0
	}
	return s.rand.Float64() < proportionSeen
}

func (s *LevelSampler) sampleReplayLevel() int {
	weights := s.SampleWeights()

	idx, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		idx = s.rand.Intn(s.registry.Len())
	}
	s.ledger.TouchStaleness(idx, s.cfg.StalenessCoef > 0)

	return s.registry.SeedAt(idx)
}

func (s *LevelSampler) sampleUnseenLevel() int {
	idx, ok := sampleuv.NewWeighted(s.ledger.Unseen(), s.rand).Take()
	if !ok {
		idx = s.rand.Intn(s.registry.Len())
	}
	s.ledger.TouchStaleness(idx, s.cfg.StalenessCoef > 0)

	return s.registry.SeedAt(idx)
}

// SampleWeights returns the normalized replay distribution over all
// seeds: transformed scores masked to seen levels, blended with
// transformed staleness when enabled. Degenerate mass falls back to a
// uniform distribution so sampling always succeeds.
func (s *LevelSampler) SampleWeights() []float64 {
	weights := s.transformWeights(s.cfg.ScoreTransform, s.cfg.Temperature, s.ledger.Scores())
	s.maskUnseen(weights)
	normalize(weights)

	if s.cfg.StalenessCoef > 0 {
		staleWeights := s.transformWeights(s.cfg.StalenessTransform, s.cfg.StalenessTemperature, s.ledger.Staleness())
		s.maskUnseen(staleWeights)
		normalize(staleWeights)

		for i := range weights {
			weights[i] = (1-s.cfg.StalenessCoef)*weights[i] + s.cfg.StalenessCoef*staleWeights[i]
		}
	}

	if floats.Sum(weights) < 1e-12 {
		uniform := 1 / float64(len(weights))
		for i := range weights {
			weights[i] = uniform
		}
	}

	return weights
}

func (s *LevelSampler) maskUnseen(weights []float64) {
	for i, u := range s.ledger.Unseen() {
		weights[i] *= 1 - u
	}
}

func normalize(weights []float64) {
	if z := floats.Sum(weights); z > 0 {
		floats.Scale(1/z, weights)
	}
}

// UpdateWithRollouts splits each worker's timeline in the batch at
// episode terminations, finalizes the score of every completed segment
// and accumulates the unfinished tail as a partial update. A terminal
// flag at offset 0 belongs to the previous batch's last step and starts
// no segment.
func (s *LevelSampler) UpdateWithRollouts(batch *core.RolloutBatch) error {
	if s.cfg.Strategy == core.StrategyRandom {
		return nil
	}
	if s.scorer == nil {
		return &core.UnsupportedStrategyError{Strategy: string(s.cfg.Strategy)}
	}

	totalSteps := batch.NumSteps()
	withValues := s.scorer.RequiresValueBuffers()

	for worker := 0; worker < batch.NumWorkers(); worker++ {
		start := 0
		for t := 0; t < totalSteps; t++ {
			if !batch.Dones[t][worker] || t == 0 {
				continue
			}

			seedIdx, err := s.registry.IndexOf(batch.Seeds[start][worker])
			if err != nil {
				return err
			}
			seg := batch.Slice(worker, start, t, withValues)
			if score, ok := s.scorer.Score(seg); ok {
				s.ledger.Finalize(worker, seedIdx, score, seg.Len())
			}
			start = t
		}

		if start < totalSteps {
			seedIdx, err := s.registry.IndexOf(batch.Seeds[start][worker])
			if err != nil {
				return err
			}
			seg := batch.Slice(worker, start, totalSteps, withValues)
			if score, ok := s.scorer.Score(seg); ok {
				s.ledger.Accumulate(worker, seedIdx, score, seg.Len())
			}
		}
	}

	return nil
}

// AfterUpdate flushes all pending partial scores into the seed EMAs.
// Call it right after every policy update: partial segments scored
// under the old parameters no longer describe the current policy.
func (s *LevelSampler) AfterUpdate() {
	s.ledger.FlushPartials()
}

// Ledger exposes the score bookkeeping for analysis and checkpointing.
func (s *LevelSampler) Ledger() *ScoreLedger {
	return s.ledger
}
