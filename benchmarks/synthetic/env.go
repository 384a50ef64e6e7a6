package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/bwoodyear/level-replay/core"
	"github.com/bwoodyear/level-replay/sampler"
)

// Pool simulates a fixed family of procedural levels. Each seed hashes
// to a difficulty in [0,1) that drives how confident the synthetic
// policy is on that level and how long its episodes run.
type Pool struct {
	numActions int
	rand       *rand.Rand

	workers []*workerState
}

type workerState struct {
	seed      int
	remaining int
	started   bool
}

func NewPool(numActions, numWorkers int) *Pool {
	p := &Pool{
		numActions: numActions,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		workers:    make([]*workerState, numWorkers),
	}
	for w := range p.workers {
		p.workers[w] = &workerState{}
	}
	return p
}

// difficulty hashes a seed to a stable value in [0,1).
func difficulty(seed int) float64 {
	x := math.Sin(float64(seed)*12.9898) * 43758.5453
	return x - math.Floor(x)
}

// episodeLen makes harder levels run longer, so episodes regularly span
// batch boundaries.
func (p *Pool) episodeLen(seed int) int {
	return 8 + int(difficulty(seed)*24)
}

// NextBatch advances every worker by steps timesteps, asking s for a
// fresh level whenever an episode terminates. It returns the collected
// batch and the seeds sampled while collecting it. The terminal flag of
// an episode that ends exactly on a batch boundary lands at offset 0 of
// the next batch.
func (p *Pool) NextBatch(s *sampler.LevelSampler, steps int) (*core.RolloutBatch, []int) {
	numWorkers := len(p.workers)
	batch := &core.RolloutBatch{
		Dones:      make([][]bool, steps),
		Seeds:      make([][]int, steps),
		LogProbs:   make([][][]float64, steps),
		Returns:    make([][]float64, steps),
		Rewards:    make([][]float64, steps),
		ValuePreds: make([][]float64, steps),
	}
	picks := make([]int, 0)

	for t := 0; t < steps; t++ {
		batch.Dones[t] = make([]bool, numWorkers)
		batch.Seeds[t] = make([]int, numWorkers)
		batch.LogProbs[t] = make([][]float64, numWorkers)
		batch.Returns[t] = make([]float64, numWorkers)
		batch.Rewards[t] = make([]float64, numWorkers)
		batch.ValuePreds[t] = make([]float64, numWorkers)

		for w, ws := range p.workers {
			if ws.remaining == 0 {
				if ws.started {
					batch.Dones[t][w] = true
				}
				ws.seed = s.Sample()
				ws.remaining = p.episodeLen(ws.seed)
				ws.started = true
				picks = append(picks, ws.seed)
			}

			d := difficulty(ws.seed)
			batch.Seeds[t][w] = ws.seed
			batch.LogProbs[t][w] = p.logProbs(d)

			reward := (1 - d) + 0.1*p.rand.NormFloat64()
			batch.Rewards[t][w] = reward
			batch.ValuePreds[t][w] = (1 - d) + 0.2*p.rand.NormFloat64()
			batch.Returns[t][w] = reward + 0.3*p.rand.NormFloat64()

			ws.remaining--
		}
	}

	return batch, picks
}

// logProbs builds a normalized log-probability row where the policy's
// confidence shrinks with level difficulty.
func (p *Pool) logProbs(d float64) []float64 {
	n := float64(p.numActions)
	favored := p.rand.Intn(p.numActions)

	logProbs := make([]float64, p.numActions)
	for a := range logProbs {
		prob := d / n
		if a == favored {
			prob = (1 - d) + d/n
		}
		logProbs[a] = math.Log(prob)
	}
	return logProbs
}
