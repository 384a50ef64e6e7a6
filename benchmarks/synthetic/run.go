package synthetic

import (
	"context"
	"fmt"

	"github.com/gosuri/uilive"
	"github.com/rs/zerolog"

	"github.com/bwoodyear/level-replay/analysis"
	"github.com/bwoodyear/level-replay/sampler"
)

type Experiment struct {
	Name   string
	Config sampler.Config
}

type RunConfig struct {
	Iterations  int
	BatchSteps  int
	UpdateEvery int
}

type Comparison struct {
	Experiments []*Experiment
	Analyzers   map[string]analysis.AnalyzerConstructor
	Comparators map[string]analysis.Comparator
}

func NewComparison() *Comparison {
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		Analyzers:   make(map[string]analysis.AnalyzerConstructor),
		Comparators: make(map[string]analysis.Comparator),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) AddAnalysis(name string, a analysis.AnalyzerConstructor, cmp analysis.Comparator) {
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}

// Run drives every experiment through the full curriculum lifecycle:
// sample levels while collecting a batch, score the batch, flush
// partials after each simulated policy update.
func (c *Comparison) Run(ctx context.Context, logger zerolog.Logger, rcfg *RunConfig) error {
	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	experimentNames := make([]string, 0)
	datasets := make(map[string][]analysis.DataSet)

	for _, e := range c.Experiments {
		out := writer.Newline()

		s, err := sampler.NewLevelSampler(e.Config)
		if err != nil {
			logger.Error().Err(err).Str("experiment", e.Name).Msg("sampler construction failed")
			return err
		}
		pool := NewPool(e.Config.NumActions, e.Config.NumWorkers)

		analyzers := make(map[string]analysis.Analyzer)
		for name, aC := range c.Analyzers {
			analyzers[name] = aC.NewAnalyzer(e.Name)
		}

		for iter := 0; iter < rcfg.Iterations; iter++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			batch, picks := pool.NextBatch(s, rcfg.BatchSteps)
			if e.Config.Strategy.Scoring() {
				if err := s.UpdateWithRollouts(batch); err != nil {
					logger.Error().Err(err).Str("experiment", e.Name).Msg("rollout update failed")
					return err
				}
				if (iter+1)%rcfg.UpdateEvery == 0 {
					s.AfterUpdate()
				}
			}

			weights := s.SampleWeights()
			for _, a := range analyzers {
				a.Analyze(iter, picks, weights)
			}

			fmt.Fprintf(
				out,
				"Experiment: %s, Iteration: %d/%d, Unseen: %d\n",
				e.Name, iter+1, rcfg.Iterations, s.Ledger().NumUnseen(),
			)
			writer.Flush()
		}

		logger.Info().
			Str("experiment", e.Name).
			Int("unseen", s.Ledger().NumUnseen()).
			Msg("experiment finished")

		experimentNames = append(experimentNames, e.Name)
		for name, a := range analyzers {
			datasets[name] = append(datasets[name], a.DataSet())
		}
	}

	for name, cmp := range c.Comparators {
		cmp.Compare(experimentNames, datasets[name])
	}

	return nil
}
