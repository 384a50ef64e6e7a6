package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bwoodyear/level-replay/analysis"
	"github.com/bwoodyear/level-replay/benchmarks/common"
	"github.com/bwoodyear/level-replay/benchmarks/synthetic"
	"github.com/bwoodyear/level-replay/core"
	"github.com/bwoodyear/level-replay/sampler"
)

func SyntheticCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthetic",
		Short: "Run the sampler on a synthetic level pool",
	}

	cmd.AddCommand(
		syntheticCompareCommand(),
	)

	return cmd
}

func syntheticCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare scoring strategies on the same synthetic pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			doneCh := make(chan struct{})

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()
			defer close(doneCh)

			level := zerolog.InfoLevel
			if flags.Debug {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

			cmp := prepareComparison(flags)
			err := cmp.Run(ctx, logger, &synthetic.RunConfig{
				Iterations:  flags.Iterations,
				BatchSteps:  flags.BatchSteps,
				UpdateEvery: flags.UpdateEvery,
			})
			if err != nil {
				logger.Error().Err(err).Msg("comparison failed")
			}
			return err
		},
	}

	return cmd
}

func prepareComparison(flags *common.Flags) *synthetic.Comparison {
	seeds := make([]int, flags.NumSeeds)
	for i := range seeds {
		seeds[i] = i
	}

	strategies := []core.Strategy{
		core.StrategyRandom,
		core.StrategyPolicyEntropy,
		core.StrategyMinMargin,
		core.StrategyValueL1,
		core.StrategyOneStepTDError,
	}

	cmp := synthetic.NewComparison()
	for _, strategy := range strategies {
		cfg := sampler.DefaultConfig(seeds, flags.NumActions, flags.NumWorkers)
		cfg.Strategy = strategy
		cfg.ReplaySchedule = sampler.ReplaySchedule(flags.ReplaySchedule)
		cfg.ScoreTransform = sampler.Transform(flags.ScoreTransform)
		cfg.Temperature = flags.Temperature
		cfg.Eps = flags.Eps
		cfg.Rho = flags.Rho
		cfg.Nu = flags.Nu
		cfg.Alpha = flags.Alpha
		cfg.StalenessCoef = flags.StalenessCoef

		cmp.AddExperiment(&synthetic.Experiment{
			Name:   string(strategy),
			Config: cfg,
		})
	}

	cmp.AddAnalysis(
		"picks",
		analysis.NewPickAnalyzerConstructor(seeds),
		analysis.NewPickComparator(flags.SavePath),
	)

	return cmp
}
