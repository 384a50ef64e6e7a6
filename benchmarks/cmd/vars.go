package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bwoodyear/level-replay/benchmarks/common"
)

var (
	flags *common.Flags = common.DefaultFlags()

	savePath       string
	debug          bool
	numSeeds       int
	numActions     int
	numWorkers     int
	replaySchedule string
	scoreTransform string
	temperature    float64
	eps            float64
	rho            float64
	nu             float64
	alpha          float64
	stalenessCoef  float64

	iterations  int
	batchSteps  int
	updateEvery int
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Enable debug logging")
	cmd.PersistentFlags().IntVar(&numSeeds, "num-seeds", flags.NumSeeds, "Number of level seeds in the pool")
	cmd.PersistentFlags().IntVar(&numActions, "num-actions", flags.NumActions, "Size of the action space")
	cmd.PersistentFlags().IntVar(&numWorkers, "num-workers", flags.NumWorkers, "Number of rollout workers")
	cmd.PersistentFlags().StringVar(&replaySchedule, "replay-schedule", flags.ReplaySchedule, "Replay schedule (fixed|proportionate)")
	cmd.PersistentFlags().StringVar(&scoreTransform, "score-transform", flags.ScoreTransform, "Score transform")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", flags.Temperature, "Score transform temperature")
	cmd.PersistentFlags().Float64Var(&eps, "eps", flags.Eps, "Exploration fraction for eps_greedy")
	cmd.PersistentFlags().Float64Var(&rho, "rho", flags.Rho, "Minimum proportion of seen levels before replay")
	cmd.PersistentFlags().Float64Var(&nu, "nu", flags.Nu, "Fixed-schedule unseen-draw probability")
	cmd.PersistentFlags().Float64Var(&alpha, "alpha", flags.Alpha, "EMA smoothing factor")
	cmd.PersistentFlags().Float64Var(&stalenessCoef, "staleness-coef", flags.StalenessCoef, "Staleness mixing coefficient")

	cmd.PersistentFlags().IntVar(&iterations, "iterations", flags.Iterations, "Number of batch iterations")
	cmd.PersistentFlags().IntVar(&batchSteps, "batch-steps", flags.BatchSteps, "Timesteps per rollout batch")
	cmd.PersistentFlags().IntVar(&updateEvery, "update-every", flags.UpdateEvery, "Batches between simulated policy updates")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Debug = debug
	flags.NumSeeds = numSeeds
	flags.NumActions = numActions
	flags.NumWorkers = numWorkers
	flags.ReplaySchedule = replaySchedule
	flags.ScoreTransform = scoreTransform
	flags.Temperature = temperature
	flags.Eps = eps
	flags.Rho = rho
	flags.Nu = nu
	flags.Alpha = alpha
	flags.StalenessCoef = stalenessCoef

	flags.Iterations = iterations
	flags.BatchSteps = batchSteps
	flags.UpdateEvery = updateEvery
}
