package sampler

import (
	"errors"
	"fmt"

	"github.com/bwoodyear/level-replay/core"
)

// ReplaySchedule governs when the scheduler replays a scored level
// instead of introducing an unseen one.
type ReplaySchedule string

const (
	ScheduleFixed         ReplaySchedule = "fixed"
	ScheduleProportionate ReplaySchedule = "proportionate"
)

func ParseReplaySchedule(name string) (ReplaySchedule, error) {
	switch s := ReplaySchedule(name); s {
	case ScheduleFixed, ScheduleProportionate:
		return s, nil
	}
	return "", fmt.Errorf("unsupported replay schedule, %s", name)
}

// Config carries all construction parameters of the sampler. Runtime
// state lives in the ledger, never here.
type Config struct {
	Seeds      []int
	NumActions int
	NumWorkers int

	Strategy       core.Strategy
	ReplaySchedule ReplaySchedule
	ScoreTransform Transform
	Temperature    float64
	Eps            float64

	// Rho is the minimum proportion of seen levels before replay kicks
	// in; Nu is the fixed schedule's probability of an unseen draw past
	// that point.
	Rho float64
	Nu  float64

	// Alpha is the EMA smoothing factor; 1 replaces the score with the
	// latest finalized episode outright.
	Alpha float64

	StalenessCoef        float64
	StalenessTransform   Transform
	StalenessTemperature float64
}

func DefaultConfig(seeds []int, numActions, numWorkers int) Config {
	return Config{
		Seeds:                seeds,
		NumActions:           numActions,
		NumWorkers:           numWorkers,
		Strategy:             core.StrategyRandom,
		ReplaySchedule:       ScheduleFixed,
		ScoreTransform:       TransformPower,
		Temperature:          1.0,
		Eps:                  0.05,
		Rho:                  0.2,
		Nu:                   0.5,
		Alpha:                1.0,
		StalenessCoef:        0,
		StalenessTransform:   TransformPower,
		StalenessTemperature: 1.0,
	}
}

func (c Config) validate() error {
	if len(c.Seeds) == 0 {
		return errors.New("config needs at least one seed")
	}
	if c.NumWorkers <= 0 {
		return errors.New("config needs at least one worker")
	}
	seen := make(map[int]bool, len(c.Seeds))
	for _, seed := range c.Seeds {
		if seen[seed] {
			return fmt.Errorf("duplicate seed %d in level pool", seed)
		}
		seen[seed] = true
	}
	if !transforms[c.ScoreTransform] {
		return fmt.Errorf("unsupported score transform, %s", c.ScoreTransform)
	}
	if c.StalenessCoef > 0 && !transforms[c.StalenessTransform] {
		return fmt.Errorf("unsupported staleness transform, %s", c.StalenessTransform)
	}
	switch c.ReplaySchedule {
	case ScheduleFixed, ScheduleProportionate:
	default:
		return fmt.Errorf("unsupported replay schedule, %s", c.ReplaySchedule)
	}
	return nil
}
