package core

import "fmt"

// Strategy selects how informativeness scores are computed for sampled
// levels. Random and Sequential do not score at all.
type Strategy string

const (
	StrategyRandom          Strategy = "random"
	StrategySequential      Strategy = "sequential"
	StrategyPolicyEntropy   Strategy = "policy_entropy"
	StrategyLeastConfidence Strategy = "least_confidence"
	StrategyMinMargin       Strategy = "min_margin"
	StrategyGAE             Strategy = "gae"
	StrategyValueL1         Strategy = "value_l1"
	StrategyOneStepTDError  Strategy = "one_step_td_error"
)

var strategies = map[Strategy]bool{
	StrategyRandom:          true,
	StrategySequential:      true,
	StrategyPolicyEntropy:   true,
	StrategyLeastConfidence: true,
	StrategyMinMargin:       true,
	StrategyGAE:             true,
	StrategyValueL1:         true,
	StrategyOneStepTDError:  true,
}

func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	if !strategies[s] {
		return "", &UnsupportedStrategyError{Strategy: name}
	}
	return s, nil
}

// Scoring reports whether the strategy computes segment scores. The
// remaining strategies sample without ever reading rollouts.
func (s Strategy) Scoring() bool {
	return strategies[s] && s != StrategyRandom && s != StrategySequential
}

type UnsupportedStrategyError struct {
	Strategy string
}

func (e *UnsupportedStrategyError) Error() string {
	return fmt.Sprintf("unsupported strategy, %s", e.Strategy)
}

type UnknownSeedError struct {
	Seed int
}

func (e *UnknownSeedError) Error() string {
	return fmt.Sprintf("seed %d is not part of the level pool", e.Seed)
}
