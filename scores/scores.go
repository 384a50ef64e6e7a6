package scores

import (
	"github.com/bwoodyear/level-replay/core"
)

// ForStrategy resolves a scoring strategy to its Scorer. Random and
// sequential carry no scorer; asking for one is a configuration error.
func ForStrategy(strategy core.Strategy, numActions int) (core.Scorer, error) {
	switch strategy {
	case core.StrategyPolicyEntropy:
		return NewPolicyEntropy(numActions), nil
	case core.StrategyLeastConfidence:
		return NewLeastConfidence(), nil
	case core.StrategyMinMargin:
		return NewMinMargin(), nil
	case core.StrategyGAE:
		return NewGAE(), nil
	case core.StrategyValueL1:
		return NewValueL1(), nil
	case core.StrategyOneStepTDError:
		return NewOneStepTDError(), nil
	}
	return nil, &core.UnsupportedStrategyError{Strategy: string(strategy)}
}
