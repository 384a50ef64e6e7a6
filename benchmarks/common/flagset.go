package common

import (
	"path"

	"github.com/bwoodyear/level-replay/util"
)

type Flags struct {
	SamplerFlags
	RunFlags
	SavePath string
	Debug    bool
}

type SamplerFlags struct {
	NumSeeds       int
	NumActions     int
	NumWorkers     int
	ReplaySchedule string
	ScoreTransform string
	Temperature    float64
	Eps            float64
	Rho            float64
	Nu             float64
	Alpha          float64
	StalenessCoef  float64
}

type RunFlags struct {
	Iterations  int
	BatchSteps  int
	UpdateEvery int
}

func DefaultFlags() *Flags {
	return &Flags{
		SamplerFlags: SamplerFlags{
			NumSeeds:       100,
			NumActions:     5,
			NumWorkers:     8,
			ReplaySchedule: "fixed",
			ScoreTransform: "rank",
			Temperature:    0.1,
			Eps:            0.05,
			Rho:            0.2,
			Nu:             0.5,
			Alpha:          1.0,
			StalenessCoef:  0.1,
		},
		RunFlags: RunFlags{
			Iterations:  500,
			BatchSteps:  64,
			UpdateEvery: 4,
		},
		SavePath: "results",
		Debug:    false,
	}
}

func (f *Flags) Record() {
	util.SaveJSON(path.Join(f.SavePath, "config.json"), f)
}
