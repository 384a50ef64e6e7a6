package analysis

import (
	"fmt"
	"path"
	"sort"

	"github.com/bwoodyear/level-replay/util"
)

type pickDataset struct {
	Seeds        []int
	Counts       map[int]int
	Iterations   []int
	WeightMax    []float64
	FinalWeights []float64
}

func (d *pickDataset) copyDataset() *pickDataset {
	return &pickDataset{
		Seeds:        util.CopyIntSlice(d.Seeds),
		Counts:       util.CopyIntCountMap(d.Counts),
		Iterations:   util.CopyIntSlice(d.Iterations),
		WeightMax:    util.CopyFloatSlice(d.WeightMax),
		FinalWeights: util.CopyFloatSlice(d.FinalWeights),
	}
}

// PickAnalyzer tracks how often each seed is handed out and how peaked
// the replay distribution becomes over the course of a run.
type PickAnalyzer struct {
	dataset *pickDataset
}

var _ Analyzer = &PickAnalyzer{}

func NewPickAnalyzer(seeds []int) *PickAnalyzer {
	return &PickAnalyzer{
		dataset: &pickDataset{
			Seeds:        util.CopyIntSlice(seeds),
			Counts:       make(map[int]int),
			Iterations:   make([]int, 0),
			WeightMax:    make([]float64, 0),
			FinalWeights: make([]float64, 0),
		},
	}
}

func (p *PickAnalyzer) Analyze(iteration int, picks []int, weights []float64) {
	for _, seed := range picks {
		p.dataset.Counts[seed]++
	}
	maxWeight := float64(0)
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}
	p.dataset.Iterations = append(p.dataset.Iterations, iteration)
	p.dataset.WeightMax = append(p.dataset.WeightMax, maxWeight)
	p.dataset.FinalWeights = util.CopyFloatSlice(weights)
}

func (p *PickAnalyzer) DataSet() DataSet {
	return p.dataset.copyDataset()
}

type PickAnalyzerConstructor struct {
	seeds []int
}

var _ AnalyzerConstructor = &PickAnalyzerConstructor{}

func NewPickAnalyzerConstructor(seeds []int) *PickAnalyzerConstructor {
	return &PickAnalyzerConstructor{seeds: seeds}
}

func (p *PickAnalyzerConstructor) NewAnalyzer(_ string) Analyzer {
	return NewPickAnalyzer(p.seeds)
}

// PickComparator writes every experiment's pick dataset to one JSON
// file and prints the most replayed seeds per experiment.
type PickComparator struct {
	savePath string
}

var _ Comparator = &PickComparator{}

func NewPickComparator(savePath string) *PickComparator {
	return &PickComparator{
		savePath: path.Join(savePath, "picks.json"),
	}
}

func (c *PickComparator) Compare(experimentNames []string, datasets []DataSet) {
	out := make(map[string]*pickDataset)
	for i, name := range experimentNames {
		if datasets[i] == nil {
			continue
		}
		d := datasets[i].(*pickDataset)
		out[name] = d

		top := util.CopyIntSlice(d.Seeds)
		sort.SliceStable(top, func(a, b int) bool {
			return d.Counts[top[a]] > d.Counts[top[b]]
		})
		if len(top) > 5 {
			top = top[:5]
		}
		fmt.Printf("Experiment: %s, top seeds:", name)
		for _, seed := range top {
			fmt.Printf(" %d(%d)", seed, d.Counts[seed])
		}
		fmt.Println()
	}

	util.SaveJSON(c.savePath, out)
}
