package core

// RolloutBatch is the collaborator contract between the rollout
// collection loop and the sampler. All slices are indexed [step][worker]
// with LogProbs additionally indexed by action. Returns, Rewards and
// ValuePreds may be nil unless the configured scorer requires them.
type RolloutBatch struct {
	Dones    [][]bool
	Seeds    [][]int
	LogProbs [][][]float64

	Returns    [][]float64
	Rewards    [][]float64
	ValuePreds [][]float64
}

func (b *RolloutBatch) NumSteps() int {
	return len(b.Dones)
}

func (b *RolloutBatch) NumWorkers() int {
	if len(b.Dones) == 0 {
		return 0
	}
	return len(b.Dones[0])
}

// Segment is one contiguous span of a single worker's timeline, sliced
// out of a RolloutBatch. LogProbs rows are normalized log-probabilities
// over actions. The value buffers are populated only when the scorer
// declared it needs them.
type Segment struct {
	LogProbs [][]float64

	Returns    []float64
	Rewards    []float64
	ValuePreds []float64
}

func (s *Segment) Len() int {
	return len(s.LogProbs)
}

// Slice extracts worker's segment in [start, end), copying the value
// buffers only when withValues is set.
func (b *RolloutBatch) Slice(worker, start, end int, withValues bool) *Segment {
	seg := &Segment{
		LogProbs: make([][]float64, 0, end-start),
	}
	for t := start; t < end; t++ {
		seg.LogProbs = append(seg.LogProbs, b.LogProbs[t][worker])
	}
	if withValues {
		seg.Returns = make([]float64, 0, end-start)
		seg.Rewards = make([]float64, 0, end-start)
		seg.ValuePreds = make([]float64, 0, end-start)
		for t := start; t < end; t++ {
			seg.Returns = append(seg.Returns, b.Returns[t][worker])
			seg.Rewards = append(seg.Rewards, b.Rewards[t][worker])
			seg.ValuePreds = append(seg.ValuePreds, b.ValuePreds[t][worker])
		}
	}
	return seg
}
