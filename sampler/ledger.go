package sampler

// ScoreLedger owns the per-seed bookkeeping: EMA scores over finalized
// episodes, unseen flags, per-worker partial accumulators for segments
// still in flight, and staleness counters. Each worker writes only its
// own partial row, so parallel collectors need no locking as long as
// finalization happens on the coordinating goroutine.
type ScoreLedger struct {
	seedScores    []float64
	unseen        []float64
	partialScores [][]float64
	partialSteps  [][]int
	staleness     []float64

	alpha float64
}

func NewScoreLedger(numWorkers, numSeeds int, alpha float64) *ScoreLedger {
	l := &ScoreLedger{
		seedScores:    make([]float64, numSeeds),
		unseen:        make([]float64, numSeeds),
		partialScores: make([][]float64, numWorkers),
		partialSteps:  make([][]int, numWorkers),
		staleness:     make([]float64, numSeeds),
		alpha:         alpha,
	}
	for i := range l.unseen {
		l.unseen[i] = 1
	}
	for w := 0; w < numWorkers; w++ {
		l.partialScores[w] = make([]float64, numSeeds)
		l.partialSteps[w] = make([]int, numSeeds)
	}
	return l
}

// merge folds a new segment mean into the running weighted mean. The
// result is numerically identical to recomputing the mean over the
// concatenated segments.
func merge(partial float64, partialSteps int, score float64, steps int) (float64, int) {
	runningSteps := partialSteps + steps
	return partial + (score-partial)*float64(steps)/float64(runningSteps), runningSteps
}

// Accumulate records a segment that has not yet reached episode
// termination. The partial accumulator is retained; seed score and
// unseen flag stay untouched.
func (l *ScoreLedger) Accumulate(worker, seedIdx int, score float64, steps int) {
	merged, runningSteps := merge(l.partialScores[worker][seedIdx], l.partialSteps[worker][seedIdx], score, steps)
	l.partialScores[worker][seedIdx] = merged
	l.partialSteps[worker][seedIdx] = runningSteps
}

// Finalize records a segment that terminated the episode: any pending
// partial is merged in, the accumulator resets, the seed is marked seen
// and the seed score moves one EMA step toward the merged value.
func (l *ScoreLedger) Finalize(worker, seedIdx int, score float64, steps int) {
	merged, _ := merge(l.partialScores[worker][seedIdx], l.partialSteps[worker][seedIdx], score, steps)
	l.partialScores[worker][seedIdx] = 0
	l.partialSteps[worker][seedIdx] = 0

	l.unseen[seedIdx] = 0
	l.seedScores[seedIdx] = (1-l.alpha)*l.seedScores[seedIdx] + l.alpha*merged
}

// FlushPartials finalizes every pending partial accumulator with an
// empty segment, folding the stale partial value into the EMA, and
// clears all accumulators. Called once the policy parameters change and
// pending log-probability scores no longer reflect the current policy.
func (l *ScoreLedger) FlushPartials() {
	for w := range l.partialScores {
		for s := range l.partialScores[w] {
			if l.partialScores[w][s] != 0 {
				l.Finalize(w, s, 0, 0)
			}
			l.partialScores[w][s] = 0
			l.partialSteps[w][s] = 0
		}
	}
}

// TouchStaleness bumps every staleness counter when staleness weighting
// is in use, then zeroes the selected seed's counter.
func (l *ScoreLedger) TouchStaleness(selectedIdx int, bumpAll bool) {
	if bumpAll {
		for i := range l.staleness {
			l.staleness[i]++
		}
	}
	l.staleness[selectedIdx] = 0
}

func (l *ScoreLedger) Scores() []float64 {
	return l.seedScores
}

func (l *ScoreLedger) Unseen() []float64 {
	return l.unseen
}

func (l *ScoreLedger) Staleness() []float64 {
	return l.staleness
}

func (l *ScoreLedger) NumUnseen() int {
	count := 0
	for _, u := range l.unseen {
		if u > 0 {
			count++
		}
	}
	return count
}

func (l *ScoreLedger) PartialAt(worker, seedIdx int) (float64, int) {
	return l.partialScores[worker][seedIdx], l.partialSteps[worker][seedIdx]
}
