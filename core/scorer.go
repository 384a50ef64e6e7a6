package core

// Scorer computes a scalar informativeness score from one trajectory
// segment. The boolean is false when the segment cannot be scored (too
// short for the strategy) and must contribute nothing to the ledger.
type Scorer interface {
	Score(seg *Segment) (float64, bool)

	// RequiresValueBuffers reports whether Score reads the segment's
	// returns, rewards and value estimates.
	RequiresValueBuffers() bool
}
