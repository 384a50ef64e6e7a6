package analysis

// DataSet is the opaque result of one analyzer over one experiment.
type DataSet interface{}

// Analyzer observes each benchmark iteration of a single experiment:
// the seeds picked while collecting the batch and the sampler's replay
// distribution after the update.
type Analyzer interface {
	Analyze(iteration int, picks []int, weights []float64)
	DataSet() DataSet
}

// AnalyzerConstructor builds a fresh analyzer for an experiment.
type AnalyzerConstructor interface {
	NewAnalyzer(experiment string) Analyzer
}

// Comparator consumes the datasets of all experiments side by side.
type Comparator interface {
	Compare(experimentNames []string, datasets []DataSet)
}
