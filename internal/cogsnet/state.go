package cogsnet

// networkState holds the last-interaction and current-weight matrices for all
// node pairs as single contiguous slices indexed i*n+j. A pair that has never
// interacted keeps (0, 0); weight 0 doubles as the "no prior event" sentinel
// (see Run). All mutation goes through applyEvent, which writes both
// directions: edges are undirected.
type networkState struct {
	n          int
	lastEvents []int64
	weights    []float64
}

func newNetworkState(n int) *networkState {
	return &networkState{
		n:          n,
		lastEvents: make([]int64, n*n),
		weights:    make([]float64, n*n),
	}
}

func (s *networkState) lastEvent(i, j int) int64 {
	return s.lastEvents[i*s.n+j]
}

func (s *networkState) weight(i, j int) float64 {
	return s.weights[i*s.n+j]
}

func (s *networkState) applyEvent(i, j int, timestamp int64, weight float64) {
	s.lastEvents[i*s.n+j] = timestamp
	s.lastEvents[j*s.n+i] = timestamp
	s.weights[i*s.n+j] = weight
	s.weights[j*s.n+i] = weight
}
