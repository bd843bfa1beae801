package cogsnet

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Edge is one entry of a snapshot: an ordered pair of external node IDs and
// the sampled weight between them.
type Edge struct {
	Src    int64   `json:"src"`
	Dst    int64   `json:"dst"`
	Weight float64 `json:"weight"`
}

// Snapshot freezes every pairwise weight of the network at one instant. Edges
// is dense: n*n entries in row order, diagonal and zero weights included.
type Snapshot struct {
	Time  int64  `json:"time"`
	Edges []Edge `json:"edges"`
}

// takeSnapshot samples every ordered node pair at the given time. It only
// reads network state, so the rows are computed in parallel: each pair
// depends on nothing but the frozen state.
func takeSnapshot(p *Params, snapTime int64, state *networkState, realIDs []int64) (Snapshot, error) {
	n := state.n
	edges := make([]Edge, n*n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	rowsPer := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += rowsPer {
		end := start + rowsPer
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				for j := 0; j < n; j++ {
					w, err := computeWeight(p, snapTime, state.lastEvent(i, j), state.weight(i, j), false)
					if err != nil {
						return err
					}
					edges[i*n+j] = Edge{Src: realIDs[i], Dst: realIDs[j], Weight: w}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Time: snapTime, Edges: edges}, nil
}
