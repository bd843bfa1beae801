package cogsnet

// computeWeight is the single point where a new edge weight is produced, both
// for live reinforcement (reinforced=true, once per incoming event) and for
// read-only decay sampling at snapshot time (reinforced=false, once per node
// pair). The elapsed time is scaled by Units before the forgetting function
// is applied, and any raw weight at or below Theta collapses to exactly 0:
// the edge is considered forgotten.
func computeWeight(p *Params, timeNow, lastEvent int64, prev float64, reinforced bool) (float64, error) {
	elapsed := float64(timeNow-lastEvent) / float64(p.Units)
	if elapsed < 0 {
		return 0, &ChronologyError{Event: -1, Time: timeNow, LastEvent: lastEvent}
	}

	var raw float64
	switch p.Forgetting {
	case Linear:
		raw = weightLinear(reinforced, prev, elapsed, p.lambda, p.Mu)
	case Power:
		raw = weightPower(reinforced, prev, elapsed, p.lambda, p.Mu)
	case Exponential:
		raw = weightExponential(reinforced, prev, elapsed, p.lambda, p.Mu)
	}

	if raw <= p.Theta {
		return 0, nil
	}
	return raw, nil
}
