package cogsnet

import "math"

// ForgettingType selects the formula used to decay edge weights over time.
type ForgettingType string

const (
	Linear      ForgettingType = "linear"
	Power       ForgettingType = "power"
	Exponential ForgettingType = "exponential"
)

// ValidForgetting reports whether t is one of the supported forgetting types.
func ValidForgetting(t ForgettingType) bool {
	switch t {
	case Linear, Power, Exponential:
		return true
	}
	return false
}

// The forgetting functions return the raw (pre-threshold) weight of an edge
// after elapsed time units. When reinforced is true the edge is being boosted
// by a fresh interaction: the decayed weight is folded back under the mu
// baseline so repeated contact pushes the weight toward 1.

func weightLinear(reinforced bool, prev, elapsed, lambda, mu float64) float64 {
	if reinforced {
		return mu + (prev-elapsed*lambda)*(1-mu)
	}
	return prev - elapsed*lambda
}

func weightPower(reinforced bool, prev, elapsed, lambda, mu float64) float64 {
	// Raising an elapsed time below one to a negative power would increase
	// the weight instead of decaying it, so the weight is left untouched.
	if elapsed < 1 {
		return prev
	}
	if reinforced {
		return mu + prev*math.Pow(elapsed, -lambda)*(1-mu)
	}
	return prev * math.Pow(elapsed, -lambda)
}

func weightExponential(reinforced bool, prev, elapsed, lambda, mu float64) float64 {
	if reinforced {
		return mu + prev*math.Exp(-lambda*elapsed)*(1-mu)
	}
	return prev * math.Exp(-lambda*elapsed)
}
