package cogsnet

import (
	"fmt"
	"math"
)

// Params configures a single CogSNet run. SnapshotInterval and EdgeLifetime
// are expressed in Units; event timestamps are always seconds.
type Params struct {
	Forgetting       ForgettingType
	SnapshotInterval int64   // 0 means one snapshot per distinct subsequent event time
	EdgeLifetime     int64   // time for a weight to decay from Mu down to Theta
	Mu               float64 // baseline weight assigned on an interaction, (0, 1]
	Theta            float64 // decay floor, [0, Mu); weights at or below report as zero
	Units            int64   // 1 (seconds), 60 (minutes) or 3600 (hours)

	// Derived by Validate.
	lambda         float64
	scaledInterval int64
	scaledLifetime int64
}

// Validate checks every parameter against its allowed range and derives the
// decay constant lambda from the unit-scaled edge lifetime. It must be called
// before the params are used; Run does this on its own copy.
func (p *Params) Validate() error {
	if !ValidForgetting(p.Forgetting) {
		return &ValidationError{
			Param: "forgetting_type",
			Msg:   fmt.Sprintf("%q is not one of linear, power, exponential", string(p.Forgetting)),
		}
	}
	if p.SnapshotInterval < 0 {
		return &ValidationError{
			Param: "snapshot_interval",
			Msg:   fmt.Sprintf("%d cannot be less than 0", p.SnapshotInterval),
		}
	}
	if p.EdgeLifetime <= 0 {
		return &ValidationError{
			Param: "edge_lifetime",
			Msg:   fmt.Sprintf("%d has to be greater than 0", p.EdgeLifetime),
		}
	}
	if p.Mu <= 0 || p.Mu > 1 {
		return &ValidationError{
			Param: "mu",
			Msg:   fmt.Sprintf("%g has to be greater than 0 and at most 1", p.Mu),
		}
	}
	if p.Theta < 0 || p.Theta >= p.Mu {
		return &ValidationError{
			Param: "theta",
			Msg:   fmt.Sprintf("%g has to be at least 0 and less than mu (%g)", p.Theta, p.Mu),
		}
	}
	if p.Units != 1 && p.Units != 60 && p.Units != 3600 {
		return &ValidationError{
			Param: "units",
			Msg:   fmt.Sprintf("%d is not one of 1 (seconds), 60 (minutes), 3600 (hours)", p.Units),
		}
	}

	p.scaledInterval = p.SnapshotInterval * p.Units
	p.scaledLifetime = p.EdgeLifetime * p.Units

	lifetime := float64(p.scaledLifetime)
	switch p.Forgetting {
	case Exponential:
		p.lambda = (1 / lifetime) * math.Log(p.Mu/p.Theta)
	case Power:
		p.lambda = math.Log(p.Mu/p.Theta) * math.Log(lifetime)
	case Linear:
		p.lambda = (1 / lifetime) * (p.Mu - p.Theta)
	}
	return nil
}

// Lambda returns the decay constant derived by Validate.
func (p *Params) Lambda() float64 {
	return p.lambda
}
