package nozzle

import (
	"math"

	"github.com/notargets/monoprop/thermo"
	"github.com/notargets/monoprop/types"
)

// Acceptance bounds the design is judged against.
type Acceptance struct {
	ThrustMin, ThrustMax             float64 // N
	SpecificImpulseMin               float64 // s
	FeedPressureMin, FeedPressureMax float64 // Pa
}

/*
DesignConstants are fixed before any computation and passed by value through the pipeline.
Pressures are in Pa, temperatures in K, angles in degrees.
*/
type DesignConstants struct {
	Gamma                float64
	Dissociation         float64
	ChamberTemperature   float64
	ChamberPressure      float64
	FeedPressure         float64
	ChamberPressureRatio float64 // ChamberPressure / FeedPressure
	AreaRatio            float64
	Efficiency           float64
	TargetThrust         float64
	HalfAngle            float64
	Acceptance           Acceptance
}

// DefaultDesignConstants is the 1 N hydrazine thruster design point.
func DefaultDesignConstants() DesignConstants {
	var (
		feed  = 0.25e6
		ratio = 0.7
	)
	return DesignConstants{
		Gamma:                1.28,
		Dissociation:         0.5,
		ChamberTemperature:   1400,
		ChamberPressure:      ratio * feed,
		FeedPressure:         feed,
		ChamberPressureRatio: ratio,
		AreaRatio:            100,
		Efficiency:           0.035,
		TargetThrust:         1.0,
		HalfAngle:            15,
		Acceptance: Acceptance{
			ThrustMin:          0.95,
			ThrustMax:          1.05,
			SpecificImpulseMin: 220,
			FeedPressureMin:    0.15e6,
			FeedPressureMax:    0.30e6,
		},
	}
}

func positive(name string, val float64) error {
	if !(val > 0) || math.IsInf(val, 0) {
		return types.NewDomainError(name, val, name+" > 0")
	}
	return nil
}

// Validate checks every physical constraint on the design constants.
func (dc DesignConstants) Validate() (err error) {
	if err = thermo.CheckGamma(dc.Gamma); err != nil {
		return
	}
	if math.IsNaN(dc.Dissociation) || dc.Dissociation < 0 || dc.Dissociation > 1 {
		return types.NewDomainError("dissociation degree", dc.Dissociation, "0 <= alpha <= 1")
	}
	for _, q := range []struct {
		name string
		val  float64
	}{
		{"chamber temperature", dc.ChamberTemperature},
		{"chamber pressure", dc.ChamberPressure},
		{"target thrust", dc.TargetThrust},
	} {
		if err = positive(q.name, q.val); err != nil {
			return
		}
	}
	if math.IsNaN(dc.AreaRatio) || dc.AreaRatio <= 1 {
		return types.NewDomainError("area ratio", dc.AreaRatio, "Ae/At > 1")
	}
	if math.IsNaN(dc.Efficiency) || dc.Efficiency <= 0 || dc.Efficiency > 1 {
		return types.NewDomainError("nozzle efficiency", dc.Efficiency, "0 < eta <= 1")
	}
	if math.IsNaN(dc.HalfAngle) || dc.HalfAngle <= 0 || dc.HalfAngle >= 90 {
		return types.NewDomainError("nozzle half angle", dc.HalfAngle, "0 < theta < 90 deg")
	}
	if math.IsNaN(dc.FeedPressure) || dc.FeedPressure < 0 {
		return types.NewDomainError("feed pressure", dc.FeedPressure, "feed pressure >= 0")
	}
	if math.IsNaN(dc.ChamberPressureRatio) || dc.ChamberPressureRatio < 0 {
		return types.NewDomainError("chamber pressure ratio", dc.ChamberPressureRatio, "Pc/Pfeed >= 0")
	}
	return
}
