package nozzle

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/monoprop/types"
)

// Sweep holds off-design performance of a fixed geometry, one column per quantity.
type Sweep struct {
	FeedPressure    []float64 // Pa
	ChamberPressure []float64 // Pa
	Thrust          []float64 // N
	SpecificImpulse []float64 // s
	MassFlowRate    []float64 // kg/s
	ExitVelocity    []float64 // m/s
	ExitPressure    []float64 // Pa
	ExitTemperature []float64 // K

	ThrustMin, ThrustMax                       float64
	SpecificImpulseMean, SpecificImpulseStdDev float64
}

func (sw Sweep) Len() int { return len(sw.FeedPressure) }

/*
FeedPressureSweep evaluates the solved geometry over N evenly spaced feed pressures in
[feedMin, feedMax]. The throat area, area ratio and therefore exit Mach number stay fixed; the
chamber pressure follows the feed pressure through the design pressure ratio. Mass flow and thrust
scale with chamber pressure while specific impulse does not.
*/
func FeedPressureSweep(sol Solution, feedMin, feedMax float64, N int) (sw Sweep, err error) {
	var (
		dc    = sol.Design
		ratio = dc.ChamberPressureRatio
	)
	if err = positive("chamber pressure ratio", ratio); err != nil {
		return
	}
	if err = positive("minimum feed pressure", feedMin); err != nil {
		return
	}
	if feedMax <= feedMin {
		err = types.NewDomainError("maximum feed pressure", feedMax, fmt.Sprintf("> %g", feedMin))
		return
	}
	if N < 2 {
		err = fmt.Errorf("sweep needs at least 2 points, have %d: %w", N, types.ErrConfiguration)
		return
	}
	sw = Sweep{
		FeedPressure:    floats.Span(make([]float64, N), feedMin, feedMax),
		ChamberPressure: make([]float64, N),
		Thrust:          make([]float64, N),
		SpecificImpulse: make([]float64, N),
		MassFlowRate:    make([]float64, N),
		ExitVelocity:    make([]float64, N),
		ExitPressure:    make([]float64, N),
		ExitTemperature: make([]float64, N),
	}
	var (
		At = sol.Throat.Area
		Ae = sol.Throat.ExitArea
	)
	for i, Pf := range sw.FeedPressure {
		var es ExitState
		Pc := ratio * Pf
		if es, err = IsentropicExit(sol.Exit.Mach, Pc, dc.ChamberTemperature, sol.Gamma,
			sol.Gas.SpecificGasConstant); err != nil {
			return
		}
		Ve := dc.Efficiency * es.IdealVelocity
		mdot := Pc * At / sol.CStar
		F := mdot*Ve + es.Pressure*Ae
		sw.ChamberPressure[i] = Pc
		sw.MassFlowRate[i] = mdot
		sw.Thrust[i] = F
		sw.SpecificImpulse[i] = F / (mdot * sol.StandardGravity)
		sw.ExitVelocity[i] = Ve
		sw.ExitPressure[i] = es.Pressure
		sw.ExitTemperature[i] = es.Temperature
	}
	sw.ThrustMin, sw.ThrustMax = floats.Min(sw.Thrust), floats.Max(sw.Thrust)
	sw.SpecificImpulseMean, sw.SpecificImpulseStdDev = stat.MeanStdDev(sw.SpecificImpulse, nil)
	return
}
