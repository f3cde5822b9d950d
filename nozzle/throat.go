package nozzle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

// SelfCheckTolerance is the relative error allowed between the recomputed and the target thrust.
const SelfCheckTolerance = 1e-9

type ThroatInputs struct {
	TargetThrust    float64 // N
	ChamberPressure float64 // Pa
	CStar           float64 // m/s
	ExitVelocity    float64 // m/s, efficiency derated
	ExitPressure    float64 // Pa
	AreaRatio       float64
	StandardGravity float64 // m/s^2
}

type Throat struct {
	Area, Diameter         float64 // m^2, m
	ExitArea, ExitDiameter float64 // m^2, m
	MassFlowRate           float64 // kg/s
	Thrust                 float64 // N
	PressureThrust         float64 // N, Pe Ae
	SpecificImpulse        float64 // s
}

/*
SizeThroat solves the vacuum thrust equation F = mdot Ve + Pe Ae for the throat area. Both terms are
linear in At (mdot = Pc At / c*, Ae = eps At), so

	At = F / (Pc Ve / c* + Pe eps)

with no iteration. The thrust recomputed from At must reproduce the target.
*/
func SizeThroat(in ThroatInputs) (th Throat, err error) {
	for _, q := range []struct {
		name string
		val  float64
	}{
		{"target thrust", in.TargetThrust},
		{"chamber pressure", in.ChamberPressure},
		{"characteristic velocity", in.CStar},
		{"standard gravity", in.StandardGravity},
	} {
		if err = positive(q.name, q.val); err != nil {
			return
		}
	}
	if math.IsNaN(in.AreaRatio) || in.AreaRatio <= 1 {
		err = types.NewDomainError("area ratio", in.AreaRatio, "Ae/At > 1")
		return
	}
	denom := in.ChamberPressure*in.ExitVelocity/in.CStar + in.ExitPressure*in.AreaRatio
	if !(denom > 0) || math.IsInf(denom, 0) {
		err = types.NewDomainError("throat sizing denominator", denom, "Pc Ve / c* + Pe eps > 0")
		return
	}
	th.Area = in.TargetThrust / denom
	th.Diameter = utils.CircleDiameter(th.Area)
	th.ExitArea = in.AreaRatio * th.Area
	th.ExitDiameter = utils.CircleDiameter(th.ExitArea)
	th.MassFlowRate = in.ChamberPressure * th.Area / in.CStar
	th.PressureThrust = in.ExitPressure * th.ExitArea
	th.Thrust = th.MassFlowRate*in.ExitVelocity + th.PressureThrust
	th.SpecificImpulse = th.Thrust / (th.MassFlowRate * in.StandardGravity)
	if !scalar.EqualWithinRel(th.Thrust, in.TargetThrust, SelfCheckTolerance) {
		err = fmt.Errorf("recomputed thrust %.12g N, target %.12g N: %w",
			th.Thrust, in.TargetThrust, types.ErrSelfCheck)
	}
	return
}

// ConicalLength is the axial length of a conical divergent section.
func ConicalLength(throatDiameter, exitDiameter, halfAngleDeg float64) float64 {
	return 0.5 * (exitDiameter - throatDiameter) / math.Tan(halfAngleDeg*math.Pi/180)
}
