package nozzle

import (
	"math"

	"github.com/notargets/monoprop/thermo"
	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

type ExitState struct {
	Mach          float64
	Pressure      float64 // Pa
	Temperature   float64 // K
	IdealVelocity float64 // m/s
}

/*
IsentropicExit expands the chamber gas to exit Mach Me. All three exit quantities derive from the
same temperature factor 1 + (gamma-1)/2 Me^2, so Te Pe^((1-gamma)/gamma) is preserved exactly.
*/
func IsentropicExit(Me, Pc, Tc, gamma, R float64) (es ExitState, err error) {
	if err = thermo.CheckGamma(gamma); err != nil {
		return
	}
	if math.IsNaN(Me) || Me <= 0 || math.IsInf(Me, 0) {
		err = types.NewDomainError("exit Mach number", Me, "Me > 0")
		return
	}
	for _, q := range []struct {
		name string
		val  float64
	}{
		{"chamber pressure", Pc},
		{"chamber temperature", Tc},
		{"specific gas constant", R},
	} {
		if err = positive(q.name, q.val); err != nil {
			return
		}
	}
	var (
		GM1        = gamma - 1
		tempFactor = 1 + 0.5*GM1*utils.POW(Me, 2)
	)
	es.Mach = Me
	es.Temperature = Tc / tempFactor
	es.Pressure = Pc * math.Pow(tempFactor, -gamma/GM1)
	es.IdealVelocity = Me * math.Sqrt(gamma*R*es.Temperature)
	if !utils.IsFinite(es.Temperature, es.Pressure, es.IdealVelocity) {
		err = types.NewDomainError("exit state", Me, "finite exit state")
	}
	return
}
