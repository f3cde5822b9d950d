package nozzle

import (
	"fmt"
	"math"

	"github.com/notargets/monoprop/thermo"
	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

// Bracket is the Mach interval searched for the supersonic exit root.
type Bracket struct {
	Lo, Hi float64
}

const MaxBracketMach = 50.

func (br Bracket) Validate() error {
	if math.IsNaN(br.Lo) || br.Lo <= 1 {
		return types.NewDomainError("Mach bracket lower bound", br.Lo, "Lo > 1")
	}
	if math.IsNaN(br.Hi) || br.Hi <= br.Lo || br.Hi > MaxBracketMach {
		return types.NewDomainError("Mach bracket upper bound", br.Hi,
			fmt.Sprintf("Lo < Hi <= %g", MaxBracketMach))
	}
	return nil
}

/*
AreaMachRatio is the isentropic area ratio A/A* at Mach M:

	A/A* = (1/M) [(2/(gamma+1)) (1 + (gamma-1)/2 M^2)]^((gamma+1)/(2(gamma-1)))
*/
func AreaMachRatio(M, gamma float64) float64 {
	var (
		GM1      = gamma - 1
		GP1      = gamma + 1
		exponent = GP1 / (2 * GM1)
		term     = (2 / GP1) * (1 + 0.5*GM1*utils.POW(M, 2))
	)
	return math.Pow(term, exponent) / M
}

// ExitMach solves the area-Mach relation for the supersonic root inside br.
// The subsonic root is never returned.
func ExitMach(areaRatio, gamma float64, br Bracket, find utils.RootFinder, tol float64) (Me float64, err error) {
	if err = thermo.CheckGamma(gamma); err != nil {
		return
	}
	if err = br.Validate(); err != nil {
		return
	}
	if math.IsNaN(areaRatio) || areaRatio <= 1 {
		err = fmt.Errorf("area ratio %g <= 1: %w", areaRatio, types.ErrNoSupersonicRoot)
		return
	}
	residual := func(M float64) float64 {
		return AreaMachRatio(M, gamma) - areaRatio
	}
	if Me, err = find(residual, br.Lo, br.Hi, tol); err != nil {
		err = fmt.Errorf("area ratio %g, gamma %g, bracket [%g, %g]: %w: %w",
			areaRatio, gamma, br.Lo, br.Hi, types.ErrNoSupersonicRoot, err)
		return
	}
	if Me <= 1 {
		err = fmt.Errorf("root M = %g is not supersonic: %w", Me, types.ErrNoSupersonicRoot)
	}
	return
}
