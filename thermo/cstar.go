package thermo

import (
	"math"

	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

// CheckGamma rejects specific heat ratios for which the isentropic exponents are undefined.
func CheckGamma(gamma float64) error {
	if math.IsNaN(gamma) || gamma <= 1 || math.IsInf(gamma, 0) {
		return types.NewDomainError("specific heat ratio", gamma, "gamma > 1")
	}
	return nil
}

/*
CharacteristicVelocity returns c* for a chamber at temperature Tc:

	c* = sqrt(gamma R Tc) / (gamma sqrt((2/(gamma+1))^((gamma+1)/(gamma-1))))
*/
func CharacteristicVelocity(gamma, R, Tc float64) (cStar float64, err error) {
	if err = CheckGamma(gamma); err != nil {
		return
	}
	if !(R > 0) || math.IsInf(R, 0) {
		err = types.NewDomainError("specific gas constant", R, "R > 0")
		return
	}
	if !(Tc > 0) || math.IsInf(Tc, 0) {
		err = types.NewDomainError("chamber temperature", Tc, "Tc > 0")
		return
	}
	var (
		GP1      = gamma + 1
		GM1      = gamma - 1
		exponent = GP1 / GM1
		term     = math.Pow(2/GP1, 0.5*exponent)
	)
	cStar = math.Sqrt(gamma*R*Tc) / (gamma * term)
	if !utils.IsFinite(cStar) || cStar <= 0 {
		err = types.NewDomainError("characteristic velocity", cStar, "finite c* > 0")
	}
	return
}
