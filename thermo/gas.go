package thermo

import (
	"math"

	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

// ProductMoles are the moles of each product per mole of N2H4 decomposed.
type ProductMoles struct {
	Ammonia, Nitrogen, Hydrogen float64
	Total                       float64
}

type GasState struct {
	MeanMolecularWeight float64 // kg/mol
	SpecificGasConstant float64 // J/(kg K), R_universal / MeanMolecularWeight
}

/*
DecompositionMoles returns the product composition for ammonia dissociation degree alpha:

	3 N2H4 -> 4(1-alpha) NH3 + (1+2 alpha) N2 + 6 alpha H2

normalized per mole of hydrazine. Total is the normalizing mole count used for the mixture weight.
*/
func DecompositionMoles(alpha float64) (pm ProductMoles, err error) {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		err = types.NewDomainError("dissociation degree", alpha, "0 <= alpha <= 1")
		return
	}
	pm = ProductMoles{
		Ammonia:  (4. / 3.) * (1 - alpha),
		Nitrogen: (1. / 3.) + (2./3.)*alpha,
		Hydrogen: 2 * alpha,
		Total:    (4. / 3.) + (2./3.)*alpha,
	}
	if pm.Total <= 0 {
		err = types.NewDomainError("total product moles", pm.Total, "total > 0")
	}
	return
}

// GasProperties returns the mixture mean molecular weight and specific gas constant for alpha.
func (c Constants) GasProperties(alpha float64) (gs GasState, err error) {
	var pm ProductMoles
	if pm, err = DecompositionMoles(alpha); err != nil {
		return
	}
	mBar := (c.Ammonia.MolecularWeight*pm.Ammonia +
		c.Nitrogen.MolecularWeight*pm.Nitrogen +
		c.Hydrogen.MolecularWeight*pm.Hydrogen) / pm.Total
	gs.MeanMolecularWeight = mBar / 1000.
	if !(gs.MeanMolecularWeight > 0) {
		err = types.NewDomainError("mean molecular weight", gs.MeanMolecularWeight, "M > 0")
		return
	}
	gs.SpecificGasConstant = c.UniversalGasConstant / gs.MeanMolecularWeight
	if !utils.IsFinite(gs.SpecificGasConstant) || gs.SpecificGasConstant <= 0 {
		err = types.NewDomainError("specific gas constant", gs.SpecificGasConstant, "R > 0")
	}
	return
}

// DissociationGamma is the approximate specific heat ratio of the decomposition products at
// chamber conditions, valid for alpha in roughly 0.3 to 0.7.
func DissociationGamma(alpha float64) float64 {
	return 1.27 - 0.05*alpha
}
