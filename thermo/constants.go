package thermo

// Species is one product of hydrazine decomposition.
type Species struct {
	Name            string
	MolecularWeight float64 // g/mol
}

/*
Constants is the physical constants table a model instance is built from. Each model owns its
table, and the two tables below come from different sources.
*/
type Constants struct {
	Source               string
	StandardGravity      float64 // m/s^2
	UniversalGasConstant float64 // J/(kmol K)
	Ammonia              Species
	Nitrogen             Species
	Hydrogen             Species
}

// HeritageConstants are the values carried by the design tools.
func HeritageConstants() Constants {
	return Constants{
		Source:               "heritage design tables",
		StandardGravity:      9.80665,
		UniversalGasConstant: 8314.46,
		Ammonia:              Species{Name: "NH3", MolecularWeight: 17.031},
		Nitrogen:             Species{Name: "N2", MolecularWeight: 28.014},
		Hydrogen:             Species{Name: "H2", MolecularWeight: 2.016},
	}
}

// ReferenceConstants use CODATA 2018 for R and IUPAC standard atomic weights for the species.
func ReferenceConstants() Constants {
	return Constants{
		Source:               "CODATA 2018 / IUPAC atomic weights",
		StandardGravity:      9.80665,
		UniversalGasConstant: 8314.462618,
		Ammonia:              Species{Name: "NH3", MolecularWeight: 17.0305},
		Nitrogen:             Species{Name: "N2", MolecularWeight: 28.0134},
		Hydrogen:             Species{Name: "H2", MolecularWeight: 2.01588},
	}
}
