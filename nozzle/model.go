package nozzle

import (
	"fmt"

	"github.com/notargets/monoprop/thermo"
	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

// Sizer turns a set of design constants into a nozzle solution.
type Sizer interface {
	Size(dc DesignConstants) (Solution, error)
}

type SolverType uint8

const (
	SolverBrent SolverType = iota
	SolverBisection
)

func (st SolverType) String() string {
	names := []string{"Brent", "Bisection"}
	if int(st) >= len(names) {
		return fmt.Sprintf("SolverType(%d)", uint8(st))
	}
	return names[int(st)]
}

func (st SolverType) Finder() utils.RootFinder {
	switch st {
	case SolverBisection:
		return utils.Bisection
	default:
		return utils.Brent
	}
}

/*
Model is one parameterization of the lumped isentropic nozzle model. The primary and independent
instances differ in constants table, root finder and bracket, and optionally in where gamma comes
from; the physics is shared.
*/
type Model struct {
	Name         string
	Constants    thermo.Constants
	Solver       SolverType
	Bracket      Bracket
	Tolerance    float64
	GammaFromGas bool // Use thermo.DissociationGamma instead of the design gamma
}

func NewPrimaryModel() Model {
	return Model{
		Name:      "primary",
		Constants: thermo.HeritageConstants(),
		Solver:    SolverBrent,
		Bracket:   Bracket{Lo: 1.01, Hi: 10},
		Tolerance: 1e-12,
	}
}

func NewIndependentModel() Model {
	return Model{
		Name:      "independent",
		Constants: thermo.ReferenceConstants(),
		Solver:    SolverBisection,
		Bracket:   Bracket{Lo: 1.01, Hi: 50},
		Tolerance: 1e-10,
	}
}

// Solution is the complete nozzle design derived from one set of design constants.
type Solution struct {
	Design                 DesignConstants
	Gamma                  float64
	Gas                    thermo.GasState
	CStar                  float64 // m/s
	Exit                   ExitState
	ExitVelocity           float64 // m/s, Efficiency * Exit.IdealVelocity
	Throat                 Throat
	NozzleLength           float64 // m
	StandardGravity        float64 // m/s^2
	ModelName, SolverLabel string
}

func (m Model) gamma(dc DesignConstants) (gamma float64, err error) {
	gamma = dc.Gamma
	if m.GammaFromGas {
		gamma = thermo.DissociationGamma(dc.Dissociation)
	}
	err = thermo.CheckGamma(gamma)
	return
}

// Size runs the full forward pass: gas properties, c*, exit Mach, exit state, throat.
func (m Model) Size(dc DesignConstants) (sol Solution, err error) {
	if err = dc.Validate(); err != nil {
		return
	}
	var (
		gamma float64
		gas   thermo.GasState
		cStar float64
		Me    float64
		exit  ExitState
		th    Throat
	)
	if gamma, err = m.gamma(dc); err != nil {
		return
	}
	if gas, err = m.Constants.GasProperties(dc.Dissociation); err != nil {
		return
	}
	if cStar, err = thermo.CharacteristicVelocity(gamma, gas.SpecificGasConstant, dc.ChamberTemperature); err != nil {
		return
	}
	if Me, err = ExitMach(dc.AreaRatio, gamma, m.Bracket, m.Solver.Finder(), m.Tolerance); err != nil {
		return
	}
	if exit, err = IsentropicExit(Me, dc.ChamberPressure, dc.ChamberTemperature, gamma, gas.SpecificGasConstant); err != nil {
		return
	}
	Ve := dc.Efficiency * exit.IdealVelocity
	if th, err = SizeThroat(ThroatInputs{
		TargetThrust:    dc.TargetThrust,
		ChamberPressure: dc.ChamberPressure,
		CStar:           cStar,
		ExitVelocity:    Ve,
		ExitPressure:    exit.Pressure,
		AreaRatio:       dc.AreaRatio,
		StandardGravity: m.Constants.StandardGravity,
	}); err != nil {
		return
	}
	sol = Solution{
		Design:          dc,
		Gamma:           gamma,
		Gas:             gas,
		CStar:           cStar,
		Exit:            exit,
		ExitVelocity:    Ve,
		Throat:          th,
		NozzleLength:    ConicalLength(th.Diameter, th.ExitDiameter, dc.HalfAngle),
		StandardGravity: m.Constants.StandardGravity,
		ModelName:       m.Name,
		SolverLabel:     fmt.Sprintf("%s on [%g, %g]", m.Solver, m.Bracket.Lo, m.Bracket.Hi),
	}
	if !utils.IsFinite(sol.NozzleLength, th.SpecificImpulse, th.MassFlowRate) {
		return Solution{}, types.NewDomainError("nozzle solution", th.Area, "finite solution")
	}
	return
}
