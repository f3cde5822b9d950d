package record

import (
	"github.com/notargets/monoprop/compliance"
	"github.com/notargets/monoprop/nozzle"
)

const MPa = 1.e6

// Parameters echo the design constants into the record, in the units downstream tools read.
type Parameters struct {
	FeedPressureMPa           float64 `json:"feed_pressure_MPa"`
	FeedPressureMinMPa        float64 `json:"feed_pressure_min_MPa"`
	FeedPressureMaxMPa        float64 `json:"feed_pressure_max_MPa"`
	ChamberPressureRatio      float64 `json:"chamber_pressure_ratio"`
	ChamberPressureMPa        float64 `json:"chamber_pressure_MPa"`
	ChamberPressurePa         float64 `json:"chamber_pressure_Pa"`
	ChamberTemperatureK       float64 `json:"chamber_temperature_K"`
	ExpansionRatio            float64 `json:"expansion_ratio"`
	NozzleHalfAngleDeg        float64 `json:"nozzle_half_angle_deg"`
	NozzleEfficiency          float64 `json:"nozzle_efficiency"`
	AmmoniaDissociationDegree float64 `json:"ammonia_dissociation_degree"`
	SpecificHeatRatio         float64 `json:"specific_heat_ratio"`
	TargetThrustN             float64 `json:"target_thrust_N"`
}

func NewParameters(dc nozzle.DesignConstants) Parameters {
	return Parameters{
		FeedPressureMPa:           dc.FeedPressure / MPa,
		FeedPressureMinMPa:        dc.Acceptance.FeedPressureMin / MPa,
		FeedPressureMaxMPa:        dc.Acceptance.FeedPressureMax / MPa,
		ChamberPressureRatio:      dc.ChamberPressureRatio,
		ChamberPressureMPa:        dc.ChamberPressure / MPa,
		ChamberPressurePa:         dc.ChamberPressure,
		ChamberTemperatureK:       dc.ChamberTemperature,
		ExpansionRatio:            dc.AreaRatio,
		NozzleHalfAngleDeg:        dc.HalfAngle,
		NozzleEfficiency:          dc.Efficiency,
		AmmoniaDissociationDegree: dc.Dissociation,
		SpecificHeatRatio:         dc.Gamma,
		TargetThrustN:             dc.TargetThrust,
	}
}

// ParametersFrom reads every parameter from a record, failing on the first one that is absent.
func ParametersFrom(f Fields) (p Parameters, err error) {
	for _, q := range []struct {
		path string
		dst  *float64
	}{
		{"parameters.feed_pressure_MPa", &p.FeedPressureMPa},
		{"parameters.feed_pressure_min_MPa", &p.FeedPressureMinMPa},
		{"parameters.feed_pressure_max_MPa", &p.FeedPressureMaxMPa},
		{"parameters.chamber_pressure_ratio", &p.ChamberPressureRatio},
		{"parameters.chamber_pressure_MPa", &p.ChamberPressureMPa},
		{"parameters.chamber_pressure_Pa", &p.ChamberPressurePa},
		{"parameters.chamber_temperature_K", &p.ChamberTemperatureK},
		{"parameters.expansion_ratio", &p.ExpansionRatio},
		{"parameters.nozzle_half_angle_deg", &p.NozzleHalfAngleDeg},
		{"parameters.nozzle_efficiency", &p.NozzleEfficiency},
		{"parameters.ammonia_dissociation_degree", &p.AmmoniaDissociationDegree},
		{"parameters.specific_heat_ratio", &p.SpecificHeatRatio},
		{"parameters.target_thrust_N", &p.TargetThrustN},
	} {
		if *q.dst, err = f.Float(q.path); err != nil {
			return Parameters{}, err
		}
	}
	return
}

// DesignConstants converts back to SI. Thrust and Isp acceptance are carried by the requirements.
func (p Parameters) DesignConstants() nozzle.DesignConstants {
	return nozzle.DesignConstants{
		Gamma:                p.SpecificHeatRatio,
		Dissociation:         p.AmmoniaDissociationDegree,
		ChamberTemperature:   p.ChamberTemperatureK,
		ChamberPressure:      p.ChamberPressurePa,
		FeedPressure:         p.FeedPressureMPa * MPa,
		ChamberPressureRatio: p.ChamberPressureRatio,
		AreaRatio:            p.ExpansionRatio,
		Efficiency:           p.NozzleEfficiency,
		TargetThrust:         p.TargetThrustN,
		HalfAngle:            p.NozzleHalfAngleDeg,
		Acceptance: nozzle.Acceptance{
			FeedPressureMin: p.FeedPressureMinMPa * MPa,
			FeedPressureMax: p.FeedPressureMaxMPa * MPa,
		},
	}
}

type ComputedResults struct {
	ThrustN                  float64 `json:"thrust_N"`
	SpecificImpulseS         float64 `json:"specific_impulse_s"`
	MassFlowRateKgS          float64 `json:"mass_flow_rate_kg_s"`
	ThroatAreaM2             float64 `json:"throat_area_m2"`
	ThroatDiameterM          float64 `json:"throat_diameter_m"`
	ThroatDiameterMM         float64 `json:"throat_diameter_mm"`
	ExitAreaM2               float64 `json:"exit_area_m2"`
	ExitDiameterM            float64 `json:"exit_diameter_m"`
	ExitDiameterMM           float64 `json:"exit_diameter_mm"`
	NozzleLengthM            float64 `json:"nozzle_length_m"`
	NozzleLengthMM           float64 `json:"nozzle_length_mm"`
	ExitMachNumber           float64 `json:"exit_Mach_number"`
	ExitVelocityMS           float64 `json:"exit_velocity_m_s"`
	IdealExitVelocityMS      float64 `json:"ideal_exit_velocity_m_s"`
	ExitPressurePa           float64 `json:"exit_pressure_Pa"`
	ExitTemperatureK         float64 `json:"exit_temperature_K"`
	PeAeTermN                float64 `json:"Pe_Ae_term_N"`
	CharacteristicVelocityMS float64 `json:"characteristic_velocity_m_s"`
	MeanMolecularWeightGMol  float64 `json:"mean_molecular_weight_g_mol"`
	SpecificGasConstant      float64 `json:"specific_gas_constant_J_kg_K"`
}

func NewComputedResults(sol nozzle.Solution) ComputedResults {
	th := sol.Throat
	return ComputedResults{
		ThrustN:                  th.Thrust,
		SpecificImpulseS:         th.SpecificImpulse,
		MassFlowRateKgS:          th.MassFlowRate,
		ThroatAreaM2:             th.Area,
		ThroatDiameterM:          th.Diameter,
		ThroatDiameterMM:         th.Diameter * 1000,
		ExitAreaM2:               th.ExitArea,
		ExitDiameterM:            th.ExitDiameter,
		ExitDiameterMM:           th.ExitDiameter * 1000,
		NozzleLengthM:            sol.NozzleLength,
		NozzleLengthMM:           sol.NozzleLength * 1000,
		ExitMachNumber:           sol.Exit.Mach,
		ExitVelocityMS:           sol.ExitVelocity,
		IdealExitVelocityMS:      sol.Exit.IdealVelocity,
		ExitPressurePa:           sol.Exit.Pressure,
		ExitTemperatureK:         sol.Exit.Temperature,
		PeAeTermN:                th.PressureThrust,
		CharacteristicVelocityMS: sol.CStar,
		MeanMolecularWeightGMol:  sol.Gas.MeanMolecularWeight * 1000,
		SpecificGasConstant:      sol.Gas.SpecificGasConstant,
	}
}

// Design is the persisted output of a sizing run.
type Design struct {
	DesignID               string            `json:"design_id"`
	Parameters             Parameters        `json:"parameters"`
	ComputedResults        ComputedResults   `json:"computed_results"`
	RequirementsCompliance compliance.Report `json:"requirements_compliance"`
	Assumptions            []string          `json:"assumptions"`
}

func NewDesign(id string, sol nozzle.Solution, assumptions []string) *Design {
	return &Design{
		DesignID:               id,
		Parameters:             NewParameters(sol.Design),
		ComputedResults:        NewComputedResults(sol),
		RequirementsCompliance: compliance.Report{},
		Assumptions:            append([]string{}, assumptions...),
	}
}
