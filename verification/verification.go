package verification

import (
	"fmt"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/notargets/monoprop/compliance"
	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/record"
	"github.com/notargets/monoprop/types"
)

const (
	DefaultID          = "VER-001"
	DefaultSweepPoints = 100
	Method             = "Independent analytical re-derivation: separately sourced constants, bisection exit-Mach solve on a wide bracket"
)

type Options struct {
	ID          string
	Baseline    string // Where the baseline came from, echoed in the record
	SweepPoints int
}

type IndependentConstants struct {
	Source                  string     `json:"source"`
	StandardGravity         float64    `json:"g0_m_s2"`
	UniversalGasConstant    float64    `json:"R_universal"`
	AmmoniaMolecularWeight  float64    `json:"M_NH3_g_mol"`
	NitrogenMolecularWeight float64    `json:"M_N2_g_mol"`
	HydrogenMolecularWeight float64    `json:"M_H2_g_mol"`
	SpecificHeatRatio       float64    `json:"specific_heat_ratio"`
	GammaSource             string     `json:"specific_heat_ratio_source"`
	Solver                  string     `json:"exit_mach_solver"`
	Bracket                 [2]float64 `json:"exit_mach_bracket"`
	SolverTolerance         float64    `json:"exit_mach_tolerance"`
}

type PressureSweep struct {
	FeedPressureMPa        []float64 `json:"feed_pressure_MPa"`
	ChamberPressureMPa     []float64 `json:"chamber_pressure_MPa"`
	ThrustN                []float64 `json:"thrust_N"`
	SpecificImpulseS       []float64 `json:"specific_impulse_s"`
	MassFlowRateKgS        []float64 `json:"mass_flow_rate_kg_s"`
	ExitVelocityMS         []float64 `json:"exit_velocity_m_s"`
	ExitPressurePa         []float64 `json:"exit_pressure_Pa"`
	ExitTemperatureK       []float64 `json:"exit_temperature_K"`
	ThrustMinN             float64   `json:"thrust_min_N"`
	ThrustMaxN             float64   `json:"thrust_max_N"`
	SpecificImpulseMeanS   float64   `json:"specific_impulse_mean_s"`
	SpecificImpulseStdDevS float64   `json:"specific_impulse_std_s"`
}

func newPressureSweep(sw nozzle.Sweep) (ps PressureSweep) {
	toMPa := func(x []float64) (y []float64) {
		y = make([]float64, len(x))
		for i, v := range x {
			y[i] = v / record.MPa
		}
		return
	}
	return PressureSweep{
		FeedPressureMPa:        toMPa(sw.FeedPressure),
		ChamberPressureMPa:     toMPa(sw.ChamberPressure),
		ThrustN:                sw.Thrust,
		SpecificImpulseS:       sw.SpecificImpulse,
		MassFlowRateKgS:        sw.MassFlowRate,
		ExitVelocityMS:         sw.ExitVelocity,
		ExitPressurePa:         sw.ExitPressure,
		ExitTemperatureK:       sw.ExitTemperature,
		ThrustMinN:             sw.ThrustMin,
		ThrustMaxN:             sw.ThrustMax,
		SpecificImpulseMeanS:   sw.SpecificImpulseMean,
		SpecificImpulseStdDevS: sw.SpecificImpulseStdDev,
	}
}

// Record is the persisted output of a cross-verification run.
type Record struct {
	VerificationID           string                 `json:"verification_id"`
	VerificationMethod       string                 `json:"verification_method"`
	Baseline                 string                 `json:"baseline"`
	DesignInputs             record.Parameters      `json:"design_inputs"`
	IndependentConstants     IndependentConstants   `json:"independent_constants"`
	ComputedResults          record.ComputedResults `json:"computed_results"`
	RequirementsVerification compliance.Report      `json:"requirements_verification"`
	PressureSweep            PressureSweep          `json:"pressure_sweep"`
	ComparisonWithPrimary    map[string]Comparison  `json:"comparison_with_primary"`
	OverallAgreement         types.Verdict          `json:"overall_agreement"`
}

// Exceeding lists the compared fields outside tolerance.
func (r *Record) Exceeding() (fields []string) {
	for name, c := range r.ComparisonWithPrimary {
		if c.ExceedsTolerance {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return
}

/*
Run re-derives the design in the baseline record with the independent model and compares the
results field by field. The baseline is only read; every value taken from it must be present.
Requirements recorded in the baseline are re-evaluated against the independent solution, and the
independent geometry is swept over the feed-pressure range.
*/
func Run(baseline record.Fields, m nozzle.Model, opts Options, logger log.Logger) (vr *Record, err error) {
	var (
		params  record.Parameters
		primary compliance.Report
		set     compliance.Set
		sol     nozzle.Solution
		sw      nozzle.Sweep
		own     record.Fields
		rp      compliance.Report
	)
	if opts.ID == "" {
		opts.ID = DefaultID
	}
	if params, err = record.ParametersFrom(baseline); err != nil {
		return nil, err
	}
	if err = baseline.Decode("requirements_compliance", &primary); err != nil {
		return nil, err
	}
	if set, err = compliance.FromReport(primary); err != nil {
		return nil, err
	}
	// Every primary value is read before solving
	primaryValues := make(map[string]float64, len(ComparedFields))
	for _, name := range ComparedFields {
		if primaryValues[name], err = baseline.Float("computed_results." + name); err != nil {
			return nil, err
		}
	}
	logger = log.With(logger, "verification", opts.ID, "model", m.Name)

	dc := params.DesignConstants()
	if sol, err = m.Size(dc); err != nil {
		return nil, fmt.Errorf("independent sizing: %w", err)
	}
	design := record.NewDesign(opts.ID, sol, nil)
	if own, err = record.FieldsOf(design); err != nil {
		return nil, err
	}
	if rp, err = set.Evaluate(own); err != nil {
		return nil, err
	}
	if sw, err = nozzle.FeedPressureSweep(sol, dc.Acceptance.FeedPressureMin,
		dc.Acceptance.FeedPressureMax, opts.SweepPoints); err != nil {
		return nil, err
	}
	level.Info(logger).Log("msg", "pressure sweep", "points", sw.Len(),
		"thrust_min_N", sw.ThrustMin, "thrust_max_N", sw.ThrustMax,
		"isp_mean_s", sw.SpecificImpulseMean, "isp_std_s", sw.SpecificImpulseStdDev)

	gammaSource := "design input"
	if m.GammaFromGas {
		gammaSource = "dissociation correlation 1.27 - 0.05 alpha"
	}
	vr = &Record{
		VerificationID:     opts.ID,
		VerificationMethod: Method,
		Baseline:           opts.Baseline,
		DesignInputs:       params,
		IndependentConstants: IndependentConstants{
			Source:                  m.Constants.Source,
			StandardGravity:         m.Constants.StandardGravity,
			UniversalGasConstant:    m.Constants.UniversalGasConstant,
			AmmoniaMolecularWeight:  m.Constants.Ammonia.MolecularWeight,
			NitrogenMolecularWeight: m.Constants.Nitrogen.MolecularWeight,
			HydrogenMolecularWeight: m.Constants.Hydrogen.MolecularWeight,
			SpecificHeatRatio:       sol.Gamma,
			GammaSource:             gammaSource,
			Solver:                  sol.SolverLabel,
			Bracket:                 [2]float64{m.Bracket.Lo, m.Bracket.Hi},
			SolverTolerance:         m.Tolerance,
		},
		ComputedResults:          design.ComputedResults,
		RequirementsVerification: rp,
		PressureSweep:            newPressureSweep(sw),
		ComparisonWithPrimary:    make(map[string]Comparison, len(ComparedFields)),
	}
	for _, name := range ComparedFields {
		var secondary float64
		if secondary, err = own.Float("computed_results." + name); err != nil {
			return nil, err
		}
		var c Comparison
		if c, err = Compare(name, primaryValues[name], secondary); err != nil {
			return nil, err
		}
		vr.ComparisonWithPrimary[name] = c
		lvl := level.Debug
		if c.ExceedsTolerance {
			lvl = level.Warn
		}
		lvl(logger).Log("msg", "comparison", "field", name, "primary", c.Primary,
			"secondary", c.Secondary, "delta_percent", c.DeltaPercent)
	}
	vr.OverallAgreement = types.NewVerdict(len(vr.Exceeding()) == 0)
	level.Info(logger).Log("msg", "cross-verification", "agreement", vr.OverallAgreement,
		"exceeding", len(vr.Exceeding()), "requirements_pass", rp.AllPass())
	return
}
