package sizing

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/notargets/monoprop/InputParameters"
	"github.com/notargets/monoprop/compliance"
	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/record"
)

/*
Run is the single forward pass of a sizing run: requirements are validated, the sizer solves the
design, the record is assembled and compliance is evaluated over the record's own fields. Any error
aborts the run and no record is returned; failed requirements are reported in the record.
*/
func Run(ip *InputParameters.InputParameters, sizer nozzle.Sizer, logger log.Logger) (d *record.Design, err error) {
	var (
		set compliance.Set
		sol nozzle.Solution
		f   record.Fields
		rp  compliance.Report
	)
	if set, err = ip.RequirementSet(); err != nil {
		return nil, err
	}
	dc := ip.DesignConstants()
	if sol, err = sizer.Size(dc); err != nil {
		return nil, fmt.Errorf("sizing %s: %w", ip.DesignID, err)
	}
	logger = log.With(logger, "design", ip.DesignID, "model", sol.ModelName)
	level.Debug(logger).Log("msg", "gas properties",
		"mean_molecular_weight_g_mol", sol.Gas.MeanMolecularWeight*1000,
		"R_J_kg_K", sol.Gas.SpecificGasConstant,
		"cstar_m_s", sol.CStar)
	level.Debug(logger).Log("msg", "exit state", "solver", sol.SolverLabel,
		"Me", sol.Exit.Mach, "Pe_Pa", sol.Exit.Pressure, "Te_K", sol.Exit.Temperature)

	d = record.NewDesign(ip.DesignID, sol, ip.AssumptionList())
	if f, err = record.FieldsOf(d); err != nil {
		return nil, err
	}
	if rp, err = set.Evaluate(f); err != nil {
		return nil, err
	}
	d.RequirementsCompliance = rp
	level.Info(logger).Log("msg", "sized",
		"throat_diameter_mm", d.ComputedResults.ThroatDiameterMM,
		"exit_diameter_mm", d.ComputedResults.ExitDiameterMM,
		"thrust_N", d.ComputedResults.ThrustN,
		"isp_s", d.ComputedResults.SpecificImpulseS,
		"mdot_kg_s", d.ComputedResults.MassFlowRateKgS)
	LogCompliance(logger, rp)
	return
}

// LogCompliance logs one line per requirement; failures and thin margins are raised to warnings.
func LogCompliance(logger log.Logger, rp compliance.Report) {
	marginal := make(map[string]bool)
	for _, id := range rp.Marginal(compliance.LowMarginPercent) {
		marginal[id] = true
	}
	for _, id := range rp.IDs() {
		rec := rp[id]
		lvl := level.Info
		if marginal[id] {
			lvl = level.Warn
		}
		kv := []interface{}{"msg", "requirement", "id", id, "status", rec.Status,
			"computed", rec.Computed, "unit", rec.Unit, "margin_percent", rec.MarginPercent}
		if marginal[id] && rec.Passed() {
			kv = append(kv, "note", "low margin")
		}
		lvl(logger).Log(kv...)
	}
}
