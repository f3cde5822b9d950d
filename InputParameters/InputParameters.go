package InputParameters

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/monoprop/compliance"
	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/types"
)

const MPa = 1.e6

// Requirement as written in the YAML input file
type Requirement struct {
	Description string   `json:"Description"`
	Quantity    string   `json:"Quantity"` // Dotted record path, e.g. computed_results.thrust_N
	Unit        string   `json:"Unit"`
	Type        string   `json:"Type"` // min, max or range
	Min         *float64 `json:"Min,omitempty"`
	Max         *float64 `json:"Max,omitempty"`
}

// Parameters obtained from the YAML input file. Pressures are in MPa.
type InputParameters struct {
	Title                string                 `json:"Title"`
	DesignID             string                 `json:"DesignID"`
	Gamma                float64                `json:"Gamma"`
	Dissociation         float64                `json:"Dissociation"`
	ChamberTemperature   float64                `json:"ChamberTemperature"`
	FeedPressure         float64                `json:"FeedPressure"`
	FeedPressureMin      float64                `json:"FeedPressureMin"`
	FeedPressureMax      float64                `json:"FeedPressureMax"`
	ChamberPressureRatio float64                `json:"ChamberPressureRatio"`
	ChamberPressure      float64                `json:"ChamberPressure,omitempty"` // Overrides FeedPressure * ChamberPressureRatio when set
	AreaRatio            float64                `json:"AreaRatio"`
	NozzleEfficiency     float64                `json:"NozzleEfficiency"`
	NozzleHalfAngle      float64                `json:"NozzleHalfAngle"`
	TargetThrust         float64                `json:"TargetThrust"`
	Requirements         map[string]Requirement `json:"Requirements"` // Key is the requirement id
	Assumptions          []string               `json:"Assumptions,omitempty"` // Appended to the generated list
}

func fp(f float64) *float64 { return &f }

// Default is the 1 N hydrazine thruster design with its acceptance requirements.
func Default() (ip *InputParameters) {
	dc := nozzle.DefaultDesignConstants()
	acc := dc.Acceptance
	ip = &InputParameters{
		Title:                "1 N hydrazine monopropellant thruster",
		DesignID:             "DES-001",
		Gamma:                dc.Gamma,
		Dissociation:         dc.Dissociation,
		ChamberTemperature:   dc.ChamberTemperature,
		FeedPressure:         dc.FeedPressure / MPa,
		FeedPressureMin:      acc.FeedPressureMin / MPa,
		FeedPressureMax:      acc.FeedPressureMax / MPa,
		ChamberPressureRatio: dc.ChamberPressureRatio,
		AreaRatio:            dc.AreaRatio,
		NozzleEfficiency:     dc.Efficiency,
		NozzleHalfAngle:      dc.HalfAngle,
		TargetThrust:         dc.TargetThrust,
		Requirements: map[string]Requirement{
			"REQ-001": {
				Description: fmt.Sprintf("Thrust = %.3g N ± %.3g N", dc.TargetThrust, acc.ThrustMax-dc.TargetThrust),
				Quantity:    "computed_results.thrust_N",
				Unit:        "N",
				Type:        "range",
				Min:         fp(acc.ThrustMin),
				Max:         fp(acc.ThrustMax),
			},
			"REQ-002": {
				Description: fmt.Sprintf("Specific Impulse ≥ %g s", acc.SpecificImpulseMin),
				Quantity:    "computed_results.specific_impulse_s",
				Unit:        "s",
				Type:        "minimum",
				Min:         fp(acc.SpecificImpulseMin),
			},
			"REQ-009": {
				Description: fmt.Sprintf("Feed pressure within %g-%g MPa",
					acc.FeedPressureMin/MPa, acc.FeedPressureMax/MPa),
				Quantity: "parameters.feed_pressure_MPa",
				Unit:     "MPa",
				Type:     "range",
				Min:      fp(acc.FeedPressureMin / MPa),
				Max:      fp(acc.FeedPressureMax / MPa),
			},
		},
	}
	return
}

// Parse overlays the YAML document onto ip; fields absent from the document keep their values.
func (ip *InputParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		err = fmt.Errorf("input parameters: %v: %w", err, types.ErrConfiguration)
	}
	return
}

func (ip *InputParameters) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	return ip.Parse(data)
}

func (ip *InputParameters) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t\t= DesignID\n", ip.DesignID)
	fmt.Fprintf(w, "%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Fprintf(w, "%8.5f\t\t= Dissociation\n", ip.Dissociation)
	fmt.Fprintf(w, "%8.2f\t\t= ChamberTemperature [K]\n", ip.ChamberTemperature)
	fmt.Fprintf(w, "%8.5f\t\t= FeedPressure [MPa], range [%g, %g]\n", ip.FeedPressure, ip.FeedPressureMin, ip.FeedPressureMax)
	fmt.Fprintf(w, "%8.5f\t\t= ChamberPressure [MPa]\n", ip.chamberPressure()/MPa)
	fmt.Fprintf(w, "%8.2f\t\t= AreaRatio\n", ip.AreaRatio)
	fmt.Fprintf(w, "%8.5f\t\t= NozzleEfficiency\n", ip.NozzleEfficiency)
	fmt.Fprintf(w, "%8.2f\t\t= NozzleHalfAngle [deg]\n", ip.NozzleHalfAngle)
	fmt.Fprintf(w, "%8.5f\t\t= TargetThrust [N]\n", ip.TargetThrust)
	keys := make([]string, len(ip.Requirements))
	i := 0
	for k := range ip.Requirements {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "Requirements[%s] = %s\n", key, ip.Requirements[key].Description)
	}
}

func (ip *InputParameters) chamberPressure() float64 {
	if ip.ChamberPressure > 0 {
		return ip.ChamberPressure * MPa
	}
	return ip.ChamberPressureRatio * ip.FeedPressure * MPa
}

// DesignConstants converts the input to SI design constants. Validation happens in the model.
func (ip *InputParameters) DesignConstants() (dc nozzle.DesignConstants) {
	dc = nozzle.DesignConstants{
		Gamma:                ip.Gamma,
		Dissociation:         ip.Dissociation,
		ChamberTemperature:   ip.ChamberTemperature,
		ChamberPressure:      ip.chamberPressure(),
		FeedPressure:         ip.FeedPressure * MPa,
		ChamberPressureRatio: ip.ChamberPressureRatio,
		AreaRatio:            ip.AreaRatio,
		Efficiency:           ip.NozzleEfficiency,
		TargetThrust:         ip.TargetThrust,
		HalfAngle:            ip.NozzleHalfAngle,
		Acceptance: nozzle.Acceptance{
			FeedPressureMin: ip.FeedPressureMin * MPa,
			FeedPressureMax: ip.FeedPressureMax * MPa,
		},
	}
	if ip.ChamberPressure > 0 && ip.FeedPressure > 0 {
		dc.ChamberPressureRatio = dc.ChamberPressure / dc.FeedPressure
	}
	if req, ok := ip.Requirements["REQ-001"]; ok && req.Min != nil && req.Max != nil {
		dc.Acceptance.ThrustMin, dc.Acceptance.ThrustMax = *req.Min, *req.Max
	}
	if req, ok := ip.Requirements["REQ-002"]; ok && req.Min != nil {
		dc.Acceptance.SpecificImpulseMin = *req.Min
	}
	return
}

// AssumptionList states the modeling assumptions with the values this input resolves to,
// followed by any listed in the input file.
func (ip *InputParameters) AssumptionList() (list []string) {
	dc := ip.DesignConstants()
	list = []string{
		fmt.Sprintf("Ammonia dissociation degree (alpha) = %g", dc.Dissociation),
		fmt.Sprintf("Specific heat ratio (gamma) = %g, constant through the nozzle", dc.Gamma),
		fmt.Sprintf("Chamber temperature = %g K", dc.ChamberTemperature),
		fmt.Sprintf("Chamber pressure = %.4g%% of feed pressure", dc.ChamberPressureRatio*100),
		fmt.Sprintf("Feed pressure = %g MPa", ip.FeedPressure),
		fmt.Sprintf("Expansion ratio = %g", dc.AreaRatio),
		fmt.Sprintf("Nozzle half-angle = %g deg, conical divergent section", dc.HalfAngle),
		fmt.Sprintf("Nozzle efficiency = %g on exit velocity", dc.Efficiency),
		"Vacuum operation (Pa = 0)",
		"Steady-state operation",
		"Ideal gas, isentropic flow, frozen composition from catalytic decomposition",
	}
	return append(list, ip.Assumptions...)
}

// RequirementSet validates the requirements; malformed ones fail here, before any sizing is done.
func (ip *InputParameters) RequirementSet() (s compliance.Set, err error) {
	keys := make([]string, 0, len(ip.Requirements))
	for k := range ip.Requirements {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	reqs := make([]compliance.Requirement, 0, len(keys))
	for _, id := range keys {
		var (
			in   = ip.Requirements[id]
			kind types.RequirementKind
		)
		if kind, err = types.NewRequirementKind(in.Type); err != nil {
			return s, fmt.Errorf("requirement %s: %w", id, err)
		}
		var lo, hi float64
		if kind != types.RequirementMaximum {
			if in.Min == nil {
				return s, fmt.Errorf("requirement %s: %s needs Min: %w", id, kind, types.ErrConfiguration)
			}
			lo = *in.Min
		}
		if kind != types.RequirementMinimum {
			if in.Max == nil {
				return s, fmt.Errorf("requirement %s: %s needs Max: %w", id, kind, types.ErrConfiguration)
			}
			hi = *in.Max
		}
		switch kind {
		case types.RequirementMinimum:
			reqs = append(reqs, compliance.NewMinimum(id, in.Description, in.Quantity, in.Unit, lo))
		case types.RequirementMaximum:
			reqs = append(reqs, compliance.NewMaximum(id, in.Description, in.Quantity, in.Unit, hi))
		case types.RequirementBand:
			reqs = append(reqs, compliance.NewBand(id, in.Description, in.Quantity, in.Unit, lo, hi))
		}
	}
	return compliance.NewSet(reqs...)
}
