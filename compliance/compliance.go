package compliance

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/monoprop/types"
)

// LowMarginPercent is the margin below which a passing requirement is reported as marginal.
const LowMarginPercent = 10.

// Lookup resolves a dotted record path such as "computed_results.thrust_N" to a value.
type Lookup interface {
	Float(path string) (float64, error)
}

type Requirement struct {
	ID          string
	Description string
	Quantity    string // record path of the checked value
	Unit        string
	Kind        types.RequirementKind
	Min, Max    float64
}

func NewMinimum(id, description, quantity, unit string, min float64) Requirement {
	return Requirement{ID: id, Description: description, Quantity: quantity, Unit: unit,
		Kind: types.RequirementMinimum, Min: min}
}

func NewMaximum(id, description, quantity, unit string, max float64) Requirement {
	return Requirement{ID: id, Description: description, Quantity: quantity, Unit: unit,
		Kind: types.RequirementMaximum, Max: max}
}

func NewBand(id, description, quantity, unit string, lo, hi float64) Requirement {
	return Requirement{ID: id, Description: description, Quantity: quantity, Unit: unit,
		Kind: types.RequirementBand, Min: lo, Max: hi}
}

func threshold(id, side string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) || val <= 0 {
		return fmt.Errorf("requirement %s: %s threshold %g must be finite and positive: %w",
			id, side, val, types.ErrConfiguration)
	}
	return nil
}

// Validate rejects requirements that would misreport: missing identity, non-positive thresholds
// (margins are relative to the threshold) and inverted bands.
func (r Requirement) Validate() (err error) {
	if r.ID == "" {
		return fmt.Errorf("requirement without an id: %w", types.ErrConfiguration)
	}
	if r.Quantity == "" {
		return fmt.Errorf("requirement %s: no quantity to check: %w", r.ID, types.ErrConfiguration)
	}
	switch r.Kind {
	case types.RequirementMinimum:
		err = threshold(r.ID, "minimum", r.Min)
	case types.RequirementMaximum:
		err = threshold(r.ID, "maximum", r.Max)
	case types.RequirementBand:
		if err = threshold(r.ID, "lower", r.Min); err != nil {
			return
		}
		if err = threshold(r.ID, "upper", r.Max); err != nil {
			return
		}
		if r.Min > r.Max {
			err = fmt.Errorf("requirement %s: band [%g, %g] has lo > hi: %w",
				r.ID, r.Min, r.Max, types.ErrConfiguration)
		}
	default:
		err = fmt.Errorf("requirement %s: unknown kind %d: %w", r.ID, r.Kind, types.ErrConfiguration)
	}
	return
}

/*
Evaluate projects a computed value onto a compliance record. Margins are signed percentages of the
threshold; for a band the smaller of the two one-sided margins is reported.
*/
func (r Requirement) Evaluate(value float64) (rec Record) {
	rec = Record{
		ID:          r.ID,
		Description: r.Description,
		Quantity:    r.Quantity,
		Kind:        r.Kind,
		Computed:    value,
		Unit:        r.Unit,
	}
	var pass bool
	switch r.Kind {
	case types.RequirementMinimum:
		lo := r.Min
		rec.ThresholdMin = &lo
		rec.MarginPercent = (value - lo) / lo * 100
		pass = value >= lo
	case types.RequirementMaximum:
		hi := r.Max
		rec.ThresholdMax = &hi
		rec.MarginPercent = (hi - value) / hi * 100
		pass = value <= hi
	case types.RequirementBand:
		lo, hi := r.Min, r.Max
		rec.ThresholdMin, rec.ThresholdMax = &lo, &hi
		lower := (value - lo) / lo * 100
		upper := (hi - value) / hi * 100
		rec.MarginPercent = math.Min(lower, upper)
		pass = lower >= 0 && upper >= 0
	}
	rec.Status = types.NewVerdict(pass)
	return
}

type Record struct {
	ID            string                `json:"-"`
	Description   string                `json:"description"`
	Quantity      string                `json:"quantity"`
	Kind          types.RequirementKind `json:"type"`
	ThresholdMin  *float64              `json:"threshold_min,omitempty"`
	ThresholdMax  *float64              `json:"threshold_max,omitempty"`
	Computed      float64               `json:"computed"`
	Unit          string                `json:"unit"`
	MarginPercent float64               `json:"margin_percent"`
	Status        types.Verdict         `json:"status"`
}

func (rec Record) Passed() bool { return rec.Status == types.VerdictPass }

// Requirement recovers the requirement a record was evaluated against.
func (rec Record) Requirement() (r Requirement, err error) {
	r = Requirement{ID: rec.ID, Description: rec.Description, Quantity: rec.Quantity,
		Unit: rec.Unit, Kind: rec.Kind}
	if rec.ThresholdMin != nil {
		r.Min = *rec.ThresholdMin
	}
	if rec.ThresholdMax != nil {
		r.Max = *rec.ThresholdMax
	}
	err = r.Validate()
	return
}

// Report maps requirement id to its compliance record.
type Report map[string]Record

func (rp Report) IDs() (ids []string) {
	for id := range rp {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return
}

func (rp Report) AllPass() bool {
	for _, rec := range rp {
		if !rec.Passed() {
			return false
		}
	}
	return true
}

// Marginal lists requirements whose margin is below pct, failing ones included.
func (rp Report) Marginal(pct float64) (ids []string) {
	for _, id := range rp.IDs() {
		if rp[id].MarginPercent < pct {
			ids = append(ids, id)
		}
	}
	return
}

// Set is a validated, ordered collection of requirements with unique ids.
type Set struct {
	reqs []Requirement
}

func NewSet(reqs ...Requirement) (s Set, err error) {
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if err = r.Validate(); err != nil {
			return Set{}, err
		}
		if seen[r.ID] {
			return Set{}, fmt.Errorf("duplicate requirement %s: %w", r.ID, types.ErrConfiguration)
		}
		seen[r.ID] = true
	}
	s.reqs = append([]Requirement(nil), reqs...)
	return
}

// FromReport rebuilds the requirement set a report was produced from.
func FromReport(rp Report) (s Set, err error) {
	reqs := make([]Requirement, 0, len(rp))
	for _, id := range rp.IDs() {
		rec := rp[id]
		rec.ID = id
		var r Requirement
		if r, err = rec.Requirement(); err != nil {
			return
		}
		reqs = append(reqs, r)
	}
	return NewSet(reqs...)
}

func (s Set) Requirements() []Requirement {
	return append([]Requirement(nil), s.reqs...)
}

func (s Set) Len() int { return len(s.reqs) }

// Evaluate checks every requirement against values read from src. A missing value is an error;
// a violated threshold is not.
func (s Set) Evaluate(src Lookup) (rp Report, err error) {
	rp = make(Report, len(s.reqs))
	for _, r := range s.reqs {
		var val float64
		if val, err = src.Float(r.Quantity); err != nil {
			return nil, fmt.Errorf("requirement %s: %w", r.ID, err)
		}
		rp[r.ID] = r.Evaluate(val)
	}
	return
}
