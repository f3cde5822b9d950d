package verification

import (
	"math"

	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/utils"
)

// Tolerance is the largest relative difference, in percent, for a field to count as agreeing.
const Tolerance = 5.0

// ComparedFields are the computed_results entries cross-checked against the primary record.
var ComparedFields = []string{
	"thrust_N",
	"specific_impulse_s",
	"throat_diameter_mm",
	"exit_diameter_mm",
	"mass_flow_rate_kg_s",
	"exit_velocity_m_s",
	"exit_pressure_Pa",
	"exit_temperature_K",
}

type Comparison struct {
	Primary          float64 `json:"primary"`
	Secondary        float64 `json:"secondary"`
	DeltaAbsolute    float64 `json:"delta_absolute"`
	DeltaPercent     float64 `json:"delta_percent"`
	ExceedsTolerance bool    `json:"exceeds_tolerance"`
}

// Compare measures the secondary value relative to the primary. A zero primary has no relative
// delta and is reported as a domain error.
func Compare(field string, primary, secondary float64) (c Comparison, err error) {
	if primary == 0 || !utils.IsFinite(primary, secondary) {
		err = types.NewDomainError(field, primary, "finite, non-zero primary value")
		return
	}
	c = Comparison{
		Primary:       primary,
		Secondary:     secondary,
		DeltaAbsolute: secondary - primary,
		DeltaPercent:  utils.RelativeDelta(primary, secondary),
	}
	c.ExceedsTolerance = math.Abs(c.DeltaPercent) > Tolerance
	return
}
