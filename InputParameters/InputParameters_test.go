package InputParameters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/types"
)

func TestDefault(t *testing.T) {
	ip := Default()
	dc := ip.DesignConstants()
	assert.Equal(t, nozzle.DefaultDesignConstants(), dc)
	s, err := ip.RequirementSet()
	require.NoError(t, err)
	reqs := s.Requirements()
	require.Len(t, reqs, 3)
	assert.Equal(t, "REQ-001", reqs[0].ID)
	assert.Equal(t, types.RequirementBand, reqs[0].Kind)
	assert.Equal(t, "REQ-002", reqs[1].ID)
	assert.Equal(t, types.RequirementMinimum, reqs[1].Kind)
	assert.Equal(t, 220., reqs[1].Min)
	assert.Equal(t, "parameters.feed_pressure_MPa", reqs[2].Quantity)
	var buf bytes.Buffer
	ip.Fprint(&buf)
	assert.Contains(t, buf.String(), "Requirements[REQ-009]")
}

func TestParse(t *testing.T) {
	{
		fileInput := []byte(`
Title: Test Case
DesignID: DES-002
AreaRatio: 60
FeedPressure: 0.2 # MPa
ChamberPressure: 0.16
Requirements:
  REQ-002:
    Description: Isp floor
    Quantity: computed_results.specific_impulse_s
    Unit: s
    Type: min
    Min: 200
  REQ-011:
    Description: Exit temperature ceiling
    Quantity: computed_results.exit_temperature_K
    Unit: K
    Type: max
    Max: 400
`)
		ip := Default()
		require.NoError(t, ip.Parse(fileInput))
		assert.Equal(t, "DES-002", ip.DesignID)
		// Unset fields keep their defaults
		assert.Equal(t, 1.28, ip.Gamma)
		dc := ip.DesignConstants()
		assert.Equal(t, 60., dc.AreaRatio)
		assert.InDelta(t, 0.16e6, dc.ChamberPressure, 1e-6)
		assert.InDelta(t, 0.8, dc.ChamberPressureRatio, 1e-12)
		assert.Equal(t, 200., dc.Acceptance.SpecificImpulseMin)
		s, err := ip.RequirementSet()
		require.NoError(t, err)
		assert.Equal(t, 4, s.Len())
		reqs := s.Requirements()
		assert.Equal(t, "REQ-011", reqs[3].ID)
		assert.Equal(t, types.RequirementMaximum, reqs[3].Kind)
		assert.Equal(t, 400., reqs[3].Max)
	}
	{ // Inverted band is rejected before any sizing
		ip := Default()
		require.NoError(t, ip.Parse([]byte(`
Requirements:
  REQ-001:
    Quantity: computed_results.thrust_N
    Type: range
    Min: 1.05
    Max: 0.95
`)))
		_, err := ip.RequirementSet()
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
	{ // Unknown type, missing threshold
		for _, doc := range []string{
			"Requirements:\n  REQ-100:\n    Quantity: q\n    Type: between\n    Min: 1\n",
			"Requirements:\n  REQ-100:\n    Quantity: q\n    Type: range\n    Min: 1\n",
			"Requirements:\n  REQ-100:\n    Quantity: q\n    Type: minimum\n",
		} {
			ip := Default()
			require.NoError(t, ip.Parse([]byte(doc)))
			_, err := ip.RequirementSet()
			assert.True(t, errors.Is(err, types.ErrConfiguration), doc)
		}
	}
	{
		ip := Default()
		err := ip.Parse([]byte("Gamma: [1, 2]"))
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
}
