package verification

import (
	"errors"
	"math"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/monoprop/InputParameters"
	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/record"
	"github.com/notargets/monoprop/sizing"
	"github.com/notargets/monoprop/types"
)

func baseline(t *testing.T) record.Fields {
	d, err := sizing.Run(InputParameters.Default(), nozzle.NewPrimaryModel(), log.NewNopLogger())
	require.NoError(t, err)
	f, err := record.FieldsOf(d)
	require.NoError(t, err)
	return f
}

func TestCompare(t *testing.T) {
	{
		c, err := Compare("thrust_N", 1.0, 1.06)
		require.NoError(t, err)
		assert.InDelta(t, 6.0, c.DeltaPercent, 1e-9)
		assert.InDelta(t, 0.06, c.DeltaAbsolute, 1e-12)
		assert.True(t, c.ExceedsTolerance)
	}
	{
		c, err := Compare("thrust_N", 1.0, 1.03)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, c.DeltaPercent, 1e-9)
		assert.False(t, c.ExceedsTolerance)
	}
	{ // Sign of the delta does not matter
		c, err := Compare("thrust_N", 1.0, 0.94)
		require.NoError(t, err)
		assert.InDelta(t, -6.0, c.DeltaPercent, 1e-9)
		assert.True(t, c.ExceedsTolerance)
	}
	{
		_, err := Compare("thrust_N", 0, 1)
		assert.True(t, errors.Is(err, types.ErrDomain))
		_, err = Compare("thrust_N", 1, math.NaN())
		assert.True(t, errors.Is(err, types.ErrDomain))
	}
}

func TestRun(t *testing.T) {
	f := baseline(t)
	{ // Default independent model agrees with the primary
		vr, err := Run(f, nozzle.NewIndependentModel(),
			Options{Baseline: "DES-001", SweepPoints: DefaultSweepPoints}, log.NewNopLogger())
		require.NoError(t, err)
		assert.Equal(t, DefaultID, vr.VerificationID)
		assert.Equal(t, "DES-001", vr.Baseline)
		assert.Equal(t, types.VerdictPass, vr.OverallAgreement)
		assert.Empty(t, vr.Exceeding())
		require.Len(t, vr.ComparisonWithPrimary, len(ComparedFields))
		for name, c := range vr.ComparisonWithPrimary {
			assert.Less(t, math.Abs(c.DeltaPercent), 0.1, name)
		}
		assert.Equal(t, "CODATA 2018 / IUPAC atomic weights", vr.IndependentConstants.Source)
		assert.Equal(t, [2]float64{1.01, 50}, vr.IndependentConstants.Bracket)
		assert.Equal(t, 1.28, vr.IndependentConstants.SpecificHeatRatio)
		assert.True(t, vr.RequirementsVerification.AllPass())
		assert.Len(t, vr.RequirementsVerification, 3)

		ps := vr.PressureSweep
		require.Len(t, ps.FeedPressureMPa, DefaultSweepPoints)
		assert.InDelta(t, 0.15, ps.FeedPressureMPa[0], 1e-12)
		assert.InDelta(t, 0.30, ps.FeedPressureMPa[DefaultSweepPoints-1], 1e-12)
		assert.InDelta(t, 0.6, ps.ThrustMinN, 1e-3)
		assert.InDelta(t, 1.2, ps.ThrustMaxN, 1e-3)
		assert.InDelta(t, 0, ps.SpecificImpulseStdDevS, 1e-9)
		assert.InEpsilon(t, vr.ComputedResults.SpecificImpulseS, ps.SpecificImpulseMeanS, 1e-9)
		// Exit Mach is fixed by the geometry, so exit velocity and temperature do not move
		require.Len(t, ps.ExitVelocityMS, DefaultSweepPoints)
		require.Len(t, ps.ExitTemperatureK, DefaultSweepPoints)
		for i := range ps.ExitVelocityMS {
			assert.InEpsilon(t, vr.ComputedResults.ExitVelocityMS, ps.ExitVelocityMS[i], 1e-9)
			assert.InEpsilon(t, vr.ComputedResults.ExitTemperatureK, ps.ExitTemperatureK[i], 1e-9)
		}
		f, err := record.FieldsOf(vr)
		require.NoError(t, err)
		assert.True(t, f.Has("pressure_sweep.exit_velocity_m_s"))
		assert.True(t, f.Has("pressure_sweep.exit_temperature_K"))
	}
	{ // Gamma from the dissociation correlation disagrees with the design gamma
		m := nozzle.NewIndependentModel()
		m.GammaFromGas = true
		vr, err := Run(f, m, Options{SweepPoints: 10}, log.NewNopLogger())
		require.NoError(t, err)
		assert.Equal(t, types.VerdictFail, vr.OverallAgreement)
		assert.Contains(t, vr.Exceeding(), "specific_impulse_s")
		assert.InDelta(t, 1.245, vr.IndependentConstants.SpecificHeatRatio, 1e-12)
		// Thrust is sized to target in both, so it still agrees
		assert.False(t, vr.ComparisonWithPrimary["thrust_N"].ExceedsTolerance)
	}
	{ // The baseline is read, never modified
		before, err := f.Float("computed_results.thrust_N")
		require.NoError(t, err)
		_, err = Run(f, nozzle.NewIndependentModel(), Options{SweepPoints: 5}, log.NewNopLogger())
		require.NoError(t, err)
		after, err := f.Float("computed_results.thrust_N")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	}
	{ // Too few sweep points
		_, err := Run(f, nozzle.NewIndependentModel(), Options{SweepPoints: 1}, log.NewNopLogger())
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
}

func TestRunMissingFields(t *testing.T) {
	for _, path := range [][2]string{
		{"computed_results", "thrust_N"},
		{"parameters", "chamber_pressure_Pa"},
	} {
		f := baseline(t)
		delete(f[path[0]].(map[string]interface{}), path[1])
		vr, err := Run(f, nozzle.NewIndependentModel(), Options{SweepPoints: 10}, log.NewNopLogger())
		assert.Nil(t, vr)
		var mfe *types.MissingFieldError
		require.True(t, errors.As(err, &mfe))
		assert.Equal(t, path[0]+"."+path[1], mfe.Path)
	}
	{
		f := baseline(t)
		delete(f, "requirements_compliance")
		_, err := Run(f, nozzle.NewIndependentModel(), Options{SweepPoints: 10}, log.NewNopLogger())
		assert.True(t, errors.Is(err, types.ErrMissingField))
	}
}
