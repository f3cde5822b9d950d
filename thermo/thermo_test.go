package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/monoprop/types"
)

func TestGasProperties(t *testing.T) {
	c := HeritageConstants()
	{ // Half dissociated ammonia
		pm, err := DecompositionMoles(0.5)
		require.NoError(t, err)
		assert.InDelta(t, 2./3., pm.Ammonia, 1e-15)
		assert.InDelta(t, 2./3., pm.Nitrogen, 1e-15)
		assert.InDelta(t, 1., pm.Hydrogen, 1e-15)
		assert.InDelta(t, 5./3., pm.Total, 1e-15)

		gs, err := c.GasProperties(0.5)
		require.NoError(t, err)
		assert.InDelta(t, 19.2276e-3, gs.MeanMolecularWeight, 1e-9)
		assert.InDelta(t, 8314.46/19.2276e-3, gs.SpecificGasConstant, 1e-6)
	}
	{ // End points of the dissociation range
		gs, err := c.GasProperties(0)
		require.NoError(t, err)
		// 4/3 NH3 + 1/3 N2 over 4/3 moles
		assert.InDelta(t, (17.031*4./3.+28.014/3.)/(4./3.)/1000, gs.MeanMolecularWeight, 1e-12)
		gs1, err := c.GasProperties(1)
		require.NoError(t, err)
		assert.Greater(t, gs1.SpecificGasConstant, 0.)
		assert.Less(t, gs1.MeanMolecularWeight, gs.MeanMolecularWeight)
	}
	{ // Dissociation degree outside [0,1]
		for _, alpha := range []float64{-0.01, 1.01, math.NaN()} {
			_, err := c.GasProperties(alpha)
			assert.True(t, errors.Is(err, types.ErrDomain), "alpha = %v", alpha)
		}
	}
	{ // The two constant tables agree closely but are not identical
		r := ReferenceConstants()
		gsH, _ := c.GasProperties(0.5)
		gsR, _ := r.GasProperties(0.5)
		assert.NotEqual(t, gsH.SpecificGasConstant, gsR.SpecificGasConstant)
		assert.InEpsilon(t, gsH.SpecificGasConstant, gsR.SpecificGasConstant, 1e-3)
	}
	assert.InDelta(t, 1.245, DissociationGamma(0.5), 1e-15)
}

func TestCharacteristicVelocity(t *testing.T) {
	{ // Closed form at gamma = 1.4 reduces to sqrt(R Tc)/0.6847
		R, Tc := 287., 300.
		cStar, err := CharacteristicVelocity(1.4, R, Tc)
		require.NoError(t, err)
		gamma := 1.4
		gammaFn := math.Sqrt(gamma) * math.Pow(2/(gamma+1), (gamma+1)/(2*(gamma-1)))
		assert.InDelta(t, math.Sqrt(R*Tc)/gammaFn, cStar, 1e-9)
		assert.InDelta(t, 0.684731, gammaFn, 1e-6)
	}
	{ // Design point
		gs, err := HeritageConstants().GasProperties(0.5)
		require.NoError(t, err)
		cStar, err := CharacteristicVelocity(1.28, gs.SpecificGasConstant, 1400)
		require.NoError(t, err)
		assert.InDelta(t, 37076.40, cStar, 0.01)
	}
	{ // gamma = 1 is a domain error, never NaN or Inf
		cStar, err := CharacteristicVelocity(1.0, 432423, 1400)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrDomain))
		assert.Equal(t, 0., cStar)
		_, err = CharacteristicVelocity(0.9, 432423, 1400)
		assert.True(t, errors.Is(err, types.ErrDomain))
		_, err = CharacteristicVelocity(1.28, -1, 1400)
		assert.True(t, errors.Is(err, types.ErrDomain))
		_, err = CharacteristicVelocity(1.28, 432423, 0)
		assert.True(t, errors.Is(err, types.ErrDomain))
	}
}
