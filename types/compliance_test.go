package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Verdicts round trip through their text form
		assert.Equal(t, "PASS", NewVerdict(true).String())
		assert.Equal(t, "FAIL", NewVerdict(false).String())
		var v Verdict
		require.NoError(t, v.UnmarshalText([]byte("pass")))
		assert.Equal(t, VerdictPass, v)
		require.NoError(t, v.UnmarshalText([]byte("FAIL")))
		assert.Equal(t, VerdictFail, v)
		err := v.UnmarshalText([]byte("maybe"))
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	{ // Requirement kinds accept the aliases used by the record files
		rk, err := NewRequirementKind("range")
		require.NoError(t, err)
		assert.Equal(t, RequirementBand, rk)
		rk, err = NewRequirementKind(" Minimum ")
		require.NoError(t, err)
		assert.Equal(t, RequirementMinimum, rk)
		rk, err = NewRequirementKind("max")
		require.NoError(t, err)
		assert.Equal(t, RequirementMaximum, rk)
		b, _ := RequirementBand.MarshalText()
		assert.Equal(t, "range", string(b))
		assert.Equal(t, "RequirementKind(9)", RequirementKind(9).String())
		_, err = NewRequirementKind("sideways")
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	{ // Error taxonomy unwraps to its sentinels
		var err error = NewDomainError("gamma", 1, "gamma > 1")
		assert.True(t, errors.Is(err, ErrDomain))
		var de *DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "gamma", de.Quantity)
		assert.Contains(t, err.Error(), "gamma > 1")

		err = &MissingFieldError{Path: "computed_results.thrust_N"}
		assert.True(t, errors.Is(err, ErrMissingField))
		assert.Contains(t, err.Error(), "computed_results.thrust_N")
	}
}
