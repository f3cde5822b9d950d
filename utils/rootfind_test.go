package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFinders(t *testing.T) {
	finders := map[string]RootFinder{
		"brent":     Brent,
		"bisection": Bisection,
	}
	for name, find := range finders {
		{ // sqrt(2) as the positive root of x^2 - 2
			x, err := find(func(x float64) float64 { return x*x - 2 }, 0, 2, 1e-12)
			require.NoError(t, err, name)
			assert.InDelta(t, math.Sqrt2, x, 1e-10, name)
		}
		{ // Cubic with a single real root and decreasing function
			x, err := find(func(x float64) float64 { return -(x*x*x - x - 1) }, 1, 2, 1e-12)
			require.NoError(t, err, name)
			assert.InDelta(t, 1.3247179572447460, x, 1e-10, name)
		}
		{ // Roots on the bracket ends are returned directly
			x, err := find(func(x float64) float64 { return x - 1 }, 1, 3, 1e-12)
			require.NoError(t, err, name)
			assert.Equal(t, 1., x, name)
			x, err = find(func(x float64) float64 { return x - 3 }, 1, 3, 1e-12)
			require.NoError(t, err, name)
			assert.Equal(t, 3., x, name)
		}
		{ // No sign change is reported, not looped on
			calls := 0
			_, err := find(func(x float64) float64 { calls++; return x*x + 1 }, -1, 1, 1e-12)
			assert.True(t, errors.Is(err, ErrNoSignChange), name)
			assert.Equal(t, 2, calls, name)
		}
		{ // Degenerate brackets and tolerances
			_, err := find(func(x float64) float64 { return x }, 1, -1, 1e-12)
			assert.True(t, errors.Is(err, ErrInvalidBounds), name)
			_, err = find(func(x float64) float64 { return x }, -1, 1, 0)
			assert.True(t, errors.Is(err, ErrInvalidBounds), name)
			_, err = find(func(x float64) float64 { return math.NaN() }, -1, 1, 1e-6)
			assert.True(t, errors.Is(err, ErrNoSignChange), name)
		}
		{ // Identical inputs give identical roots
			f := func(x float64) float64 { return math.Cos(x) - x }
			x1, err1 := find(f, 0, 1, 1e-12)
			x2, err2 := find(f, 0, 1, 1e-12)
			require.NoError(t, err1, name)
			require.NoError(t, err2, name)
			assert.Equal(t, x1, x2, name)
			assert.InDelta(t, 0.7390851332151607, x1, 1e-10, name)
		}
	}
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 9., POW(3, 2))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, math.Pow(1.1, 12), POW(1.1, 12), 1e-12)
	assert.InDelta(t, 2., CircleDiameter(math.Pi), 1e-15)
	assert.InDelta(t, 6., RelativeDelta(1, 1.06), 1e-12)
	assert.True(t, IsFinite(1, 2, 3))
	assert.False(t, IsFinite(1, math.Inf(1)))
	assert.False(t, IsFinite(math.NaN()))
}
