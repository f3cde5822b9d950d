package utils

import (
	"errors"
	"math"
)

const (
	MaxRootIterations = 200
	machineEpsilon    = 2.220446049250313e-16
)

var (
	ErrNoSignChange  = errors.New("root is not bracketed: no sign change")
	ErrNotConverged  = errors.New("root finder did not converge")
	ErrInvalidBounds = errors.New("invalid bracket bounds")
)

// RootFinder locates a zero of f inside [a, b] to within an absolute tolerance on x.
type RootFinder func(f func(x float64) float64, a, b, tol float64) (float64, error)

func checkBracket(f func(float64) float64, a, b, tol float64) (fa, fb float64, err error) {
	if !IsFinite(a, b, tol) || a >= b || tol <= 0 {
		err = ErrInvalidBounds
		return
	}
	fa, fb = f(a), f(b)
	if !IsFinite(fa, fb) {
		err = ErrNoSignChange
		return
	}
	if fa != 0 && fb != 0 && (fa > 0) == (fb > 0) {
		err = ErrNoSignChange
	}
	return
}

/*
Brent combines bisection, the secant method and inverse quadratic interpolation. Every iterate
stays inside the current bracket, so convergence is guaranteed once the bracket holds a sign change.
*/
func Brent(f func(x float64) float64, a, b, tol float64) (float64, error) {
	fa, fb, err := checkBracket(f, a, b, tol)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	var (
		c, fc = b, fb
		d, e  float64
	)
	for iter := 0; iter < MaxRootIterations; iter++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*machineEpsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var (
				p, q float64
				s    = fb / fa
			)
			if a == c {
				// Secant step
				p = 2 * xm * s
				q = 1 - s
			} else {
				// Inverse quadratic interpolation
				qq, r := fa/fc, fb/fc
				p = s * (2*xm*qq*(qq-r) - (b-a)*(r-1))
				q = (qq - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}
	return b, ErrNotConverged
}

// Bisection halves the bracket until it is narrower than tol.
func Bisection(f func(x float64) float64, a, b, tol float64) (float64, error) {
	fa, fb, err := checkBracket(f, a, b, tol)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	for iter := 0; iter < MaxRootIterations; iter++ {
		mid := a + 0.5*(b-a)
		if b-a <= tol || mid == a || mid == b {
			return mid, nil
		}
		fm := f(mid)
		switch {
		case fm == 0:
			return mid, nil
		case (fm > 0) == (fa > 0):
			a, fa = mid, fm
		default:
			b = mid
		}
	}
	return a + 0.5*(b-a), ErrNotConverged
}
