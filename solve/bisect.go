package solve

import (
	"errors"
	"math"
)

// ErrNoBracket is returned when the supplied interval does not bracket a sign
// change. This is a caller contract violation, not a numerical outcome.
var ErrNoBracket = errors.New("solve: interval does not bracket a sign change")

// Bisect finds a root of f inside [lo, hi] by interval halving, stopping when
// the interval is narrower than tol. f must change sign over the interval.
func Bisect(f func(float64) float64, lo, hi, tol float64) (float64, error) {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return 0, ErrNoBracket
	}

	for hi-lo > tol {
		mid := 0.5 * (lo + hi)
		fmid := f(mid)
		if fmid == 0 {
			return mid, nil
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}

	return 0.5 * (lo + hi), nil
}
