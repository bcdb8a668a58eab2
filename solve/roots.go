// Package solve provides the scalar root finders backing event-time prediction.
//
// Event times in the engine are roots of low-degree polynomials: the squared
// distance between two balls is quartic in elapsed time, the signed distance
// between a ball and a cushion line is quadratic. Rather than iterating the
// trajectories, the scheduler asks this package for all roots and keeps the
// smallest physically meaningful one.
//
// Degrees above two are solved through the companion matrix: the roots of a
// monic polynomial are the eigenvalues of its companion form, computed with
// gonum's general eigendecomposition. This handles degenerate leading
// coefficients (e.g. two balls decelerating identically, which collapses the
// quartic to a quadratic) by trimming before building the matrix.
//
// References:
//   - Horn & Johnson: "Matrix Analysis", companion matrices (§3.3)
package solve

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// ImagTolerance is the largest imaginary magnitude a complex root may carry
	// and still be accepted as real. Eigenvalue solvers report real roots with
	// tiny imaginary residue.
	ImagTolerance = 1e-9

	// TimeTolerance is the smallest root treated as "in the future". Roots at or
	// below it belong to the event being resolved right now.
	TimeTolerance = 1e-9

	// leadingTolerance decides when a leading coefficient is effectively zero
	// and the polynomial degree collapses.
	leadingTolerance = 1e-15
)

// Quadratic returns the real roots of a·t² + b·t + c = 0 in ascending order.
// A degenerate leading coefficient degrades to the linear case.
func Quadratic(a, b, c float64) []float64 {
	if math.Abs(a) < leadingTolerance {
		if math.Abs(b) < leadingTolerance {
			return nil
		}
		return []float64{-c / b}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}

	// Citardauq form on the small root avoids cancellation
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		// b and disc both vanish, so c does too: a double root at zero
		return []float64{0, 0}
	}
	r1, r2 := q/a, c/q
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2}
}

// Polynomial returns all complex roots of the polynomial whose coefficients are
// given from the highest degree down, e.g. Polynomial(1, 0, -4) solves t² = 4.
// Leading coefficients that vanish are trimmed first.
func Polynomial(coeffs ...float64) []complex128 {
	lead := 0
	for lead < len(coeffs)-1 && math.Abs(coeffs[lead]) < leadingTolerance {
		lead++
	}
	coeffs = coeffs[lead:]

	n := len(coeffs) - 1
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []complex128{complex(-coeffs[1]/coeffs[0], 0)}
	case n == 2:
		roots := Quadratic(coeffs[0], coeffs[1], coeffs[2])
		out := make([]complex128, len(roots))
		for i, r := range roots {
			out[i] = complex(r, 0)
		}
		return out
	}

	// Companion matrix of the monic polynomial: ones on the subdiagonal,
	// negated coefficients in the last column.
	data := make([]float64, n*n)
	for row := 0; row < n; row++ {
		if row > 0 {
			data[row*n+row-1] = 1
		}
		data[row*n+n-1] = -coeffs[n-row] / coeffs[0]
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, data), mat.EigenNone); !ok {
		return nil
	}
	return eig.Values(nil)
}

// MinPositiveRoot filters a root set down to the earliest future time: roots
// with non-negligible imaginary part or real part at or below TimeTolerance
// are discarded. It returns +Inf when no root survives, which the scheduler
// reads as "this event never happens".
func MinPositiveRoot(roots []complex128) float64 {
	best := math.Inf(1)
	for _, r := range roots {
		if math.Abs(imag(r)) > ImagTolerance {
			continue
		}
		if t := real(r); t > TimeTolerance && t < best {
			best = t
		}
	}
	return best
}
