// Package optimize holds a derivative-free Nelder-Mead simplex minimizer and
// the censored log-likelihood objectives it is used with.
package optimize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Objective maps a parameter vector to the value being minimized.
type Objective func(x []float64) float64

// Simplex coefficients and limits.
const (
	Reflection    = 1.0
	Contraction   = 0.5
	Expansion     = 2.0
	Shrink        = 0.5
	MaxIterations = 1000

	relativeStep = 0.05
	zeroStep     = 0.00025
)

// Result is the outcome of a minimization. Converged is false when the
// iteration cap was reached before the simplex spread fell below tolerance;
// X is then the best vertex found so far.
type Result struct {
	X          []float64 `json:"x"`
	F          float64   `json:"f"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	// Spread is the standard deviation of the objective over the final simplex.
	Spread float64 `json:"spread"`
}

type vertex struct {
	x  []float64
	fx float64
}

// NelderMead minimizes f starting from x0. The initial simplex perturbs each
// coordinate by 5% (or by 0.00025 when the coordinate is zero). Iteration stops
// when the standard deviation of the vertex values drops below tol, or after
// MaxIterations. x0 is not modified.
func NelderMead(x0 []float64, tol float64, f Objective) Result {
	n := len(x0)
	if n == 0 {
		return Result{X: []float64{}, F: f(nil), Converged: true}
	}

	simplex := make([]vertex, n+1)
	simplex[0] = vertex{x: append([]float64(nil), x0...)}
	simplex[0].fx = f(simplex[0].x)
	for i := 1; i <= n; i++ {
		x := append([]float64(nil), x0...)
		if x[i-1] != 0 {
			x[i-1] += relativeStep * x[i-1]
		} else {
			x[i-1] += zeroStep
		}
		simplex[i] = vertex{x: x, fx: f(x)}
	}

	centroid := make([]float64, n)
	xr := make([]float64, n)
	xe := make([]float64, n)
	xc := make([]float64, n)

	iterations := 0
	converged := false
	spread := math.Inf(1)

	for iterations < MaxIterations {
		iterations++
		sort.SliceStable(simplex, func(i, j int) bool { return simplex[i].fx < simplex[j].fx })

		spread = simplexSpread(simplex)
		if spread < tol {
			converged = true
			break
		}

		for j := range centroid {
			centroid[j] = 0
		}
		for i := 0; i < n; i++ {
			floats.AddScaled(centroid, 1/float64(n), simplex[i].x)
		}

		best, secondWorst, worst := &simplex[0], &simplex[n-1], &simplex[n]

		// Reflection
		through(xr, centroid, worst.x, Reflection)
		fr := f(xr)
		if best.fx <= fr && fr < secondWorst.fx {
			worst.accept(xr, fr)
			continue
		}

		// Expansion
		if fr < best.fx {
			through(xe, centroid, worst.x, Expansion)
			if fe := f(xe); fe < fr {
				worst.accept(xe, fe)
			} else {
				worst.accept(xr, fr)
			}
			continue
		}

		// Contraction: outside when the reflected point beats the worst vertex,
		// inside otherwise.
		if fr < worst.fx {
			through(xc, centroid, worst.x, Contraction)
			if fc := f(xc); fc <= fr {
				worst.accept(xc, fc)
				continue
			}
		} else {
			through(xc, centroid, worst.x, -Contraction)
			if fc := f(xc); fc < worst.fx {
				worst.accept(xc, fc)
				continue
			}
		}

		// Shrink every vertex toward the best one.
		for i := 1; i <= n; i++ {
			for j := 0; j < n; j++ {
				simplex[i].x[j] = best.x[j] + Shrink*(simplex[i].x[j]-best.x[j])
			}
			simplex[i].fx = f(simplex[i].x)
		}
	}

	sort.SliceStable(simplex, func(i, j int) bool { return simplex[i].fx < simplex[j].fx })
	if !converged {
		spread = simplexSpread(simplex)
	}
	return Result{
		X:          append([]float64(nil), simplex[0].x...),
		F:          simplex[0].fx,
		Iterations: iterations,
		Converged:  converged,
		Spread:     spread,
	}
}

func (v *vertex) accept(x []float64, fx float64) {
	copy(v.x, x)
	v.fx = fx
}

// through writes centroid + coeff*(centroid - worst) into dst.
func through(dst, centroid, worst []float64, coeff float64) {
	floats.ScaleTo(dst, 1+coeff, centroid)
	floats.AddScaled(dst, -coeff, worst)
}

func simplexSpread(simplex []vertex) float64 {
	fx := make([]float64, len(simplex))
	for i, v := range simplex {
		fx[i] = v.fx
	}
	_, std := stat.PopMeanStdDev(fx, nil)
	return std
}
