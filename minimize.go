package spectral

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// objective evaluates a scalar function of three variables together with its
// analytic gradient.
type objective func(x [3]float64) (float64, [3]float64)

// minimize runs an unconstrained quasi-Newton minimisation from x0. It never
// fails outright: on optimiser trouble the best point seen so far is
// returned with converged false, leaving the residual as the quality signal.
func minimize(fn objective, x0 [3]float64) (x [3]float64, f float64, converged bool) {
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			v, _ := fn([3]float64(p))
			return v
		},
		Grad: func(grad, p []float64) {
			_, g := fn([3]float64(p))
			copy(grad, g[:])
		},
	}
	result, err := optimize.Minimize(problem, x0[:], nil, &optimize.LBFGS{})
	if result == nil || len(result.X) != 3 {
		return x0, math.Inf(1), false
	}
	copy(x[:], result.X)
	f = result.F

	switch {
	case errors.Is(err, optimize.ErrLinesearcherFailure), errors.Is(err, optimize.ErrNoProgress):
		// The colour-difference surface is conical at an exact match, so a
		// linesearcher that cannot improve the point has in fact finished.
		converged = true
	case err != nil:
		converged = false
	default:
		switch result.Status {
		case optimize.NotTerminated, optimize.Failure, optimize.IterationLimit,
			optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
			converged = false
		default:
			converged = true
		}
	}
	return x, f, converged
}
