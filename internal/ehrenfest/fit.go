package ehrenfest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitGuess is the starting point of the Boltzmann fit.
type FitGuess struct {
	C, T float64
}

// DefaultGuess starts C at the number of sites (the E=0 scale) and T at 1,
// which is the expected order of magnitude in units of kB.
func DefaultGuess(size int) FitGuess {
	return FitGuess{C: float64(size * size), T: 1}
}

// FitResult holds the fitted parameters of C*exp(-E/T).
type FitResult struct {
	C, T       float64
	Cov        *mat.SymDense // 2x2, order (C, T)
	SSR        float64       // sum of squared residuals at the solution
	Iterations int
}

// Eval evaluates the fitted model at energy e.
func (f *FitResult) Eval(e float64) float64 { return boltzmann(e, f.C, f.T) }

func (f *FitResult) String() string {
	return fmt.Sprintf("C=%.6g T=%.6g cov=[[%.6g %.6g] [%.6g %.6g]] ssr=%.6g iterations=%d",
		f.C, f.T, f.Cov.At(0, 0), f.Cov.At(0, 1), f.Cov.At(1, 0), f.Cov.At(1, 1), f.SSR, f.Iterations)
}

func boltzmann(e, c, t float64) float64 {
	return c * math.Exp(-e/t)
}

// FitBoltzmann fits C*exp(-E/T) to h, with E running over every bin index
// (empty bins included), by Levenberg-Marquardt least squares.
// The covariance is (JᵀJ)⁻¹ scaled by the residual variance SSR/(n-2).
// Anything that prevents a well-defined answer is reported as ErrFitConvergence.
func FitBoltzmann(h Histogram, guess FitGuess) (*FitResult, error) {
	n := len(h)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d bins cannot constrain 2 parameters with a residual estimate", ErrFitConvergence, n)
	}
	if !isFinite(guess.C) || !isFinite(guess.T) || guess.T == 0 {
		return nil, fmt.Errorf("%w: unusable initial guess %+v", ErrFitConvergence, guess)
	}
	xs, ys := h.Points()

	p := [2]float64{guess.C, guess.T}
	ssr, ok := sumSquares(xs, ys, p)
	if !ok {
		return nil, fmt.Errorf("%w: model is not finite at initial guess %+v", ErrFitConvergence, guess)
	}

	J := mat.NewDense(n, 2, nil)
	r := mat.NewVecDense(n, nil)
	var (
		jtj   mat.Dense
		grad  mat.VecDense
		delta mat.VecDense
	)
	lambda := fitLambda0
	converged := false
	iter := 0
	for iter < fitMaxIter && !converged {
		iter++
		jacobian(J, r, xs, ys, p)
		jtj.Mul(J.T(), J)
		grad.MulVec(J.T(), r)

		improved := false
		for lambda <= fitLambdaMax {
			if err := delta.SolveVec(damped(&jtj, lambda), &grad); err != nil {
				lambda *= 10
				continue
			}
			cand := [2]float64{p[0] + delta.AtVec(0), p[1] + delta.AtVec(1)}
			cssr, ok := sumSquares(xs, ys, cand)
			if !ok || cssr >= ssr {
				lambda *= 10
				continue
			}
			drop := ssr - cssr
			converged = (drop <= fitTol*ssr && stepSmall(p, cand, 1e-8)) || stepSmall(p, cand, fitTol)
			p, ssr = cand, cssr
			lambda = math.Max(lambda/10, 1e-12)
			improved = true
			break
		}
		if !improved {
			// No damping level yields a lower SSR: p is a minimum to
			// working precision.
			converged = true
		}
		TraceLog("Fit iteration %d: C=%.6g T=%.6g ssr=%.6g lambda=%.3g", iter, p[0], p[1], ssr, lambda)
	}
	if !converged {
		return nil, fmt.Errorf("%w: no convergence after %d iterations (C=%g T=%g)", ErrFitConvergence, iter, p[0], p[1])
	}
	if !isFinite(p[0]) || !isFinite(p[1]) || p[1] == 0 {
		return nil, fmt.Errorf("%w: diverged to C=%g T=%g", ErrFitConvergence, p[0], p[1])
	}

	cov, err := covariance(J, r, xs, ys, p, ssr, n)
	if err != nil {
		return nil, err
	}
	return &FitResult{C: p[0], T: p[1], Cov: cov, SSR: ssr, Iterations: iter}, nil
}

// jacobian fills J with the model partials and r with y - f at p.
func jacobian(J *mat.Dense, r *mat.VecDense, xs, ys []float64, p [2]float64) {
	c, t := p[0], p[1]
	for i, e := range xs {
		ex := math.Exp(-e / t)
		J.Set(i, 0, ex)
		J.Set(i, 1, c*ex*e/(t*t))
		r.SetVec(i, ys[i]-c*ex)
	}
}

// damped returns JᵀJ with its diagonal inflated by (1+lambda) (Marquardt scaling).
func damped(jtj *mat.Dense, lambda float64) *mat.Dense {
	a := mat.DenseCopyOf(jtj)
	for i := 0; i < 2; i++ {
		d := math.Max(jtj.At(i, i), 1e-300)
		a.Set(i, i, jtj.At(i, i)+lambda*d)
	}
	return a
}

func sumSquares(xs, ys []float64, p [2]float64) (float64, bool) {
	if p[1] == 0 {
		return 0, false
	}
	s := 0.0
	for i, e := range xs {
		d := ys[i] - boltzmann(e, p[0], p[1])
		s += d * d
	}
	return s, isFinite(s)
}

func stepSmall(old, cur [2]float64, tol float64) bool {
	for i := range old {
		if math.Abs(cur[i]-old[i]) > tol*(math.Abs(old[i])+tol) {
			return false
		}
	}
	return true
}

func covariance(J *mat.Dense, r *mat.VecDense, xs, ys []float64, p [2]float64, ssr float64, n int) (*mat.SymDense, error) {
	jacobian(J, r, xs, ys, p)
	var jtj mat.Dense
	jtj.Mul(J.T(), J)
	sym := mat.NewSymDense(2, []float64{
		jtj.At(0, 0), jtj.At(0, 1),
		jtj.At(1, 0), jtj.At(1, 1),
	})
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("%w: singular Jacobian at C=%g T=%g", ErrFitConvergence, p[0], p[1])
	}
	if c := chol.Cond(); !isFinite(c) || c > 1e15 {
		return nil, fmt.Errorf("%w: ill-conditioned Jacobian (cond=%g) at C=%g T=%g", ErrFitConvergence, c, p[0], p[1])
	}
	cov := mat.NewSymDense(2, nil)
	if err := chol.InverseTo(cov); err != nil {
		return nil, fmt.Errorf("%w: covariance: %v", ErrFitConvergence, err)
	}
	cov.ScaleSym(ssr/float64(n-2), cov)
	return cov, nil
}
