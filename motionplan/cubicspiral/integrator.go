package cubicspiral

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/cubicspiral/spatialmath"
)

// Step is the outcome of a single integration of a candidate spiral against a goal.
type Step struct {
	// Params are the unchanged inputs if the step converged or was singular, otherwise the Newton update.
	Params Params
	// Converged is true if the candidate already reaches the goal.
	Converged bool
	// Singular is true if no Newton update could be computed.
	Singular bool
	// Residual is the L1 norm of the (x, y, theta) error of the candidate.
	Residual float64
}

// curvatureCoeffs returns the cubic coefficients of curvature as a function of u = s/sG, such that
// k(u) = p0 + b*u + c*u^2 + d*u^3 passes through p0, p1, p2, p3 at u = 0, 1/3, 2/3, 1.
// Working in u rather than s keeps sG out of every denominator.
func curvatureCoeffs(p Params) (b, c, d float64) {
	b = -5.5*p.P0 + 9*p.P1 - 4.5*p.P2 + p.P3
	c = 9*p.P0 - 22.5*p.P1 + 18*p.P2 - 4.5*p.P3
	d = -4.5 * (p.P0 - 3*p.P1 + 3*p.P2 - p.P3)
	return b, c, d
}

// heading is the antiderivative of curvature: the heading at arc length s, u = s/sG along the spiral.
func heading(p0, b, c, d, s, u float64) float64 {
	return s * (p0 + u*(b/2+u*(c/3+u*d/4)))
}

// Iterate integrates the spiral described by p, compares its endpoint with goal, and either reports convergence or
// returns the Newton-Raphson update of P1, P2 and ArcLength.
func (s *Solver) Iterate(goal LocalGoal, p Params) Step {
	sG := p.ArcLength
	n := s.opts.SimpsonIntervals
	b, c, d := curvatureCoeffs(p)

	// partials of heading with respect to sG share these
	sgCubic := 3.375 * (p.P0 - 3*p.P1 + 3*p.P2 - p.P3)
	sgSquare := -3 * (2*p.P0 - 5*p.P1 + 4*p.P2 - p.P3)
	sgLinear := 0.25 * (11*p.P0 - 18*p.P1 + 9*p.P2 - 2*p.P3)

	var (
		guessX, guessY            float64
		dXp1, dXp2, dXsG          float64
		dYp1, dYp2, dYsG          float64
		theta, cosTheta, sinTheta float64
		dTp1, dTp2, dTsG          float64
	)
	for i := 0; i <= n; i++ {
		coeff := s.weights[i]
		u := float64(i) / float64(n)
		arc := u * sG

		theta = heading(p.P0, b, c, d, arc, u)
		sinTheta, cosTheta = math.Sincos(theta)

		dTp1 = ((3.375*u-7.5)*u + 4.5) * u * arc
		dTp2 = ((-3.375*u+6)*u - 2.25) * u * arc
		dTsG = ((sgCubic*u+sgSquare)*u + sgLinear) * u * u

		dXp1 -= coeff * sinTheta * dTp1
		dXp2 -= coeff * sinTheta * dTp2
		dXsG -= coeff * sinTheta * dTsG

		dYp1 += coeff * cosTheta * dTp1
		dYp2 += coeff * cosTheta * dTp2
		dYsG += coeff * cosTheta * dTsG

		guessX += coeff * cosTheta
		guessY += coeff * sinTheta
	}

	hOver3 := sG / float64(n) / 3

	delta := r3.Vector{
		X: goal.X - guessX*hOver3,
		Y: goal.Y - guessY*hOver3,
		Z: spatialmath.WrapAngle(goal.Theta - theta),
	}
	step := Step{Params: p, Residual: floats.Norm([]float64{delta.X, delta.Y, delta.Z}, 1)}
	if step.Residual < s.opts.ConvergenceError {
		step.Converged = true
		return step
	}

	jacobian := spatialmath.NewMatrix3FromColumns(
		r3.Vector{X: dXp1 * hOver3, Y: dYp1 * hOver3, Z: dTp1},
		r3.Vector{X: dXp2 * hOver3, Y: dYp2 * hOver3, Z: dTp2},
		// moving the end of the path also moves the endpoint along its tangent
		r3.Vector{X: cosTheta + dXsG*hOver3, Y: sinTheta + dYsG*hOver3, Z: dTsG},
	)
	deltaP, err := jacobian.Solve(delta, s.opts.SingularityThreshold)
	if err != nil {
		step.Singular = true
		return step
	}

	next := p
	next.P1 += deltaP.X
	next.P2 += deltaP.Y
	next.ArcLength += deltaP.Z
	if !next.finite() {
		step.Singular = true
		return step
	}
	step.Params = next
	return step
}
