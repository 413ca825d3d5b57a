package cubicspiral

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestIterateConvergedLeavesParams(t *testing.T) {
	solver := newTestSolver(t, nil)
	p := Params{ArcLength: 10}
	step := solver.Iterate(LocalGoal{X: 10}, p)
	test.That(t, step.Converged, test.ShouldBeTrue)
	test.That(t, step.Singular, test.ShouldBeFalse)
	test.That(t, step.Params, test.ShouldResemble, p)
	test.That(t, step.Residual, test.ShouldBeLessThan, 1e-9)
}

func TestIterateMatchesFiniteDifferences(t *testing.T) {
	solver := newTestSolver(t, nil)
	p := Params{P0: 0.05, P1: 0.03, P2: -0.01, P3: 0.02, ArcLength: 12}

	// the endpoint of the spiral as the integrator sees it
	endpoint := func(p Params) (float64, float64, float64) {
		x, y := NewSpiral(p).Position(p.ArcLength, defaultSimpsonIntervals)
		return x, y, NewSpiral(p).Heading(p.ArcLength)
	}
	x0, y0, t0 := endpoint(p)

	// Ask for a goal a small, known move away along p1. One Newton step should recover roughly that move.
	const h = 1e-3
	moved := p
	moved.P1 += h
	gx, gy, gt := endpoint(moved)
	test.That(t, math.Abs(gx-x0)+math.Abs(gy-y0)+math.Abs(gt-t0), test.ShouldBeGreaterThan, 0)

	opts := NewBasicOptions()
	opts.ConvergenceError = 1e-12
	strict := newTestSolver(t, opts)
	step := strict.Iterate(LocalGoal{X: gx, Y: gy, Theta: gt}, p)
	test.That(t, step.Converged, test.ShouldBeFalse)
	test.That(t, step.Singular, test.ShouldBeFalse)
	test.That(t, step.Params.P1, test.ShouldAlmostEqual, moved.P1, 1e-5)
	test.That(t, step.Params.P2, test.ShouldAlmostEqual, moved.P2, 1e-5)
	test.That(t, step.Params.ArcLength, test.ShouldAlmostEqual, moved.ArcLength, 1e-3)
	test.That(t, step.Params.P0, test.ShouldEqual, p.P0)
	test.That(t, step.Params.P3, test.ShouldEqual, p.P3)

	// and the default tolerance already accepts the unmoved spiral for its own endpoint
	test.That(t, solver.Iterate(LocalGoal{X: x0, Y: y0, Theta: t0}, p).Converged, test.ShouldBeTrue)
}

func TestIterateZeroArcLength(t *testing.T) {
	solver := newTestSolver(t, nil)

	step := solver.Iterate(LocalGoal{}, Params{P0: 0.2, P3: -0.1})
	test.That(t, step.Converged, test.ShouldBeTrue)

	step = solver.Iterate(LocalGoal{Y: 1}, Params{P0: 0.2, P3: -0.1})
	test.That(t, step.Converged, test.ShouldBeFalse)
	test.That(t, step.Singular, test.ShouldBeTrue)
	test.That(t, step.Residual, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, step.Params, test.ShouldResemble, Params{P0: 0.2, P3: -0.1})
}

func TestRelax(t *testing.T) {
	solver := newTestSolver(t, nil)

	seed := solver.Relax(0, LocalGoal{X: 10})
	test.That(t, seed, test.ShouldResemble, Params{ArcLength: 10})

	goal := ToLocalGoal(NewPose(0, 0, 0, 0.05), NewPose(10, 2, 0.3, -0.02))
	seed = solver.Relax(0.05, goal)
	test.That(t, seed.P0, test.ShouldAlmostEqual, 0.05, 1e-12)
	test.That(t, seed.P3, test.ShouldAlmostEqual, -0.02, 1e-12)
	test.That(t, seed.finite(), test.ShouldBeTrue)
	// the seed should already be close enough for Newton to finish in very few steps
	result := solver.Refine(goal, seed)
	test.That(t, result.Converged, test.ShouldBeTrue)
	test.That(t, result.Iterations, test.ShouldBeLessThanOrEqualTo, 2)

	opts := NewBasicOptions()
	opts.RelaxationIterations = 1
	short := newTestSolver(t, opts)
	seed = short.Relax(0.05, goal)
	test.That(t, seed.P0, test.ShouldEqual, 0.05)
	test.That(t, seed.P3, test.ShouldEqual, -0.02)
}
