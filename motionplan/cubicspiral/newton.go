package cubicspiral

// Refine runs at most NewtonIterations Newton-Raphson steps from seed towards goal. It returns as soon as a step
// converges or the Jacobian becomes singular; otherwise the last parameters computed are returned unconverged, along
// with the residual of the parameters they were computed from.
func (s *Solver) Refine(goal LocalGoal, seed Params) Result {
	p := seed
	residual := 0.
	for i := 0; i < s.opts.NewtonIterations; i++ {
		step := s.Iterate(goal, p)
		residual = step.Residual
		switch {
		case step.Converged:
			return s.newResult(p, StatusConverged, i+1, residual)
		case step.Singular:
			return s.newResult(p, StatusSingularJacobian, i+1, residual)
		}
		p = step.Params
	}
	return s.newResult(p, StatusIterationLimit, s.opts.NewtonIterations, residual)
}

func (s *Solver) newResult(p Params, status Status, iterations int, residual float64) Result {
	// A spiral that only reaches the goal by driving backwards is not a usable forward path.
	if status == StatusConverged && p.ArcLength < -s.opts.ConvergenceError {
		status = StatusReverseArcLength
	}
	return Result{
		P0:         p.P0,
		P1:         p.P1,
		P2:         p.P2,
		P3:         p.P3,
		ArcLength:  p.ArcLength,
		Converged:  status == StatusConverged,
		Status:     status,
		Iterations: iterations,
		Residual:   residual,
	}
}
