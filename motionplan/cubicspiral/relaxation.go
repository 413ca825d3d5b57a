package cubicspiral

// Relax builds the seed for Newton's method by continuation. Starting from a straight path of length goal.X with every
// curvature at zero, the start curvature, the end curvature, and the lateral and heading components of the goal are
// stepped towards their real values in RelaxationIterations equal increments. One integration step is taken per
// increment and its parameters are adopted whether or not it converged. The x component of the goal is never relaxed.
func (s *Solver) Relax(startCurvature float64, goal LocalGoal) Params {
	steps := float64(s.opts.RelaxationIterations)
	dK0 := startCurvature / steps
	dGoal := LocalGoal{
		Y:         goal.Y / steps,
		Theta:     goal.Theta / steps,
		Curvature: goal.Curvature / steps,
	}

	relaxed := LocalGoal{X: goal.X}
	p := Params{ArcLength: goal.X}
	for i := 0; i < s.opts.RelaxationIterations; i++ {
		p.P0 += dK0
		p.P3 += dGoal.Curvature
		relaxed.Y += dGoal.Y
		relaxed.Theta += dGoal.Theta
		relaxed.Curvature += dGoal.Curvature

		// singular steps hand back p unchanged
		p = s.Iterate(relaxed, p).Params
	}
	return p
}
