package cubicspiral

// Result is the outcome of solving for the spiral between one start and end pose. P1, P2 and ArcLength are the
// solved shooting parameters; P0 and P3 echo the start and end curvature so the spiral can be rebuilt.
// Converged is false for every status other than StatusConverged, and the parameters are then the last ones tried.
type Result struct {
	P0         float64 `json:"p0"`
	P1         float64 `json:"p1"`
	P2         float64 `json:"p2"`
	P3         float64 `json:"p3"`
	ArcLength  float64 `json:"arc_length"`
	Converged  bool    `json:"converged"`
	Status     Status  `json:"status"`
	Iterations int     `json:"iterations"`
	// Residual is the L1 pose error of the last params evaluated. When the iteration budget runs out the returned
	// params are the Newton update computed from them, so their own error is usually smaller.
	Residual   float64 `json:"residual"`
}

// Err returns nil for a converged result, otherwise an error describing why no path was found.
func (r Result) Err() error {
	return r.Status.Err()
}

// Params returns the shooting parameters of the result.
func (r Result) Params() Params {
	return Params{P0: r.P0, P1: r.P1, P2: r.P2, P3: r.P3, ArcLength: r.ArcLength}
}

// Spiral returns the spiral described by the result.
func (r Result) Spiral() Spiral {
	return NewSpiral(r.Params())
}
