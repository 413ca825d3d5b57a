package cubicspiral

import "github.com/pkg/errors"

var (
	// ErrIterationLimit is returned when Newton's method ran out of iterations without reaching the goal.
	ErrIterationLimit = errors.New("cubic spiral did not converge within the iteration limit")

	// ErrSingularJacobian is returned when a Newton step could not be taken because the Jacobian was singular.
	ErrSingularJacobian = errors.New("cubic spiral jacobian is singular")

	// ErrReverseArcLength is returned when the only spiral found reaches the goal by travelling backwards.
	ErrReverseArcLength = errors.New("cubic spiral requires a negative arc length")

	// ErrInvalidPose is returned when a start or end pose has non-finite components.
	ErrInvalidPose = errors.New("pose has non-finite components")
)

// Status describes how a solve ended.
type Status int

const (
	// StatusConverged means the spiral reaches the goal within the convergence error.
	StatusConverged Status = iota
	// StatusIterationLimit means the Newton iteration budget was exhausted.
	StatusIterationLimit
	// StatusSingularJacobian means Newton's method stopped on a singular or non-finite Jacobian.
	StatusSingularJacobian
	// StatusReverseArcLength means the spiral converged onto a negative arc length.
	StatusReverseArcLength
	// StatusInvalidPose means the inputs could not be solved at all.
	StatusInvalidPose
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusIterationLimit:
		return "iteration_limit"
	case StatusSingularJacobian:
		return "singular_jacobian"
	case StatusReverseArcLength:
		return "reverse_arc_length"
	case StatusInvalidPose:
		return "invalid_pose"
	}
	return "unknown"
}

// Err returns the error corresponding to the status, or nil if converged.
func (s Status) Err() error {
	switch s {
	case StatusConverged:
		return nil
	case StatusIterationLimit:
		return ErrIterationLimit
	case StatusSingularJacobian:
		return ErrSingularJacobian
	case StatusReverseArcLength:
		return ErrReverseArcLength
	case StatusInvalidPose:
		return ErrInvalidPose
	}
	return errors.Errorf("unknown cubic spiral status %d", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
