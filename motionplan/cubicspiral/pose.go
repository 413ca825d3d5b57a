package cubicspiral

import (
	"fmt"

	"go.viam.com/cubicspiral/spatialmath"
	"go.viam.com/cubicspiral/utils"
)

// Pose is a planar vehicle state: position, heading in radians, and signed path curvature (1/radius).
type Pose struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Theta     float64 `json:"theta"`
	Curvature float64 `json:"curvature"`
}

// NewPose creates a Pose.
func NewPose(x, y, theta, curvature float64) Pose {
	return Pose{X: x, Y: y, Theta: theta, Curvature: curvature}
}

func (p Pose) String() string {
	return fmt.Sprintf("(x: %.4g, y: %.4g, theta: %.4g, k: %.4g)", p.X, p.Y, p.Theta, p.Curvature)
}

func (p Pose) finite() bool {
	return utils.IsFinite(p.X, p.Y, p.Theta, p.Curvature)
}

// LocalGoal is an end pose expressed in the frame of a start pose: the start is at the origin with heading zero.
// Theta is always within (-pi, pi].
type LocalGoal struct {
	X         float64
	Y         float64
	Theta     float64
	Curvature float64
}

// ToLocalGoal expresses end in the frame of start. The curvature of the goal is the end curvature.
func ToLocalGoal(start, end Pose) LocalGoal {
	x, y := spatialmath.RotateXY(end.X-start.X, end.Y-start.Y, -start.Theta)
	return LocalGoal{
		X:         x,
		Y:         y,
		Theta:     spatialmath.WrapAngle(end.Theta - start.Theta),
		Curvature: end.Curvature,
	}
}

// ToWorld maps a pose expressed in the frame of start back into the frame start is expressed in.
func ToWorld(start, local Pose) Pose {
	x, y := spatialmath.RotateXY(local.X, local.Y, start.Theta)
	return Pose{
		X:         start.X + x,
		Y:         start.Y + y,
		Theta:     spatialmath.WrapAngle(start.Theta + local.Theta),
		Curvature: local.Curvature,
	}
}

// Params are the shooting parameters of a cubic spiral. P0..P3 are the curvatures at 0, 1/3, 2/3 and the whole of
// ArcLength along the path.
type Params struct {
	P0        float64
	P1        float64
	P2        float64
	P3        float64
	ArcLength float64
}

func (p Params) finite() bool {
	return utils.IsFinite(p.P0, p.P1, p.P2, p.P3, p.ArcLength)
}
