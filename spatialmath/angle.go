// Package spatialmath defines the planar and spatial math helpers shared by the motion planners.
package spatialmath

import "math"

const twoPi = 2 * math.Pi

// WrapAngle returns the given angle, in radians, normalized into the (-pi, pi] range.
// math.Mod is exact, so inputs many turns away from the principal range do not accumulate error.
func WrapAngle(theta float64) float64 {
	theta = math.Mod(theta, twoPi)
	if theta <= -math.Pi {
		return theta + twoPi
	} else if theta > math.Pi {
		return theta - twoPi
	}
	return theta
}

// RotateXY rotates the planar vector (x, y) counterclockwise by theta radians.
func RotateXY(x, y, theta float64) (float64, float64) {
	sinT, cosT := math.Sincos(theta)
	return cosT*x - sinT*y, sinT*x + cosT*y
}
