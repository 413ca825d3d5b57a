package cubicspiral

import (
	"math"
)

// Spiral is a solved cubic spiral, evaluable anywhere along its arc length in the frame of its start pose.
type Spiral struct {
	Params
	b, c, d float64
}

// NewSpiral creates a Spiral from shooting parameters.
func NewSpiral(p Params) Spiral {
	b, c, d := curvatureCoeffs(p)
	return Spiral{Params: p, b: b, c: c, d: d}
}

func (sp Spiral) fraction(s float64) float64 {
	if sp.ArcLength == 0 {
		return 0
	}
	return s / sp.ArcLength
}

// Curvature returns the curvature at arc length s.
func (sp Spiral) Curvature(s float64) float64 {
	u := sp.fraction(s)
	return sp.P0 + u*(sp.b+u*(sp.c+u*sp.d))
}

// Heading returns the heading, relative to the start heading, at arc length s.
func (sp Spiral) Heading(s float64) float64 {
	return heading(sp.P0, sp.b, sp.c, sp.d, s, sp.fraction(s))
}

// Position integrates the spiral from 0 to s with Simpson's rule over the given even number of intervals and returns
// the position relative to the start.
func (sp Spiral) Position(s float64, intervals int) (float64, float64) {
	if intervals < 2 {
		intervals = 2
	}
	if intervals%2 != 0 {
		intervals++
	}
	weights := simpsonWeights(intervals)
	var x, y float64
	for i, coeff := range weights {
		arc := float64(i) / float64(intervals) * s
		sinTheta, cosTheta := math.Sincos(sp.Heading(arc))
		x += coeff * cosTheta
		y += coeff * sinTheta
	}
	hOver3 := s / float64(intervals) / 3
	return x * hOver3, y * hOver3
}

// PoseAt returns the pose at arc length s, relative to the start of the spiral.
func (sp Spiral) PoseAt(s float64, intervals int) Pose {
	x, y := sp.Position(s, intervals)
	return Pose{X: x, Y: y, Theta: sp.Heading(s), Curvature: sp.Curvature(s)}
}

// Sample returns n+1 evenly spaced poses along the spiral, from its start to its end, placed in the frame start is
// expressed in.
func (sp Spiral) Sample(start Pose, n int) []Pose {
	if n < 1 {
		n = 1
	}
	poses := make([]Pose, 0, n+1)
	for i := 0; i <= n; i++ {
		s := float64(i) / float64(n) * sp.ArcLength
		poses = append(poses, ToWorld(start, sp.PoseAt(s, defaultSimpsonIntervals)))
	}
	return poses
}
