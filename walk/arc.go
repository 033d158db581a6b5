// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package walk

import "math"

// Arc is a continuous Archimedean spiral.
//
// Consecutive points are one chord of length Step apart, and the radius grows
// by Step per revolution, so the point density stays uniform as the spiral
// expands. The angle is kept in radians and wrapped into [0, 2π).
type Arc struct {
	center Point
	step   float64
	radius float64 // usable radius, for Capacity

	angle  float64
	length float64
}

// NewArc creates an arc spiral centred in opts.Size.
func NewArc(opts Options) *Arc {
	step := opts.Step
	if step <= 0 {
		step = 1
	}
	return &Arc{
		center: opts.center(),
		step:   step,
		radius: opts.radius(),
		length: step,
	}
}

// Advance implements Path.
func (a *Arc) Advance() Point {
	r := a.length + a.step*(a.angle/(2*math.Pi))
	sin, cos := math.Sincos(a.angle)
	p := Pt(a.center.X+r*cos, a.center.Y-r*sin)

	a.angle += arcDelta(a.step, r)
	for a.angle >= 2*math.Pi {
		a.angle -= 2 * math.Pi
		a.length += a.step
	}
	return p
}

// Radius returns the distance from the centre of the next point.
func (a *Arc) Radius() float64 {
	return a.length + a.step*(a.angle/(2*math.Pi))
}

// Capacity implements Path.
//
// The count is a lower bound: revolution k spans radii [k·step, (k+1)·step)
// and takes at least ⌊2π/δ⌋−2 steps, δ being the angular increment at its
// inner radius; the two spare steps absorb the angle carried over a wrap.
// Revolutions are summed while their outer radius fits.
func (a *Arc) Capacity() uint64 {
	var n uint64
	for length := a.step; length+a.step <= a.radius; length += a.step {
		delta := arcDelta(a.step, length)
		steps := math.Floor(2*math.Pi/delta) - 2
		if steps > 0 {
			n += uint64(steps)
		}
	}
	return n
}

// arcDelta returns the angle subtending a chord of length step on a circle of
// radius r. Radii below step/2 clamp to a half turn.
func arcDelta(step, r float64) float64 {
	x := step / (2 * r)
	if r <= 0 || x > 1 {
		x = 1
	}
	return 2 * math.Asin(x)
}
