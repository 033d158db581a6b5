// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package walk

import "math"

// Ring is a spiral of concentric rings with a discretized angle.
//
// Ring r has radius r and 2r+1 evenly spaced steps, walked clockwise from
// angle 0. The first r rings therefore hold exactly r² points.
type Ring struct {
	center Point
	radius float64 // usable radius, for Capacity

	step   int
	steps  int
	length int
}

// NewRing creates a ring spiral centred in opts.Size.
func NewRing(opts Options) *Ring {
	return &Ring{
		center: opts.center(),
		radius: opts.radius(),
		steps:  1,
	}
}

// Advance implements Path.
func (r *Ring) Advance() Point {
	frac := float64(r.step) / float64(r.steps)
	angle := 2 * math.Pi * (1 - frac)
	sin, cos := math.Sincos(angle)
	l := float64(r.length)
	p := Pt(r.center.X+l*cos, r.center.Y-l*sin)

	r.step++
	if r.step == r.steps {
		r.step = 0
		r.length++
		r.steps += 2
	}
	return p
}

// Length returns the radius of the ring being walked.
func (r *Ring) Length() int {
	return r.length
}

// Capacity implements Path.
func (r *Ring) Capacity() uint64 {
	if r.radius < 0 {
		return 0
	}
	rings := uint64(math.Floor(r.radius)) + 1
	return rings * rings
}
