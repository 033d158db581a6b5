// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package walk

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Errors returned by New.
var (
	// ErrUnknownPolicy is returned when the policy name is not registered.
	ErrUnknownPolicy = errors.New("walk: unknown path policy")

	// ErrInvalidOptions is returned when the raster size or step is unusable.
	ErrInvalidOptions = errors.New("walk: invalid options")
)

// Policy names a path-generation algorithm.
type Policy string

// Available path policies.
const (
	PolicyArc    Policy = "arc"
	PolicySquare Policy = "square"
	PolicyRing   Policy = "ring"
)

// Policies returns the registered policy names in a stable order.
func Policies() []Policy {
	return []Policy{PolicyArc, PolicySquare, PolicyRing}
}

// Point is a position in raster coordinates.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Pixel returns the raster pixel containing p.
func (p Point) Pixel() image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// Path is a single spiral policy.
//
// Advance returns the position for the current state and then advances the
// state exactly once. It never fails.
//
// Capacity reports how many Advance calls, counted from construction, are
// guaranteed to produce positions inside the raster the path was built for.
type Path interface {
	Advance() Point
	Capacity() uint64
}

// Options configures a path policy.
type Options struct {
	// Size is the raster size in pixels. The spiral is centred in it.
	Size image.Point

	// Step is the arc length between consecutive points of PolicyArc and
	// the radial growth per revolution. Ignored by the lattice policies.
	// Zero means 1.
	Step float64
}

func (o Options) center() Point {
	return Pt(float64(o.Size.X)/2, float64(o.Size.Y)/2)
}

// radius returns the largest distance from the centre that still floors to
// a pixel inside the raster on every side.
func (o Options) radius() float64 {
	c := o.center()
	r := math.Min(math.Min(c.X, c.Y), math.Min(float64(o.Size.X)-c.X, float64(o.Size.Y)-c.Y))
	return r - 1
}

// New creates a path for the named policy.
func New(policy Policy, opts Options) (Path, error) {
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		return nil, fmt.Errorf("%w: size=%dx%d", ErrInvalidOptions, opts.Size.X, opts.Size.Y)
	}
	if opts.Step == 0 {
		opts.Step = 1
	}
	if opts.Step < 0 || math.IsNaN(opts.Step) || math.IsInf(opts.Step, 0) {
		return nil, fmt.Errorf("%w: step=%v", ErrInvalidOptions, opts.Step)
	}

	switch policy {
	case PolicyArc:
		return NewArc(opts), nil
	case PolicySquare:
		return NewSquare(opts), nil
	case PolicyRing:
		return NewRing(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// Walker pairs a Path with the index it is advanced by.
//
// Walker is NOT safe for concurrent use.
type Walker struct {
	path   Path
	next   uint64
	stride uint64
}

// NewWalker creates a walker whose first index is start and which advances
// by stride each step. A zero stride is treated as 1.
func NewWalker(p Path, start, stride uint64) *Walker {
	if stride == 0 {
		stride = 1
	}
	return &Walker{path: p, next: start, stride: stride}
}

// Next returns the current index with its position and advances both.
func (w *Walker) Next() (uint64, Point) {
	n := w.next
	w.next += w.stride
	return n, w.path.Advance()
}

// Index returns the index the next call to Next will return.
func (w *Walker) Index() uint64 {
	return w.next
}

// Stride returns the index increment per step.
func (w *Walker) Stride() uint64 {
	return w.stride
}

// Path returns the underlying path policy.
func (w *Walker) Path() Path {
	return w.path
}
