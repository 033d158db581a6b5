// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package walk

// Direction is a unit move on the lattice.
type Direction uint8

// Directions in the order the square spiral turns through them.
const (
	Right Direction = iota
	Up
	Left
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// delta returns the raster offset of one move. Up is negative Y.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 0, 1
	}
}

// Square is the square (Ulam) spiral.
//
// Runs have lengths 1, 1, 2, 2, 3, 3, ...: after each run the direction turns
// left, and every second turn the run grows by one. After (2k+1)² positions
// the spiral has covered every lattice point within Chebyshev distance k of
// the centre exactly once.
type Square struct {
	cx, cy int
	limit  int // rings that fit, for Capacity

	x, y  int
	dir   Direction
	run   int
	moved int
	turns int
}

// NewSquare creates a square spiral centred in opts.Size.
func NewSquare(opts Options) *Square {
	cx, cy := opts.Size.X/2, opts.Size.Y/2
	limit := min(cx, opts.Size.X-1-cx, cy, opts.Size.Y-1-cy)
	return &Square{
		cx:    cx,
		cy:    cy,
		limit: limit,
		x:     cx,
		y:     cy,
		dir:   Right,
		run:   1,
	}
}

// Advance implements Path.
func (s *Square) Advance() Point {
	p := Pt(float64(s.x), float64(s.y))

	dx, dy := s.dir.delta()
	s.x += dx
	s.y += dy
	s.moved++
	if s.moved == s.run {
		s.moved = 0
		s.dir = (s.dir + 1) % 4
		s.turns++
		if s.turns%2 == 0 {
			s.run++
		}
	}
	return p
}

// Direction returns the direction of the next move.
func (s *Square) Direction() Direction {
	return s.dir
}

// Capacity implements Path.
func (s *Square) Capacity() uint64 {
	if s.limit < 0 {
		return 0
	}
	side := uint64(2*s.limit + 1)
	return side * side
}
