// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package walk

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		opts    Options
		wantErr error
	}{
		{"arc", PolicyArc, Options{Size: image.Pt(64, 64), Step: 0.5}, nil},
		{"square", PolicySquare, Options{Size: image.Pt(64, 64)}, nil},
		{"ring", PolicyRing, Options{Size: image.Pt(64, 64)}, nil},
		{"zero step defaults", PolicyArc, Options{Size: image.Pt(8, 8)}, nil},
		{"unknown policy", Policy("hexagon"), Options{Size: image.Pt(64, 64)}, ErrUnknownPolicy},
		{"empty size", PolicySquare, Options{Size: image.Pt(0, 64)}, ErrInvalidOptions},
		{"negative step", PolicyArc, Options{Size: image.Pt(64, 64), Step: -1}, ErrInvalidOptions},
		{"nan step", PolicyArc, Options{Size: image.Pt(64, 64), Step: math.NaN()}, ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.policy, tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p)
		})
	}
}

func TestPathsDeterministic(t *testing.T) {
	for _, policy := range Policies() {
		t.Run(string(policy), func(t *testing.T) {
			opts := Options{Size: image.Pt(256, 256), Step: 0.75}
			a, err := New(policy, opts)
			require.NoError(t, err)
			b, err := New(policy, opts)
			require.NoError(t, err)

			for i := 0; i < 20000; i++ {
				pa, pb := a.Advance(), b.Advance()
				// Bit-identical, not approximately equal.
				require.Equal(t, math.Float64bits(pa.X), math.Float64bits(pb.X), "step %d", i)
				require.Equal(t, math.Float64bits(pa.Y), math.Float64bits(pb.Y), "step %d", i)
			}
		})
	}
}

func TestPathsStayInsideRaster(t *testing.T) {
	sizes := []image.Point{image.Pt(64, 64), image.Pt(65, 41), image.Pt(7, 7)}
	steps := []float64{0.5, 1, 3}

	for _, policy := range Policies() {
		for _, size := range sizes {
			for _, step := range steps {
				p, err := New(policy, Options{Size: size, Step: step})
				require.NoError(t, err)

				bounds := image.Rect(0, 0, size.X, size.Y)
				n := p.Capacity()
				for i := uint64(0); i < n; i++ {
					px := p.Advance().Pixel()
					require.Truef(t, px.In(bounds),
						"%s size=%v step=%v: point %d at %v outside %v (capacity %d)",
						policy, size, step, i, px, bounds, n)
				}
			}
		}
	}
}

func TestSquareFirstRing(t *testing.T) {
	s := NewSquare(Options{Size: image.Pt(11, 11)})
	want := []image.Point{
		{5, 5}, {6, 5}, {6, 4}, {5, 4}, {4, 4}, {4, 5}, {4, 6}, {5, 6}, {6, 6},
		{7, 6}, // first step of ring 2
	}
	for i, w := range want {
		assert.Equal(t, w, s.Advance().Pixel(), "step %d", i)
	}
}

func TestSquareRingGrowth(t *testing.T) {
	const size = 101
	s := NewSquare(Options{Size: image.Pt(size, size)})
	center := image.Pt(size/2, size/2)
	seen := make(map[image.Point]bool)

	var generated int
	for k := 0; k <= 40; k++ {
		target := (2*k + 1) * (2*k + 1)
		for ; generated < target; generated++ {
			px := s.Advance().Pixel()
			require.False(t, seen[px], "point %v visited twice", px)
			seen[px] = true
		}

		maxDist := 0
		for px := range seen {
			d := max(abs(px.X-center.X), abs(px.Y-center.Y))
			maxDist = max(maxDist, d)
		}
		require.Equal(t, k, maxDist, "after %d rings", k)
		require.Len(t, seen, target)
	}
}

func TestSquareCapacity(t *testing.T) {
	tests := []struct {
		size image.Point
		want uint64
	}{
		{image.Pt(1, 1), 1},
		{image.Pt(3, 3), 9},
		{image.Pt(4, 4), 9}, // centre (2,2), only one ring fits towards x=3
		{image.Pt(5, 5), 25},
		{image.Pt(512, 512), 511 * 511},
		{image.Pt(512, 9), 81},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewSquare(Options{Size: tt.size}).Capacity(), "size %v", tt.size)
	}
}

func TestRingGrowth(t *testing.T) {
	r := NewRing(Options{Size: image.Pt(64, 64)})
	center := Pt(32, 32)

	// Ring 0 is the centre itself.
	p := r.Advance()
	assert.Equal(t, center, p)
	assert.Equal(t, 1, r.Length())

	advanced := 1
	for length := 1; length < 10; length++ {
		for i := 0; i < 2*length+1; i++ {
			p := r.Advance()
			d := math.Hypot(p.X-center.X, p.Y-center.Y)
			assert.InDelta(t, float64(length), d, 1e-9)
			advanced++
		}
		assert.Equal(t, (length+1)*(length+1), advanced)
		assert.Equal(t, length+1, r.Length())
	}
}

func TestRingInvertsY(t *testing.T) {
	r := NewRing(Options{Size: image.Pt(64, 64)})
	r.Advance() // centre

	// Ring 1 has three steps at 360°, 240° and 120°: the second is below the
	// centre on screen, the third above it.
	first := r.Advance()
	second := r.Advance()
	third := r.Advance()
	assert.InDelta(t, 33, first.X, 1e-9)
	assert.InDelta(t, 32, first.Y, 1e-9)
	assert.Greater(t, second.Y, 32.0)
	assert.Less(t, third.Y, 32.0)
}

func TestArcRadiusMonotonic(t *testing.T) {
	a := NewArc(Options{Size: image.Pt(512, 512), Step: 1})
	prev := a.Radius()
	for i := 0; i < 50000; i++ {
		a.Advance()
		r := a.Radius()
		require.GreaterOrEqual(t, r, prev, "step %d", i)
		prev = r
	}
}

func TestArcChordLength(t *testing.T) {
	const step = 2.0
	a := NewArc(Options{Size: image.Pt(1024, 1024), Step: step})
	prev := a.Advance()
	for i := 0; i < 5000; i++ {
		p := a.Advance()
		d := math.Hypot(p.X-prev.X, p.Y-prev.Y)
		// The radius creeps outward within a revolution, so the chord is a
		// little longer than step but never shorter.
		require.InDelta(t, step, d, 0.25*step, "step %d", i)
		prev = p
	}
}

func TestArcSmallRadiusGuard(t *testing.T) {
	assert.InDelta(t, math.Pi, arcDelta(4, 1), 1e-12)
	assert.InDelta(t, math.Pi, arcDelta(4, 0), 1e-12)
	assert.InDelta(t, math.Pi/3, arcDelta(1, 1), 1e-12)

	a := NewArc(Options{Size: image.Pt(64, 64), Step: 8})
	for i := 0; i < 100; i++ {
		p := a.Advance()
		require.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "step %d", i)
	}
}

func TestWalker(t *testing.T) {
	w := NewWalker(NewSquare(Options{Size: image.Pt(9, 9)}), 1, 2)
	assert.Equal(t, uint64(1), w.Index())
	assert.Equal(t, uint64(2), w.Stride())

	var got []uint64
	for i := 0; i < 4; i++ {
		n, _ := w.Next()
		got = append(got, n)
	}
	assert.Equal(t, []uint64{1, 3, 5, 7}, got)
	assert.Equal(t, uint64(9), w.Index())

	z := NewWalker(NewRing(Options{Size: image.Pt(9, 9)}), 0, 0)
	assert.Equal(t, uint64(1), z.Stride())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
