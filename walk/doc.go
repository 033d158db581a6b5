// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package walk maps a monotonically increasing index onto raster positions
// along a growing spiral.
//
// A [Path] holds the policy-specific state (angle and radius, ring counters,
// run lengths) and advances it exactly once per call. A [Walker] pairs a Path
// with the index counter so callers receive (index, position) pairs.
//
// # Policies
//
//   - [PolicyArc]: continuous Archimedean spiral with constant chord length
//   - [PolicySquare]: the classic square (Ulam) spiral on the integer lattice
//   - [PolicyRing]: concentric rings with a discretized angle per step
//
// # Coordinate System
//
// Positions are raster coordinates: origin at the top-left, X grows right,
// Y grows down. Angles grow counter-clockwise on screen, so every policy
// inverts Y before translating to the raster centre.
//
// # Usage
//
//	p, err := walk.New(walk.PolicySquare, walk.Options{Size: image.Pt(512, 512)})
//	if err != nil {
//	    return err
//	}
//	w := walk.NewWalker(p, 1, 1)
//	for i := 0; i < 1000; i++ {
//	    n, pos := w.Next()
//	    // classify n, plot pos
//	}
package walk
