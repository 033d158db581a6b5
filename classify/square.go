// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import "math"

// Squares classifies perfect squares.
type Squares struct{}

// Classify implements Classifier. Perfect squares are KindSquare with the
// root in Count; everything else is KindNone.
func (Squares) Classify(n uint64) Class {
	r := Sqrt(n)
	if r*r == n {
		return Class{Kind: KindSquare, Count: int(r)}
	}
	return Class{Kind: KindNone}
}

// Sqrt returns ⌊√n⌋.
func Sqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	// float64 rounding can be off by one in either direction near 2^64.
	for r > 0 && (r > math.MaxUint32 || r*r > n) {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
