// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

// DefaultCapacity is the default bound on the number of cached primes.
const DefaultCapacity = 100_000

// initialPrimes is the starting allocation of the prime cache.
const initialPrimes = 1024

// Factors classifies an index by counting its cached prime divisors.
//
// The cache is an ascending, append-only list of the primes met so far. It is
// complete, and the classification exact, as long as indices are fed in
// ascending order starting at or below 2, or after Warm has covered the
// indices below the first one. Out-of-order calls never break the ordering
// invariant, they only see a less complete cache.
//
// Once the cache holds Capacity primes, an index with no cached divisor is
// reported as KindOverflow instead of growing the cache.
type Factors struct {
	primes   []uint64
	capacity int

	// warmed is the first index Warm has not classified yet.
	warmed uint64
}

// NewFactors creates a factor classifier. A capacity <= 0 means
// DefaultCapacity.
func NewFactors(capacity int) *Factors {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Factors{
		primes:   make([]uint64, 0, min(capacity, initialPrimes)),
		capacity: capacity,
	}
}

// Classify implements Classifier.
//
// Indices 0 and 1 are KindUnit and never touch the cache. Otherwise Count is
// the number of cached primes p with p² <= n that divide n; a zero count is
// KindPrime (appended when new) or KindOverflow when the cache is full.
func (f *Factors) Classify(n uint64) Class {
	if n < 2 {
		return Class{Kind: KindUnit}
	}

	count := 0
	for _, p := range f.primes {
		if p > n/p {
			break
		}
		if n%p == 0 {
			count++
		}
	}
	if count > 0 {
		return Class{Kind: KindComposite, Count: count}
	}

	if last := len(f.primes) - 1; last >= 0 && n <= f.primes[last] {
		return Class{Kind: KindPrime}
	}
	if len(f.primes) >= f.capacity {
		return Class{Kind: KindOverflow}
	}
	f.primes = append(f.primes, n)
	return Class{Kind: KindPrime}
}

// Warm classifies every index from 2 up to below that has not been warmed
// yet, so a run starting at below sees the same cache as one starting at 1.
// It stops early once the cache is full.
func (f *Factors) Warm(below uint64) {
	for n := max(f.warmed, 2); n < below && !f.Full(); n++ {
		f.Classify(n)
	}
	f.warmed = max(f.warmed, below)
}

// Len returns the number of cached primes.
func (f *Factors) Len() int {
	return len(f.primes)
}

// Cap returns the cache capacity.
func (f *Factors) Cap() int {
	return f.capacity
}

// Full reports whether the cache has reached its capacity.
func (f *Factors) Full() bool {
	return len(f.primes) >= f.capacity
}

// Primes returns a copy of the cached primes in ascending order.
func (f *Factors) Primes() []uint64 {
	out := make([]uint64, len(f.primes))
	copy(out, f.primes)
	return out
}
