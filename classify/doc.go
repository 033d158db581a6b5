// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package classify assigns a small number-theoretic classification to an
// index.
//
// Three policies are provided:
//
//   - [Factors]: counts cached prime divisors up to √n and grows an
//     ascending, capacity-bounded prime cache as new primes are met
//   - [Collatz]: counts trajectory steps under the 3n+1 map, with a step
//     limit, three counting modes and an optional LRU memo of exact counts
//   - [Squares]: detects perfect squares
//
// Classifiers are NOT safe for concurrent use. Factors mutates its cache on
// every call that discovers a prime, and a memoised Collatz updates its memo.
package classify
