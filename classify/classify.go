// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import (
	"errors"
	"fmt"
)

// Errors returned by New.
var (
	// ErrUnknownPolicy is returned when the classifier name is not registered.
	ErrUnknownPolicy = errors.New("classify: unknown policy")

	// ErrUnknownMode is returned when the Collatz counting mode is not known.
	ErrUnknownMode = errors.New("classify: unknown collatz mode")
)

// Kind is the category of a classification.
type Kind uint8

// Classification kinds.
const (
	// KindNone means the index has no property of interest.
	KindNone Kind = iota

	// KindComposite is an index with Count cached prime divisors.
	KindComposite

	// KindPrime is a prime index.
	KindPrime

	// KindOverflow is the sentinel for exhausted resources: a full factor
	// cache, or a Collatz value that would overflow.
	KindOverflow

	// KindUnit is an index of 0 or 1 under a policy that has no meaningful
	// answer for it.
	KindUnit

	// KindSteps is a Collatz step count in Count.
	KindSteps

	// KindSquare is a perfect square whose root is in Count.
	KindSquare
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindComposite:
		return "composite"
	case KindPrime:
		return "prime"
	case KindOverflow:
		return "overflow"
	case KindUnit:
		return "unit"
	case KindSteps:
		return "steps"
	case KindSquare:
		return "square"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Class is the classification of one index.
type Class struct {
	Kind  Kind
	Count int
}

// Classifier classifies indices.
type Classifier interface {
	Classify(n uint64) Class
}

// Func adapts a function to the Classifier interface.
type Func func(n uint64) Class

// Classify implements Classifier.
func (f Func) Classify(n uint64) Class { return f(n) }

// Sizer is implemented by classifiers that hold a cache.
type Sizer interface {
	Len() int
}

// Warmer is implemented by classifiers whose results depend on having seen
// the smaller indices. Warm prepares them for a run that starts at below.
type Warmer interface {
	Warm(below uint64)
}

// Policy names a classifier.
type Policy string

// Available classifier policies.
const (
	PolicyFactors Policy = "factors"
	PolicyCollatz Policy = "collatz"
	PolicySquares Policy = "squares"
)

// Policies returns the registered policy names in a stable order.
func Policies() []Policy {
	return []Policy{PolicyFactors, PolicyCollatz, PolicySquares}
}

// Options configures New.
type Options struct {
	// Capacity bounds the factor cache. Zero means DefaultCapacity.
	Capacity int

	// Mode selects the Collatz counting rule. Empty means ModeFull.
	Mode Mode

	// Limit bounds Collatz trajectories. Zero means DefaultLimit.
	Limit int

	// Memo is the Collatz memo capacity. Zero means DefaultMemo and a
	// negative value disables it.
	Memo int
}

// New creates a classifier for the named policy.
func New(policy Policy, opts Options) (Classifier, error) {
	switch policy {
	case PolicyFactors:
		return NewFactors(opts.Capacity), nil
	case PolicyCollatz:
		c, err := NewCollatz(opts.Mode, opts.Limit)
		if err != nil {
			return nil, err
		}
		memo := opts.Memo
		if memo == 0 {
			memo = DefaultMemo
		}
		c.EnableMemo(memo)
		return c, nil
	case PolicySquares:
		return Squares{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}
