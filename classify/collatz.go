// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import (
	"fmt"
	"math"

	"github.com/gogpu/numspiral/internal/cache"
)

// DefaultLimit bounds a Collatz trajectory. Every start below 2^25 reaches 1
// in fewer steps.
const DefaultLimit = 1000

// Mode selects how Collatz steps are counted.
type Mode string

// Collatz counting modes.
const (
	// ModeFull counts every application of n/2 and 3n+1 until 1.
	ModeFull Mode = "full"

	// ModeShortcut folds 3n+1 and the halving that always follows it into a
	// single (3n+1)/2 step.
	ModeShortcut Mode = "shortcut"

	// ModeDescent uses the full rule but stops as soon as the value drops
	// below the start or becomes a power of two, reporting the partial count.
	ModeDescent Mode = "descent"
)

// Modes returns the known counting modes in a stable order.
func Modes() []Mode {
	return []Mode{ModeFull, ModeShortcut, ModeDescent}
}

// maxOdd is the largest odd value whose 3n+1 fits in a uint64.
const maxOdd = (math.MaxUint64 - 1) / 3

// DefaultMemo is the number of step counts a Collatz classifier remembers
// when Options.Memo is zero.
const DefaultMemo = 1 << 16

// Collatz classifies an index by its Collatz trajectory length.
//
// In the full and shortcut modes exact step counts are remembered in a
// bounded LRU memo; a trajectory that drops below its start and meets a
// remembered value stops there. Results are the same with or without it.
type Collatz struct {
	mode  Mode
	limit int
	memo  *cache.LRU[uint64, int]
}

// NewCollatz creates a Collatz classifier. An empty mode means ModeFull and a
// limit <= 0 means DefaultLimit.
func NewCollatz(mode Mode, limit int) (*Collatz, error) {
	switch mode {
	case "":
		mode = ModeFull
	case ModeFull, ModeShortcut, ModeDescent:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Collatz{mode: mode, limit: limit}, nil
}

// EnableMemo gives c a memo of the given capacity. A capacity <= 0 removes
// it. The descent mode never uses one: its counts depend on the start.
func (c *Collatz) EnableMemo(capacity int) {
	if capacity <= 0 || c.mode == ModeDescent {
		c.memo = nil
		return
	}
	c.memo = cache.NewLRU[uint64, int](capacity)
}

// Len implements Sizer: the number of remembered step counts.
func (c *Collatz) Len() int {
	if c.memo == nil {
		return 0
	}
	return c.memo.Len()
}

// MemoStats returns statistics of the memo, zero without one.
func (c *Collatz) MemoStats() cache.Stats {
	if c.memo == nil {
		return cache.Stats{}
	}
	return c.memo.Stats()
}

// Mode returns the counting mode.
func (c *Collatz) Mode() Mode {
	return c.mode
}

// Classify implements Classifier.
//
// The result is KindSteps with the step count, clamped to the limit. Index 0
// is KindUnit. A value that would overflow on 3n+1 ends the walk with
// KindOverflow and the steps counted so far.
func (c *Collatz) Classify(n uint64) Class {
	if n == 0 {
		return Class{Kind: KindUnit}
	}

	if c.memo != nil {
		if total, ok := c.memo.Get(n); ok {
			return Class{Kind: KindSteps, Count: min(total, c.limit)}
		}
	}

	start := n
	steps := 0
	for n != 1 && steps < c.limit {
		if c.mode == ModeDescent && (n < start || n&(n-1) == 0) {
			break
		}
		if c.memo != nil && n < start {
			if rest, ok := c.memo.Get(n); ok {
				total := steps + rest
				c.memo.Put(start, total)
				return Class{Kind: KindSteps, Count: min(total, c.limit)}
			}
		}
		if n%2 == 0 {
			n /= 2
		} else {
			if n > maxOdd {
				return Class{Kind: KindOverflow, Count: steps}
			}
			n = 3*n + 1
			if c.mode == ModeShortcut {
				n /= 2
			}
		}
		steps++
	}
	if c.memo != nil && n == 1 {
		c.memo.Put(start, steps)
	}
	return Class{Kind: KindSteps, Count: steps}
}
