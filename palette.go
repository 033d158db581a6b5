package numspiral

import (
	"errors"
	"fmt"

	"github.com/gogpu/numspiral/classify"
)

// ErrUnknownPalette is returned for a palette name NewPalette does not know.
var ErrUnknownPalette = errors.New("numspiral: unknown palette")

// Palette maps a classification to a colour. A colour with zero alpha means
// the point is skipped.
type Palette interface {
	Color(c classify.Class) Color
}

// PaletteFunc adapts a function to Palette.
type PaletteFunc func(c classify.Class) Color

// Color implements Palette.
func (f PaletteFunc) Color(c classify.Class) Color { return f(c) }

// PaletteName selects a built-in palette.
type PaletteName string

// Built-in palettes. PaletteAuto picks the palette matching the classifier.
const (
	PaletteAuto    PaletteName = ""
	PalettePrimes  PaletteName = "primes"
	PaletteFactors PaletteName = "factors"
	PaletteSteps   PaletteName = "steps"
	PaletteSquares PaletteName = "squares"
)

// Palettes lists the built-in palette names.
func Palettes() []PaletteName {
	return []PaletteName{PalettePrimes, PaletteFactors, PaletteSteps, PaletteSquares}
}

// DefaultPalette returns the palette name used with a classifier policy.
func DefaultPalette(policy classify.Policy) PaletteName {
	switch policy {
	case classify.PolicyCollatz:
		return PaletteSteps
	case classify.PolicySquares:
		return PaletteSquares
	default:
		return PalettePrimes
	}
}

// NewPalette builds a named palette. PaletteAuto resolves through
// DefaultPalette.
func NewPalette(name PaletteName, policy classify.Policy) (Palette, error) {
	if name == PaletteAuto {
		name = DefaultPalette(policy)
	}
	switch name {
	case PalettePrimes:
		return PrimePalette{}, nil
	case PaletteFactors:
		return FactorPalette{}, nil
	case PaletteSteps:
		return StepsPalette{Base: White, Gain: DefaultGain}, nil
	case PaletteSquares:
		return SquarePalette{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
}

// PrimePalette draws primes white and cache overflow red; nothing else is
// drawn.
type PrimePalette struct{}

// Color implements Palette.
func (PrimePalette) Color(c classify.Class) Color {
	switch c.Kind {
	case classify.KindPrime:
		return White
	case classify.KindOverflow:
		return Red
	default:
		return Transparent
	}
}

// FactorPalette draws primes white and composites with a hue that rotates with
// the number of cached factors.
type FactorPalette struct{}

// factorHueStep is the hue rotation per counted factor, in degrees.
const factorHueStep = 36

// Color implements Palette.
func (FactorPalette) Color(c classify.Class) Color {
	switch c.Kind {
	case classify.KindPrime:
		return White
	case classify.KindOverflow:
		return Red
	case classify.KindComposite:
		return HSL(float64((c.Count-1)*factorHueStep), 0.85, 0.5)
	default:
		return Transparent
	}
}

// DefaultGain is the alpha added per trajectory step.
const DefaultGain = 16

// StepsPalette draws Base with alpha = clamp(Gain·count, 0, 255). Trajectories
// that would overflow are drawn red. A zero count is not drawn.
type StepsPalette struct {
	Base Color
	Gain int
}

// Color implements Palette.
func (p StepsPalette) Color(c classify.Class) Color {
	switch c.Kind {
	case classify.KindSteps:
		return p.Base.WithAlpha(ClampAlpha(p.Gain * c.Count))
	case classify.KindOverflow:
		return Red
	default:
		return Transparent
	}
}

// SquarePalette draws perfect squares white.
type SquarePalette struct{}

// Color implements Palette.
func (SquarePalette) Color(c classify.Class) Color {
	if c.Kind == classify.KindSquare {
		return White
	}
	return Transparent
}
