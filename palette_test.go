package numspiral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/numspiral/classify"
)

func TestNewPalette(t *testing.T) {
	tests := []struct {
		name   PaletteName
		policy classify.Policy
		want   Palette
	}{
		{PaletteAuto, classify.PolicyFactors, PrimePalette{}},
		{PaletteAuto, classify.PolicyCollatz, StepsPalette{Base: White, Gain: DefaultGain}},
		{PaletteAuto, classify.PolicySquares, SquarePalette{}},
		{PaletteFactors, classify.PolicyFactors, FactorPalette{}},
		{PaletteSteps, classify.PolicyFactors, StepsPalette{Base: White, Gain: DefaultGain}},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy)+"/"+string(tt.name), func(t *testing.T) {
			p, err := NewPalette(tt.name, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}

	_, err := NewPalette("rainbow", classify.PolicyFactors)
	require.ErrorIs(t, err, ErrUnknownPalette)

	for _, name := range Palettes() {
		_, err := NewPalette(name, classify.PolicyFactors)
		assert.NoError(t, err, name)
	}
}

func TestPrimePalette(t *testing.T) {
	var p PrimePalette
	assert.Equal(t, White, p.Color(classify.Class{Kind: classify.KindPrime}))
	assert.Equal(t, Red, p.Color(classify.Class{Kind: classify.KindOverflow}))
	assert.False(t, p.Color(classify.Class{Kind: classify.KindComposite, Count: 2}).Visible())
	assert.False(t, p.Color(classify.Class{Kind: classify.KindUnit}).Visible())
}

func TestFactorPalette(t *testing.T) {
	var p FactorPalette
	assert.Equal(t, White, p.Color(classify.Class{Kind: classify.KindPrime}))
	assert.Equal(t, Red, p.Color(classify.Class{Kind: classify.KindOverflow}))

	one := p.Color(classify.Class{Kind: classify.KindComposite, Count: 1})
	two := p.Color(classify.Class{Kind: classify.KindComposite, Count: 2})
	assert.True(t, one.Visible())
	assert.NotEqual(t, one, two)
	assert.False(t, p.Color(classify.Class{Kind: classify.KindUnit}).Visible())
}

func TestStepsPalette(t *testing.T) {
	p := StepsPalette{Base: White, Gain: DefaultGain}

	tests := []struct {
		count int
		alpha uint8
	}{
		{0, 0},
		{1, 16},
		{15, 240},
		{16, 255},
		{111, 255},
	}
	for _, tt := range tests {
		c := p.Color(classify.Class{Kind: classify.KindSteps, Count: tt.count})
		assert.Equal(t, White.WithAlpha(tt.alpha), c, "count=%d", tt.count)
	}

	assert.Equal(t, Red, p.Color(classify.Class{Kind: classify.KindOverflow}))
	assert.False(t, p.Color(classify.Class{Kind: classify.KindUnit}).Visible())
}

func TestSquarePalette(t *testing.T) {
	var p SquarePalette
	assert.Equal(t, White, p.Color(classify.Class{Kind: classify.KindSquare, Count: 3}))
	assert.False(t, p.Color(classify.Class{Kind: classify.KindNone}).Visible())
}

func TestPaletteFunc(t *testing.T) {
	p := PaletteFunc(func(classify.Class) Color { return Green })
	assert.Equal(t, Green, p.Color(classify.Class{}))
}
