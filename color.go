package numspiral

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ErrInvalidColor is returned when a colour string cannot be parsed.
var ErrInvalidColor = errors.New("numspiral: invalid color")

// Color is an 8-bit, non-premultiplied RGBA colour.
//
// An alpha of zero marks a point that is intentionally not drawn: the driver
// skips the pixel write and whatever is on the raster stays.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to the standard library's non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Visible reports whether the colour produces a pixel write.
func (c Color) Visible() bool {
	return c.A != 0
}

// WithAlpha returns the colour with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// RGB creates an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBF creates an opaque colour from components in [0, 1].
func RGBF(r, g, b float64) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
}

// FromColor converts any color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA"; the leading '#'
// is optional.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var v [8]uint8
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok || i >= len(v) {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v[i] = d
	}

	switch len(hex) {
	case 3: // RGB
		return Color{R: v[0] * 17, G: v[1] * 17, B: v[2] * 17, A: 255}, nil
	case 4: // RGBA
		return Color{R: v[0] * 17, G: v[1] * 17, B: v[2] * 17, A: v[3] * 17}, nil
	case 6: // RRGGBB
		return Color{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 255}, nil
	case 8: // RRGGBBAA
		return Color{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: v[6]<<4 | v[7]}, nil
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Hex formats the colour as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler so colours read naturally in
// configuration files.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Lerp interpolates linearly between c and other; t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B), A: mix(c.A, other.A)}
}

// HSL creates an opaque colour from hue in degrees and saturation and
// lightness in [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBF(r+m, g+m, b+m)
}

// ClampAlpha converts an integer intensity to an alpha value, saturating at
// both ends.
func ClampAlpha(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// unit8 maps [0, 1] onto [0, 255] with rounding and clamping.
func unit8(x float64) uint8 {
	return uint8(clamp255(math.Round(x * 255)))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Cyan        = RGB(0, 255, 255)
	Magenta     = RGB(255, 0, 255)
	Transparent = Color{}
)
