package colors

import (
	"fmt"
	"strconv"
	"strings"
)

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Parse reads an "rrggbb" or "rrggbbaa" hex string, with or without a
// leading '#'.
func Parse(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		float32(v>>24&0xff) / 255,
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// MustParse is Parse for literals known to be valid; invalid input yields
// transparent black.
func MustParse(s string) Color {
	c, _ := Parse(s)
	return c
}

// Hex formats c as "rrggbbaa".
func (c Color) Hex() string {
	var b [4]uint8
	for i, v := range c {
		b[i] = uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("%02x%02x%02x%02x", b[0], b[1], b[2], b[3])
}

// FromTint converts a -255..255 byte-scale tint to normalized channels.
func FromTint(t [4]float64) Color {
	return Color{float32(t[0] / 255), float32(t[1] / 255), float32(t[2] / 255), float32(t[3] / 255)}
}
