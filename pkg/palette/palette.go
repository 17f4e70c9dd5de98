// Package palette maps skill categories to colors.
//
// A [Palette] is static configuration: a table from category label to a base
// RGB triple plus a fallback for categories the table does not know.
// [Palette.ColorFor] is a total lookup: every string resolves to a color,
// unknown ones to the fallback.
//
// Opacity is chosen by the caller. The engine draws bubbles with a radial
// gradient (alpha 0.6 inside, 0.1 at the rim) and a 0.8 border, and list
// views use 0.2 for swatch backgrounds, 1.0 for text and 0.8 for bars; those
// values live with the callers, not here. ColorFor passes alpha through
// without clamping.
//
// Palettes are values; pass a different one to swap the color scheme
// without touching the layout:
//
//	p, err := palette.FromHex(map[string]string{"Data": "#0ea5e9"}, "#9ca3af")
//	fill := p.ColorFor("Data", 0.6).String() // "rgba(14, 165, 233, 0.6)"
package palette

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/talentmap/pkg/errors"
)

// RGB is an opaque base color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Over composites c at opacity alpha over bg and returns the opaque result.
// Terminals and other surfaces without alpha use it to approximate
// translucent fills.
func (c RGB) Over(bg RGB, alpha float64) RGB {
	alpha = max(0, min(alpha, 1))
	blended := toColorful(bg).BlendRgb(toColorful(c), alpha)
	r, g, b := blended.Clamped().RGB255()
	return RGB{r, g, b}
}

// Color is a base color with an opacity.
type Color struct {
	RGB
	Alpha float64
}

// String formats the color as a CSS rgba() value, e.g. "rgba(59, 130, 246, 0.6)".
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.Alpha, 'f', -1, 64))
}

// HexAlpha formats the color as "#rrggbbaa", with alpha clamped into [0, 1]
// since the byte form cannot represent anything else.
func (c Color) HexAlpha() string {
	a := uint8(max(0, min(c.Alpha, 1))*255 + 0.5)
	return fmt.Sprintf("%s%02x", c.Hex(), a)
}

// Base colors of the default palette.
var (
	Blue    = RGB{59, 130, 246}
	Fuchsia = RGB{217, 70, 239}
	Green   = RGB{34, 197, 94}
	Amber   = RGB{245, 158, 11}
	Neutral = RGB{156, 163, 175} // fallback for unknown categories
)

// Palette maps category labels to base colors.
type Palette struct {
	colors   map[string]RGB
	fallback RGB
}

// New creates a palette from a category table and a fallback color.
// The table is copied; later changes to colors do not affect the palette.
func New(colors map[string]RGB, fallback RGB) Palette {
	return Palette{colors: maps.Clone(colors), fallback: fallback}
}

// Default returns the talent map's palette.
func Default() Palette {
	return New(map[string]RGB{
		"Technique":   Blue,
		"Design":      Fuchsia,
		"Management":  Green,
		"Soft Skills": Amber,
	}, Neutral)
}

// FromHex builds a palette from hex strings such as "#3b82f6".
// An empty fallback means [Neutral].
func FromHex(colors map[string]string, fallback string) (Palette, error) {
	table := make(map[string]RGB, len(colors))
	for _, category := range slices.Sorted(maps.Keys(colors)) {
		c, err := parseHex(colors[category])
		if err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "color for category %q", category)
		}
		table[category] = c
	}

	fb := Neutral
	if fallback != "" {
		c, err := parseHex(fallback)
		if err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "fallback color")
		}
		fb = c
	}
	return Palette{colors: table, fallback: fb}, nil
}

// ColorFor returns the color of category at the given opacity.
// Unknown categories, including the empty one, get the fallback color.
func (p Palette) ColorFor(category string, alpha float64) Color {
	base, _ := p.Lookup(category)
	return Color{RGB: base, Alpha: alpha}
}

// Lookup returns the base color of category and whether the palette knows
// it. For unknown categories it returns the fallback and false.
func (p Palette) Lookup(category string) (RGB, bool) {
	if c, ok := p.colors[category]; ok {
		return c, true
	}
	return p.fallback, false
}

// Fallback returns the color used for unknown categories.
func (p Palette) Fallback() RGB { return p.fallback }

// Categories returns the categories the palette knows, sorted.
func (p Palette) Categories() []string {
	return slices.Sorted(maps.Keys(p.colors))
}

// Fingerprint returns a stable textual form of the palette, suitable as part
// of a cache key.
func (p Palette) Fingerprint() string {
	buf := make([]byte, 0, 16*(len(p.colors)+1))
	for _, category := range p.Categories() {
		buf = strconv.AppendQuote(buf, category)
		buf = append(buf, '=')
		buf = append(buf, p.colors[category].Hex()...)
		buf = append(buf, ';')
	}
	buf = append(buf, "*="...)
	buf = append(buf, p.fallback.Hex()...)
	return string(buf)
}

func parseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
