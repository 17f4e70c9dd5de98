package render

import (
	"math"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/palette"
)

// Surface is a drawing target owned by the host.
//
// Coordinates are in surface units with the origin at the top left. Text is
// centered horizontally on x; y is the baseline.
type Surface interface {
	Clear(width, height float64)
	FillRadialGradient(x, y, radius float64, inner, outer palette.Color)
	StrokeCircle(x, y, radius, lineWidth float64, c palette.Color)
	FillText(text string, x, y, size float64, bold bool, c palette.Color)
}

// Scene holds the presentation policy for a redraw.
type Scene struct {
	Width  float64
	Height float64

	InnerAlpha  float64 // gradient center
	OuterAlpha  float64 // gradient rim
	StrokeAlpha float64
	StrokeWidth float64

	PrimaryColor    palette.Color
	SecondaryColor  palette.Color
	PrimaryOffset   float64 // baseline offset of the name from the center
	SecondaryOffset float64 // baseline offset of the count from the center

	// Unit is appended to counts in the secondary label ("12 talents").
	Unit string
}

// DefaultScene returns the talent map's look for a surface of the given size.
func DefaultScene(width, height float64) Scene {
	return Scene{
		Width:           width,
		Height:          height,
		InnerAlpha:      0.6,
		OuterAlpha:      0.1,
		StrokeAlpha:     0.8,
		StrokeWidth:     2,
		PrimaryColor:    palette.Color{RGB: palette.RGB{R: 255, G: 255, B: 255}, Alpha: 1},
		SecondaryColor:  palette.Color{RGB: palette.Neutral, Alpha: 1},
		PrimaryOffset:   -5,
		SecondaryOffset: 10,
		Unit:            distribution.UnitTalents,
	}
}

// PrimaryFontSize is the font size of the entry name in a bubble of radius r.
func PrimaryFontSize(r float64) float64 { return math.Max(10, r/3) }

// SecondaryFontSize is the font size of the count label in a bubble of radius r.
func SecondaryFontSize(r float64) float64 { return math.Max(8, r/4) }

// Draw clears s and paints every bubble in order, so later bubbles are drawn
// over earlier ones where they overlap.
func Draw(s Surface, bubbles []bubble.Bubble, p palette.Palette, sc Scene) {
	s.Clear(sc.Width, sc.Height)
	for _, b := range bubbles {
		drawBubble(s, b, p, sc)
	}
}

func drawBubble(s Surface, b bubble.Bubble, p palette.Palette, sc Scene) {
	category := b.Entry.Category
	s.FillRadialGradient(b.X, b.Y, b.Radius, p.ColorFor(category, sc.InnerAlpha), p.ColorFor(category, sc.OuterAlpha))
	s.StrokeCircle(b.X, b.Y, b.Radius, sc.StrokeWidth, p.ColorFor(category, sc.StrokeAlpha))
	s.FillText(b.Entry.Name, b.X, b.Y+sc.PrimaryOffset, PrimaryFontSize(b.Radius), true, sc.PrimaryColor)
	s.FillText(b.Entry.Label(sc.Unit), b.X, b.Y+sc.SecondaryOffset, SecondaryFontSize(b.Radius), false, sc.SecondaryColor)
}
