package render

import (
	"fmt"

	"github.com/matzehuels/talentmap/pkg/palette"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string // "clear", "gradient", "stroke" or "text"
	X, Y   float64
	Radius float64
	Width  float64 // surface width for clear, line width for stroke
	Height float64
	Size   float64
	Bold   bool
	Text   string
	Colors []palette.Color
}

func (o Op) String() string {
	switch o.Kind {
	case "clear":
		return fmt.Sprintf("clear %gx%g", o.Width, o.Height)
	case "gradient":
		return fmt.Sprintf("gradient (%g,%g) r=%g %s -> %s", o.X, o.Y, o.Radius, o.Colors[0], o.Colors[1])
	case "stroke":
		return fmt.Sprintf("stroke (%g,%g) r=%g w=%g %s", o.X, o.Y, o.Radius, o.Width, o.Colors[0])
	default:
		weight := "normal"
		if o.Bold {
			weight = "bold"
		}
		return fmt.Sprintf("text %q (%g,%g) %gpx %s %s", o.Text, o.X, o.Y, o.Size, weight, o.Colors[0])
	}
}

// Recorder is a [Surface] that records calls instead of drawing.
// Clear discards everything recorded so far.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(width, height float64) {
	r.Ops = append(r.Ops[:0], Op{Kind: "clear", Width: width, Height: height})
}

func (r *Recorder) FillRadialGradient(x, y, radius float64, inner, outer palette.Color) {
	r.Ops = append(r.Ops, Op{Kind: "gradient", X: x, Y: y, Radius: radius, Colors: []palette.Color{inner, outer}})
}

func (r *Recorder) StrokeCircle(x, y, radius, lineWidth float64, c palette.Color) {
	r.Ops = append(r.Ops, Op{Kind: "stroke", X: x, Y: y, Radius: radius, Width: lineWidth, Colors: []palette.Color{c}})
}

func (r *Recorder) FillText(text string, x, y, size float64, bold bool, c palette.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Size: size, Bold: bold, Text: text, Colors: []palette.Color{c}})
}
