package sink

import (
	"encoding/json"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	palette  palette.Palette
	category string
	unit     string
	scene    render.Scene
}

// WithJSONPalette sets the palette used to resolve bubble colors.
func WithJSONPalette(p palette.Palette) JSONOption { return func(r *jsonRenderer) { r.palette = p } }

// WithJSONCategory records the active category filter in the output.
func WithJSONCategory(c string) JSONOption { return func(r *jsonRenderer) { r.category = c } }

// WithJSONUnit sets the unit of the count labels (default "talents").
func WithJSONUnit(u string) JSONOption { return func(r *jsonRenderer) { r.unit = u } }

type jsonOutput struct {
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Category string       `json:"category,omitempty"`
	Bubbles  []jsonBubble `json:"bubbles"`
}

type jsonBubble struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Count    int     `json:"count"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Fill     string  `json:"fill"`
	FillEdge string  `json:"fill_edge"`
	Stroke   string  `json:"stroke"`
}

// RenderJSON exports the bubbles with their resolved colors as a
// pretty-printed JSON document. Colors are CSS rgba() strings.
func RenderJSON(bubbles []bubble.Bubble, width, height float64, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{palette: palette.Default(), unit: distribution.UnitTalents, scene: render.DefaultScene(width, height)}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    width,
		Height:   height,
		Category: r.category,
		Bubbles:  make([]jsonBubble, 0, len(bubbles)),
	}
	for _, b := range bubbles {
		c := b.Entry.Category
		out.Bubbles = append(out.Bubbles, jsonBubble{
			Name:     b.Entry.Name,
			Category: c,
			Count:    b.Entry.Count,
			Label:    b.Entry.Label(r.unit),
			X:        b.X,
			Y:        b.Y,
			Radius:   b.Radius,
			Fill:     r.palette.ColorFor(c, r.scene.InnerAlpha).String(),
			FillEdge: r.palette.ColorFor(c, r.scene.OuterAlpha).String(),
			Stroke:   r.palette.ColorFor(c, r.scene.StrokeAlpha).String(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
