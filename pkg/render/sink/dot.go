package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/errors"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/render"
)

// Graphviz positions are in inches, drawing units in points.
const pointsPerInch = 72.0

// DOTOption configures DOT generation.
type DOTOption func(*dotRenderer)

type dotRenderer struct {
	palette palette.Palette
	unit    string
	scene   render.Scene
}

// WithDOTPalette sets the palette used for node colors.
func WithDOTPalette(p palette.Palette) DOTOption { return func(r *dotRenderer) { r.palette = p } }

// WithDOTUnit sets the unit of the count labels (default "talents").
func WithDOTUnit(u string) DOTOption { return func(r *dotRenderer) { r.unit = u } }

// ToDOT converts bubbles to a Graphviz graph for the neato engine. Every
// bubble becomes a fixed-size circle pinned at its computed position, so
// Graphviz only rasterizes and never moves anything. Two invisible corner
// nodes keep the canvas at width×height.
func ToDOT(bubbles []bubble.Bubble, width, height float64, opts ...DOTOption) string {
	r := dotRenderer{palette: palette.Default(), unit: distribution.UnitTalents, scene: render.DefaultScene(width, height)}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("graph talentmap {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  outputorder=\"nodesfirst\";\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, style=\"radial\", fontname=\"Helvetica\", fontcolor=\"white\"];\n")
	fmt.Fprintf(&buf, "  \"corner-min\" [style=invis, width=0, height=0, label=\"\", pos=%q];\n", pinned(0, 0))
	fmt.Fprintf(&buf, "  \"corner-max\" [style=invis, width=0, height=0, label=\"\", pos=%q];\n", pinned(width, height))
	buf.WriteString("\n")

	for i, b := range bubbles {
		c := b.Entry.Category
		inner := r.palette.ColorFor(c, r.scene.InnerAlpha)
		outer := r.palette.ColorFor(c, r.scene.OuterAlpha)
		stroke := r.palette.ColorFor(c, r.scene.StrokeAlpha)
		label := b.Entry.Name + "\n" + b.Entry.Label(r.unit)

		fmt.Fprintf(&buf, "  \"b%d\" [label=%q, pos=%q, width=%.4f, fillcolor=\"%s:%s\", color=%q, penwidth=%g, fontsize=%.2f];\n",
			i, label, pinned(b.X, height-b.Y), 2*b.Radius/pointsPerInch,
			inner.HexAlpha(), outer.HexAlpha(), stroke.HexAlpha(), r.scene.StrokeWidth,
			render.PrimaryFontSize(b.Radius))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pinned(x, y float64) string {
	return fmt.Sprintf("%.4f,%.4f!", x/pointsPerInch, y/pointsPerInch)
}

// RenderGraphviz lays out dot with neato and renders it in-process.
func RenderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// RenderPNG rasterizes bubbles through Graphviz.
func RenderPNG(ctx context.Context, bubbles []bubble.Bubble, width, height float64, opts ...DOTOption) ([]byte, error) {
	return RenderGraphviz(ctx, ToDOT(bubbles, width, height, opts...), graphviz.PNG)
}
