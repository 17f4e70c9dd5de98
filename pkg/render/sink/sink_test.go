package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/palette"
)

func sampleBubbles() []bubble.Bubble {
	return []bubble.Bubble{
		{Entry: distribution.Entry{Name: "Go", Category: "Technique", Count: 10}, X: 500, Y: 300, Radius: 80},
		{Entry: distribution.Entry{Name: "R&D <lead>", Category: "Management", Count: 2}, X: 200, Y: 300, Radius: 20},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleBubbles(), 1000, 600))

	for _, want := range []string{
		`viewBox="0 0 1000.0 600.0" width="1000" height="600"`,
		`<stop offset="0" stop-color="#3b82f6" stop-opacity="0.6"/>`,
		`<stop offset="1" stop-color="#3b82f6" stop-opacity="0.1"/>`,
		`<circle class="bubble" cx="500.00" cy="300.00" r="80.00" fill="url(#bubble-fill-0)"/>`,
		`stroke="#22c55e" stroke-opacity="0.8" stroke-width="2"`,
		`font-weight="bold" fill="#ffffff" fill-opacity="1">Go</text>`,
		`>10 talents</text>`,
		`R&amp;D &lt;lead&gt;`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, "<radialGradient"); got != 2 {
		t.Errorf("gradients = %d, want 2", got)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	p := palette.New(map[string]palette.RGB{"Technique": {R: 1, G: 2, B: 3}}, palette.Neutral)
	svg := string(RenderSVG(sampleBubbles(), 400, 300,
		WithPalette(p),
		WithTitle("Talent map"),
		WithBackground("#111827"),
		WithFontFamily("monospace"),
	))
	for _, want := range []string{
		"<title>Talent map</title>",
		`fill="#111827"`,
		`font-family="monospace"`,
		`stop-color="#010203"`,
		`stop-color="#9ca3af"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil, 1000, 600))
	if strings.Contains(svg, "<circle") {
		t.Error("empty layout rendered circles")
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("malformed document: %q", svg)
	}
}

func TestSVGSurfaceClear(t *testing.T) {
	s := NewSVGSurface("")
	s.Clear(10, 10)
	s.StrokeCircle(1, 1, 1, 1, palette.Color{RGB: palette.Blue, Alpha: 1})
	s.Clear(20, 20)
	out := string(s.Bytes())
	if strings.Contains(out, "<circle") {
		t.Error("Clear kept earlier drawing")
	}
	if !strings.Contains(out, `width="20"`) {
		t.Errorf("size not updated: %s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleBubbles(), 1000, 600, WithJSONCategory("Technique"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 1000 || out.Height != 600 {
		t.Errorf("size = %vx%v", out.Width, out.Height)
	}
	if out.Category != "Technique" {
		t.Errorf("Category = %q", out.Category)
	}
	if len(out.Bubbles) != 2 {
		t.Fatalf("Bubbles = %d, want 2", len(out.Bubbles))
	}
	b := out.Bubbles[0]
	if b.Name != "Go" || b.Label != "10 talents" || b.Radius != 80 {
		t.Errorf("bubble = %+v", b)
	}
	if b.Fill != "rgba(59, 130, 246, 0.6)" || b.FillEdge != "rgba(59, 130, 246, 0.1)" || b.Stroke != "rgba(59, 130, 246, 0.8)" {
		t.Errorf("colors = %s %s %s", b.Fill, b.FillEdge, b.Stroke)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(nil, 10, 10, WithJSONUnit(distribution.UnitPeople))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"bubbles": []`)) {
		t.Errorf("empty bubbles not encoded as []: %s", data)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleBubbles(), 720, 360)
	for _, want := range []string{
		"graph talentmap {",
		`"corner-max" [style=invis, width=0, height=0, label="", pos="10.0000,5.0000!"]`,
		`label="Go\n10 talents"`,
		// y is flipped: 360-300 = 60pt.
		`pos="6.9444,0.8333!"`,
		`width=2.2222`,
		`fillcolor="#3b82f699:#3b82f61a"`,
		`color="#3b82f6cc"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestRenderGraphviz(t *testing.T) {
	ctx := context.Background()
	dot := ToDOT(sampleBubbles(), 1000, 600)

	svg, err := RenderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		t.Fatalf("RenderGraphviz(SVG) error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output missing <svg> tag")
	}

	png, err := RenderPNG(ctx, sampleBubbles(), 1000, 600)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderGraphvizInvalidDOT(t *testing.T) {
	if _, err := RenderGraphviz(context.Background(), `not valid DOT {{{`, graphviz.SVG); err == nil {
		t.Error("RenderGraphviz() should return error for invalid DOT")
	}
}
