package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/render"
)

const defaultFontFamily = "Inter, Helvetica, Arial, sans-serif"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    palette.Palette
	scene      *render.Scene
	background string
	title      string
	fontFamily string
}

// WithPalette sets the category colors (default [palette.Default]).
func WithPalette(p palette.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithScene overrides the presentation policy. Its Width and Height are
// replaced by the size passed to [RenderSVG].
func WithScene(sc render.Scene) SVGOption { return func(r *svgRenderer) { r.scene = &sc } }

// WithBackground fills the canvas with a CSS color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithFontFamily sets the CSS font-family of the labels.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.fontFamily = family } }

// RenderSVG draws bubbles on a width×height SVG document.
func RenderSVG(bubbles []bubble.Bubble, width, height float64, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	sc := render.DefaultScene(width, height)
	if r.scene != nil {
		sc = *r.scene
		sc.Width, sc.Height = width, height
	}

	s := NewSVGSurface(r.fontFamily)
	s.background = r.background
	s.title = r.title
	render.Draw(s, bubbles, r.palette, sc)
	return s.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: palette.Default(), fontFamily: defaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SVGSurface is a [render.Surface] that writes SVG elements.
type SVGSurface struct {
	body       bytes.Buffer
	width      float64
	height     float64
	gradients  int
	fontFamily string
	background string
	title      string
}

// NewSVGSurface creates an empty surface using the given font family.
func NewSVGSurface(fontFamily string) *SVGSurface {
	if fontFamily == "" {
		fontFamily = defaultFontFamily
	}
	return &SVGSurface{fontFamily: fontFamily}
}

func (s *SVGSurface) Clear(width, height float64) {
	s.body.Reset()
	s.width, s.height = width, height
	s.gradients = 0
}

func (s *SVGSurface) FillRadialGradient(x, y, radius float64, inner, outer palette.Color) {
	id := fmt.Sprintf("bubble-fill-%d", s.gradients)
	s.gradients++

	fmt.Fprintf(&s.body, `  <defs><radialGradient id="%s">`, id)
	fmt.Fprintf(&s.body, `<stop offset="0" stop-color="%s" stop-opacity="%s"/>`, inner.Hex(), opacity(inner.Alpha))
	fmt.Fprintf(&s.body, `<stop offset="1" stop-color="%s" stop-opacity="%s"/>`, outer.Hex(), opacity(outer.Alpha))
	s.body.WriteString("</radialGradient></defs>\n")
	fmt.Fprintf(&s.body, `  <circle class="bubble" cx="%.2f" cy="%.2f" r="%.2f" fill="url(#%s)"/>`+"\n", x, y, radius, id)
}

func (s *SVGSurface) StrokeCircle(x, y, radius, lineWidth float64, c palette.Color) {
	fmt.Fprintf(&s.body, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
		x, y, radius, c.Hex(), opacity(c.Alpha), opacity(lineWidth))
}

func (s *SVGSurface) FillText(text string, x, y, size float64, bold bool, c palette.Color) {
	weight := "normal"
	if bold {
		weight = "bold"
	}
	fmt.Fprintf(&s.body, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="%.2f" font-weight="%s" fill="%s" fill-opacity="%s">%s</text>`+"\n",
		x, y, size, weight, c.Hex(), opacity(c.Alpha), escapeXML(text))
}

// Bytes returns the complete SVG document.
func (s *SVGSurface) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		s.width, s.height, s.width, s.height, escapeXML(s.fontFamily))
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	if s.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func opacity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
