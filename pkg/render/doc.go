// Package render draws a bubble layout onto a host drawing surface.
//
// # Overview
//
// The layout and palette packages compute geometry and colors but never
// draw. Drawing goes through the [Surface] interface, which a host
// implements over whatever canvas it owns: an SVG document (see the [sink]
// subpackage), a terminal, or a test [Recorder].
//
// [Draw] performs one full redraw: it clears the surface, then for each
// bubble paints a radial gradient, strokes the border and writes two
// centered labels, the entry name and its formatted count:
//
//	bubbles := bubble.Compute(entries, 1000, 600)
//	render.Draw(surface, bubbles, palette.Default(), render.DefaultScene(1000, 600))
//
// Redraws are idempotent. Callers recompute the layout and call Draw again
// whenever the snapshot, filter or surface size changes.
//
// # Format Conversion
//
// [ToPDF] converts SVG bytes with the external rsvg-convert tool (from
// librsvg). PNG output does not go through here; it is rasterized by
// Graphviz in the sink package.
//
// [sink]: github.com/matzehuels/talentmap/pkg/render/sink
package render
