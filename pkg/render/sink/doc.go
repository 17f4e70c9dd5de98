// Package sink turns a bubble layout into output documents.
//
// # Overview
//
// Every sink takes the same inputs: the bubbles computed by
// [bubble.Compute], the surface size, and rendering options. Provided
// formats:
//
//   - SVG: [RenderSVG], drawn through [render.Draw] onto an [SVGSurface]
//   - JSON: [RenderJSON], geometry plus resolved colors for external tools
//   - DOT: [ToDOT], a Graphviz graph with every bubble pinned in place
//   - PNG: [RenderPNG], the DOT graph rasterized in-process by go-graphviz
//   - PDF: [RenderPDF], the SVG converted with rsvg-convert
//
// Basic usage:
//
//	bubbles := bubble.Compute(entries, 1000, 600)
//	svg := sink.RenderSVG(bubbles, 1000, 600, sink.WithPalette(p))
//
// [bubble.Compute]: github.com/matzehuels/talentmap/pkg/bubble.Compute
// [render.Draw]: github.com/matzehuels/talentmap/pkg/render.Draw
package sink
