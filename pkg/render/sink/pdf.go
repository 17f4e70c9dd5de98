package sink

import (
	"context"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/render"
)

// RenderPDF renders bubbles as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, bubbles []bubble.Bubble, width, height float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(bubbles, width, height, opts...))
}
