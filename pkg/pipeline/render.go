package pipeline

import (
	"context"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/render"
	"github.com/matzehuels/talentmap/pkg/render/sink"
)

// RenderFormat renders bubbles in a single format.
func RenderFormat(ctx context.Context, bubbles []bubble.Bubble, opts Options, format string) ([]byte, error) {
	p := palette.Default()
	if opts.Palette != nil {
		p = *opts.Palette
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(bubbles, opts.Width, opts.Height, svgOptions(p, opts)...), nil
	case FormatPDF:
		return sink.RenderPDF(ctx, bubbles, opts.Width, opts.Height, svgOptions(p, opts)...)
	case FormatPNG:
		return sink.RenderPNG(ctx, bubbles, opts.Width, opts.Height,
			sink.WithDOTPalette(p), sink.WithDOTUnit(opts.Unit()))
	case FormatDOT:
		return []byte(sink.ToDOT(bubbles, opts.Width, opts.Height,
			sink.WithDOTPalette(p), sink.WithDOTUnit(opts.Unit()))), nil
	case FormatJSON:
		return sink.RenderJSON(bubbles, opts.Width, opts.Height,
			sink.WithJSONPalette(p),
			sink.WithJSONCategory(opts.Category),
			sink.WithJSONUnit(opts.Unit()),
		)
	default:
		return nil, ValidateFormat(format)
	}
}

func svgOptions(p palette.Palette, opts Options) []sink.SVGOption {
	sc := render.DefaultScene(opts.Width, opts.Height)
	sc.Unit = opts.Unit()
	svgOpts := []sink.SVGOption{sink.WithPalette(p), sink.WithScene(sc)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}
