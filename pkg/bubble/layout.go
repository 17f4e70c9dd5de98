package bubble

import (
	"math"

	"github.com/matzehuels/talentmap/pkg/distribution"
)

// Default radius parameters.
const (
	// DefaultMinRadius is the smallest radius any bubble is drawn with.
	DefaultMinRadius = 20.0

	// DefaultMaxRadiusSpan is the radius of the bubble holding the largest count.
	DefaultMaxRadiusSpan = 80.0
)

// Bubble is one positioned, sized circle. It is derived data and is
// recomputed on every call to [Compute].
type Bubble struct {
	Entry  distribution.Entry `json:"entry"`
	X      float64            `json:"x"`
	Y      float64            `json:"y"`
	Radius float64            `json:"radius"`
}

// Option configures layout computation.
type Option func(*config)

type config struct {
	minRadius float64
	span      float64
}

// WithMinRadius sets the radius floor (default [DefaultMinRadius]).
func WithMinRadius(r float64) Option { return func(c *config) { c.minRadius = r } }

// WithMaxRadiusSpan sets the radius given to the largest count
// (default [DefaultMaxRadiusSpan]).
func WithMaxRadiusSpan(s float64) Option { return func(c *config) { c.span = s } }

// Compute lays out entries on a single ring inside a width×height surface.
//
// The result has one bubble per entry, in input order. An empty input yields
// an empty (non-nil) slice. When every count is zero the largest count is
// taken as 1, so all bubbles get the minimum radius.
func Compute(entries []distribution.Entry, width, height float64, opts ...Option) []Bubble {
	cfg := config{minRadius: DefaultMinRadius, span: DefaultMaxRadiusSpan}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(entries)
	bubbles := make([]Bubble, n)
	if n == 0 {
		return bubbles
	}

	maxCount := float64(distribution.MaxCount(entries))
	if maxCount == 0 {
		maxCount = 1
	}

	cx, cy := width/2, height/2
	distance := Ring(width, height)

	for i, e := range entries {
		angle := Angle(i, n)
		bubbles[i] = Bubble{
			Entry:  e,
			X:      cx + math.Cos(angle)*distance,
			Y:      cy + math.Sin(angle)*distance,
			Radius: math.Max(cfg.minRadius, (float64(e.Count)/maxCount)*cfg.span),
		}
	}
	return bubbles
}

// Angle returns the ring angle, in radians, of entry i among n.
func Angle(i, n int) float64 {
	return (float64(i) / float64(n)) * 2 * math.Pi
}

// Ring returns the distance from the surface center to every bubble center.
func Ring(width, height float64) float64 {
	return math.Min(width, height) / 3
}
