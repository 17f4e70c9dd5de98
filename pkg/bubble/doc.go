// Package bubble computes the radial bubble layout of the talent map.
//
// Given an ordered list of count entries and the extent of a drawing
// surface, [Compute] places one circle per entry on a single ring centered
// on the surface:
//
//   - the radius grows linearly with the entry's share of the largest count,
//     floored at a minimum radius (see [WithMinRadius], [WithMaxRadiusSpan])
//   - entry i of n sits at angle 2π·i/n, in input order
//   - the ring radius is a third of the surface's smaller side
//
// The layout is a pure function of its arguments: no randomness, no sorting,
// no collision avoidance. Bubbles may overlap when a few large entries share
// a small ring; callers that want a different reading order sort the list
// view separately (see distribution.SortedByCountDesc).
//
// # Usage
//
//	bubbles := bubble.Compute(skills, 1000, 600)
//	for _, b := range bubbles {
//	    fmt.Printf("%s at (%.0f, %.0f) r=%.0f\n", b.Entry.Name, b.X, b.Y, b.Radius)
//	}
package bubble
