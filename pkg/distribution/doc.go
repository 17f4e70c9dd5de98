// Package distribution models the aggregated talent snapshot and the list
// operations performed over it.
//
// # Snapshot
//
// A [Snapshot] is the full aggregated dataset returned by the talent-map API
// at one point in time: headline totals plus two ordered count tables, one
// for skills and one for spoken languages. Order is the order received from
// the API; nothing in this package assumes the tables are sorted.
//
// [Normalize] is the single tolerant boundary of the engine. It accepts the
// loosely-shaped decoded JSON and never fails:
//
//   - missing or non-array tables become empty slices
//   - counts are coerced to non-negative integers (non-numeric or negative become 0)
//   - entries without a usable name are dropped
//   - entries without a category get the empty category
//
// Everything downstream of Normalize (filtering, sorting, layout, colors) is
// total and deterministic.
//
// # List Operations
//
//   - [Categories]: unique categories in first-seen order, led by [All]
//   - [FilterByCategory]: the entries of one category, or all entries for [All]
//   - [SortedByCountDesc]: stable count-descending order for list display
//   - [BarFraction]: relative bar width for list views
//
// # Usage
//
//	snap, err := distribution.Parse(body)
//	if err != nil {
//	    return err
//	}
//	skills := distribution.FilterByCategory(snap.Skills, "Design")
//	for _, e := range distribution.SortedByCountDesc(skills) {
//	    fmt.Println(e.Name, e.Label(distribution.UnitTalents))
//	}
package distribution
