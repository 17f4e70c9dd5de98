package distribution

import (
	"cmp"
	"slices"
)

// All is the synthetic category that selects every entry.
const All = "all"

// Categories returns the unique categories of entries in first-seen order,
// preceded by [All]. Uniqueness is exact string equality, so "Design" and
// "design" are distinct categories. The empty category is kept if present.
func Categories(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries)+1)
	out = append(out, All)
	for _, e := range entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}

// FilterByCategory returns the entries whose category equals selected,
// preserving their relative order. For [All] the input slice itself is
// returned unchanged.
func FilterByCategory(entries []Entry, selected string) []Entry {
	if selected == All {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == selected {
			out = append(out, e)
		}
	}
	return out
}

// SortedByCountDesc returns a copy of entries ordered by count, highest
// first. The sort is stable: entries with equal counts keep their input
// order. The input slice is not modified.
func SortedByCountDesc(entries []Entry) []Entry {
	out := slices.Clone(entries)
	if out == nil {
		out = []Entry{}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// MaxCount returns the largest count in entries, or 0 if there are none.
func MaxCount(entries []Entry) int {
	m := 0
	for _, e := range entries {
		m = max(m, e.Count)
	}
	return m
}

// BarFraction returns e's count relative to the largest count in scale, in
// [0, 1]. List views pass the unfiltered table as scale so bar widths stay
// comparable across category selections. A zero maximum yields 0.
func BarFraction(e Entry, scale []Entry) float64 {
	m := MaxCount(scale)
	if m == 0 {
		return 0
	}
	return min(float64(e.Count)/float64(m), 1)
}

// CategoryLabel returns the display name of a category, substituting
// allLabel for [All].
func CategoryLabel(category, allLabel string) string {
	if category == All {
		return allLabel
	}
	return category
}

// Row is one line of a ranked list view.
type Row struct {
	Entry
	Fraction float64 `json:"fraction"`
}

// Rows ranks entries by count (see [SortedByCountDesc]) and attaches each
// entry's [BarFraction] against scale.
func Rows(entries, scale []Entry) []Row {
	sorted := SortedByCountDesc(entries)
	rows := make([]Row, len(sorted))
	for i, e := range sorted {
		rows[i] = Row{Entry: e, Fraction: BarFraction(e, scale)}
	}
	return rows
}
