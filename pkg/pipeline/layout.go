package pipeline

import (
	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/distribution"
)

// Select returns the entries of the chosen dataset, filtered by category.
// Languages carry no category, so any filter other than "all" leaves the
// languages dataset empty.
func Select(snap distribution.Snapshot, opts Options) []distribution.Entry {
	entries := snap.Skills
	if opts.Dataset == DatasetLanguages {
		entries = snap.Languages
	}
	category := opts.Category
	if category == "" {
		category = distribution.All
	}
	return distribution.FilterByCategory(entries, category)
}

// GenerateLayout places one bubble per entry on the options' surface.
func GenerateLayout(entries []distribution.Entry, opts Options) []bubble.Bubble {
	return bubble.Compute(entries, opts.Width, opts.Height,
		bubble.WithMinRadius(opts.MinRadius),
		bubble.WithMaxRadiusSpan(opts.MaxRadiusSpan),
	)
}
