// Package pipeline runs the talent map end to end.
//
// This package implements the fetch → filter → layout → render pipeline
// used by the CLI and the HTTP server. By centralizing it, both entry
// points produce identical maps for identical inputs.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: load the snapshot from a [Source] (cached by the source)
//  2. Filter: pick the dataset (skills or languages) and category
//  3. Layout: place one bubble per entry with [bubble.Compute]
//  4. Render: produce each requested format (SVG, JSON, PNG, PDF, DOT)
//
// Layouts are never cached; they are cheap and pure. Rendered artifacts are
// cached by a hash of the snapshot and every option that changes the bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, backend, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Category: "Design",
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// [bubble.Compute]: github.com/matzehuels/talentmap/pkg/bubble.Compute
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/errors"
	"github.com/matzehuels/talentmap/pkg/palette"
)

// Defaults shared by the CLI and the server.
const (
	DefaultWidth   = 1000.0
	DefaultHeight  = 600.0
	DefaultDataset = DatasetSkills
)

// Datasets of a snapshot that can be mapped.
const (
	DatasetSkills    = "skills"
	DatasetLanguages = "languages"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Dataset  string `json:"dataset,omitempty"`
	Category string `json:"category,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Zero sizes take the package defaults. A set MinRadius must be positive.
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	MinRadius     float64 `json:"min_radius,omitempty"`
	MaxRadiusSpan float64 `json:"max_radius_span,omitempty"`

	Formats    []string `json:"formats,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`

	// Runtime options (not serialized)
	Palette *palette.Palette `json:"-"`
	// Logger receives this run's log lines; nil means the runner's logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	Snapshot     distribution.Snapshot
	SnapshotHash string

	// Categories lists the filter choices of the skills dataset, "all" first.
	Categories []string

	// Entries is the filtered dataset in snapshot order.
	Entries []distribution.Entry

	// Bubbles holds one bubble per entry, in the same order.
	Bubbles []bubble.Bubble

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entries    int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDataset checks that a dataset name is valid.
func ValidateDataset(dataset string) error {
	if dataset != DatasetSkills && dataset != DatasetLanguages {
		return errors.New(errors.ErrCodeInvalidInput, "invalid dataset: %q (must be one of: skills, languages)", dataset)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if err := ValidateDataset(o.Dataset); err != nil {
		return err
	}
	if err := errors.ValidateCategory(o.Category); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateRadii(o.MinRadius, o.MaxRadiusSpan); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills every unset field.
func (o *Options) SetDefaults() {
	if o.Dataset == "" {
		o.Dataset = DefaultDataset
	}
	o.Dataset = strings.ToLower(o.Dataset)
	if o.Category == "" {
		o.Category = distribution.All
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinRadius == 0 {
		o.MinRadius = bubble.DefaultMinRadius
	}
	if o.MaxRadiusSpan == 0 {
		o.MaxRadiusSpan = bubble.DefaultMaxRadiusSpan
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = slices.Compact(slices.Sorted(slices.Values(o.Formats)))
	if o.Palette == nil {
		p := palette.Default()
		o.Palette = &p
	}
}

// Copy returns an unvalidated copy that shares no slices with o, so callers
// can override fields of a validated template.
func (o Options) Copy() Options {
	o.Formats = slices.Clone(o.Formats)
	o.validated = false
	return o
}

// Unit returns the count label unit of the selected dataset.
func (o *Options) Unit() string {
	if o.Dataset == DatasetLanguages {
		return distribution.UnitPeople
	}
	return distribution.UnitTalents
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Category:      o.Category,
		Dataset:       o.Dataset,
		Width:         o.Width,
		Height:        o.Height,
		MinRadius:     o.MinRadius,
		MaxRadiusSpan: o.MaxRadiusSpan,
		Palette:       o.Palette.Fingerprint(),
		Title:         o.Title,
		Background:    o.Background,
		Format:        format,
	}
}
