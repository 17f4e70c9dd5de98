package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/distribution"
	tmerrors "github.com/matzehuels/talentmap/pkg/errors"
	"github.com/matzehuels/talentmap/pkg/palette"
)

func sampleSnapshot() distribution.Snapshot {
	return distribution.Snapshot{
		TotalUsers:  5,
		TotalSkills: 4,
		Skills: []distribution.Entry{
			{Name: "Go", Category: "Technique", Count: 10},
			{Name: "Figma", Category: "Design", Count: 4},
			{Name: "Scrum", Category: "Management", Count: 6},
			{Name: "Rust", Category: "Technique", Count: 2},
		},
		Languages: []distribution.Entry{
			{Name: "French", Count: 5},
			{Name: "English", Count: 3},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "pdf", "json", "dot"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "SVG", "gif"} {
		if err := ValidateFormat(f); !tmerrors.Is(err, tmerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Dataset != DatasetSkills || opts.Category != distribution.All {
		t.Errorf("dataset/category = %q/%q", opts.Dataset, opts.Category)
	}
	if opts.Width != 1000 || opts.Height != 600 {
		t.Errorf("size = %vx%v", opts.Width, opts.Height)
	}
	if opts.MinRadius != 20 || opts.MaxRadiusSpan != 80 {
		t.Errorf("radii = %v/%v", opts.MinRadius, opts.MaxRadiusSpan)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v", opts.Formats)
	}
	if opts.Palette == nil {
		t.Error("palette not defaulted")
	}
}

func TestOptionsFormatsDeduplicated(t *testing.T) {
	formats := []string{"svg", "json", "svg"}
	opts := Options{Formats: formats}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "json" || opts.Formats[1] != "svg" {
		t.Errorf("formats = %v", opts.Formats)
	}
	if formats[0] != "svg" {
		t.Error("caller's slice was modified")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code tmerrors.Code
	}{
		{"bad dataset", Options{Dataset: "projects"}, tmerrors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, tmerrors.ErrCodeInvalidFormat},
		{"negative width", Options{Width: -1}, tmerrors.ErrCodeInvalidDimensions},
		{"negative radius", Options{MinRadius: -5}, tmerrors.ErrCodeInvalidDimensions},
		{"control char category", Options{Category: "a\nb"}, tmerrors.ErrCodeInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !tmerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	snap := sampleSnapshot()
	tests := []struct {
		dataset, category string
		want              []string
	}{
		{DatasetSkills, distribution.All, []string{"Go", "Figma", "Scrum", "Rust"}},
		{DatasetSkills, "Technique", []string{"Go", "Rust"}},
		{DatasetSkills, "Marketing", nil},
		{DatasetLanguages, distribution.All, []string{"French", "English"}},
		{DatasetLanguages, "Technique", nil},
	}
	for _, tt := range tests {
		got := Select(snap, Options{Dataset: tt.dataset, Category: tt.category})
		if len(got) != len(tt.want) {
			t.Errorf("Select(%s, %s) = %v", tt.dataset, tt.category, got)
			continue
		}
		for i := range got {
			if got[i].Name != tt.want[i] {
				t.Errorf("Select(%s, %s)[%d] = %s, want %s", tt.dataset, tt.category, i, got[i].Name, tt.want[i])
			}
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(StaticSource(sampleSnapshot()), nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{
		Category: "Technique",
		Formats:  []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.ID == "" {
		t.Error("missing run ID")
	}
	if len(result.Bubbles) != 2 || result.Bubbles[0].Entry.Name != "Go" {
		t.Fatalf("bubbles = %+v", result.Bubbles)
	}
	if result.Bubbles[0].Radius != 80 || result.Bubbles[1].Radius != 20 {
		t.Errorf("radii = %v, %v", result.Bubbles[0].Radius, result.Bubbles[1].Radius)
	}
	want := []string{"all", "Technique", "Design", "Management"}
	if len(result.Categories) != len(want) {
		t.Fatalf("categories = %v", result.Categories)
	}
	for i := range want {
		if result.Categories[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, result.Categories[i], want[i])
		}
	}

	if !bytes.Contains(result.Artifacts[FormatSVG], []byte(">10 talents</text>")) {
		t.Error("SVG missing count label")
	}
	if !bytes.Contains(result.Artifacts[FormatDOT], []byte("graph talentmap")) {
		t.Error("DOT artifact malformed")
	}
	var doc struct {
		Category string `json:"category"`
		Bubbles  []any  `json:"bubbles"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("JSON artifact: %v", err)
	}
	if doc.Category != "Technique" || len(doc.Bubbles) != 2 {
		t.Errorf("JSON artifact = %+v", doc)
	}
}

func TestExecuteLogsToRunLogger(t *testing.T) {
	var runnerOut, runOut bytes.Buffer
	r := NewRunner(StaticSource(sampleSnapshot()), nil, nil, log.New(&runnerOut))
	result, err := r.Execute(context.Background(), Options{Logger: log.New(&runOut)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"computed layout", "rendered outputs", result.ID} {
		if !strings.Contains(runOut.String(), want) {
			t.Errorf("run log missing %q:\n%s", want, runOut.String())
		}
	}
	if strings.Contains(runnerOut.String(), "computed layout") {
		t.Error("run lines leaked into the runner logger")
	}
	if !strings.Contains(runnerOut.String(), "fetched snapshot") {
		t.Error("runner logger should still record the fetch")
	}
}

func TestExecuteLanguagesUnit(t *testing.T) {
	r := NewRunner(StaticSource(sampleSnapshot()), nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{Dataset: DatasetLanguages})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte(">5 people</text>")) {
		t.Error("languages map should count people")
	}
}

func TestExecuteEmptyCategory(t *testing.T) {
	r := NewRunner(StaticSource(sampleSnapshot()), nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{Category: "Marketing"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Bubbles) != 0 {
		t.Errorf("bubbles = %v, want none", result.Bubbles)
	}
	if bytes.Contains(result.Artifacts[FormatSVG], []byte("<circle")) {
		t.Error("empty layout rendered circles")
	}
}

func TestExecuteArtifactCache(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(StaticSource(sampleSnapshot()), backend, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run reported a cache hit")
	}
	second, err := r.Execute(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs")
	}

	p := palette.New(map[string]palette.RGB{"Technique": palette.Green}, palette.Neutral)
	third, err := r.Execute(ctx, Options{Palette: &p})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("palette change served a stale artifact")
	}
}

type failingSource struct{ err error }

func (s failingSource) FetchSnapshot(context.Context, bool) (distribution.Snapshot, error) {
	return distribution.Snapshot{}, s.err
}

func TestExecuteFetchError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRunner(failingSource{boom}, nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}

	r = NewRunner(nil, nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("Execute without source should fail")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{}
	a.SetDefaults()
	b := a
	b.Category = "Design"
	k := cache.NewDefaultKeyer()
	if k.ArtifactKey("h", a.ArtifactKeyOpts("svg")) == k.ArtifactKey("h", b.ArtifactKeyOpts("svg")) {
		t.Error("category not part of artifact key")
	}
}

func TestOptionsCopy(t *testing.T) {
	base := Options{Formats: []string{FormatSVG}}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	c := base.Copy()
	c.Width = -1
	c.Formats[0] = FormatPNG
	if base.Formats[0] != FormatSVG {
		t.Error("Copy shares the Formats slice")
	}
	if err := c.ValidateAndSetDefaults(); !tmerrors.Is(err, tmerrors.ErrCodeInvalidDimensions) {
		t.Errorf("copy of validated options skipped validation: %v", err)
	}
}
