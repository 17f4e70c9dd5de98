package distribution

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/talentmap/pkg/errors"
)

func TestParse(t *testing.T) {
	body := []byte(`{
		"total_users": 6,
		"total_skills": 16,
		"total_languages": 5,
		"total_projects": 3,
		"verified_users_count": 1,
		"skills_distribution": [
			{"name": "Python", "category": "Technique", "count": 2},
			{"name": "Figma", "category": "Design", "count": 1}
		],
		"languages_distribution": [
			{"name": "Français", "count": 5},
			{"name": "English", "count": 5}
		]
	}`)

	snap, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if snap.TotalUsers != 6 || snap.TotalSkills != 16 || snap.TotalLanguages != 5 {
		t.Errorf("totals = %d/%d/%d, want 6/16/5", snap.TotalUsers, snap.TotalSkills, snap.TotalLanguages)
	}
	if snap.TotalProjects != 3 || snap.VerifiedUsers != 1 {
		t.Errorf("projects/verified = %d/%d, want 3/1", snap.TotalProjects, snap.VerifiedUsers)
	}
	want := []Entry{{"Python", "Technique", 2}, {"Figma", "Design", 1}}
	if !equalEntries(snap.Skills, want) {
		t.Errorf("Skills = %v, want %v", snap.Skills, want)
	}
	if len(snap.Languages) != 2 || snap.Languages[0].Name != "Français" {
		t.Errorf("Languages = %v", snap.Languages)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	snap, err := Parse([]byte(`{not json`))
	if err == nil {
		t.Fatal("Parse() should fail on malformed JSON")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if snap.Skills == nil || snap.Languages == nil {
		t.Error("tables should be empty, not nil")
	}
}

func TestParseNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `42`, `"text"`, `null`} {
		snap, err := Parse([]byte(body))
		if err != nil {
			t.Errorf("Parse(%s) error: %v", body, err)
		}
		if !snap.IsEmpty() {
			t.Errorf("Parse(%s) should produce an empty snapshot", body)
		}
	}
}

func TestNormalizeMissingTables(t *testing.T) {
	snap := Normalize(map[string]any{"total_users": float64(3)})
	if snap.Skills == nil || len(snap.Skills) != 0 {
		t.Errorf("Skills = %#v, want empty slice", snap.Skills)
	}
	if snap.Languages == nil || len(snap.Languages) != 0 {
		t.Errorf("Languages = %#v, want empty slice", snap.Languages)
	}
	if snap.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", snap.TotalUsers)
	}
}

func TestNormalizeEntries(t *testing.T) {
	raw := map[string]any{
		"skills_distribution": []any{
			map[string]any{"name": "Python", "category": "Technique", "count": float64(4)},
			map[string]any{"name": "NoCount", "category": "Design"},
			map[string]any{"name": "Negative", "category": "Design", "count": float64(-3)},
			map[string]any{"name": "Text", "category": "Design", "count": "many"},
			map[string]any{"name": "Numeric", "category": "Design", "count": " 7 "},
			map[string]any{"name": "Fraction", "count": 2.9},
			map[string]any{"category": "Design", "count": float64(9)},
			map[string]any{"name": "", "count": float64(9)},
			map[string]any{"name": 12, "count": float64(9)},
			"not an object",
		},
		"languages_distribution": []any{
			map[string]any{"name": "English", "category": "ignored", "count": json.Number("5")},
		},
	}

	snap := Normalize(raw)

	want := []Entry{
		{"Python", "Technique", 4},
		{"NoCount", "Design", 0},
		{"Negative", "Design", 0},
		{"Text", "Design", 0},
		{"Numeric", "Design", 7},
		{"Fraction", "", 2},
	}
	if !equalEntries(snap.Skills, want) {
		t.Errorf("Skills = %v, want %v", snap.Skills, want)
	}
	if len(snap.Languages) != 1 || snap.Languages[0] != (Entry{Name: "English", Count: 5}) {
		t.Errorf("Languages = %v, want [{English  5}]", snap.Languages)
	}
}

func TestNormalizeNonArrayTables(t *testing.T) {
	snap := Normalize(map[string]any{
		"skills_distribution":    "oops",
		"languages_distribution": map[string]any{"name": "English"},
	})
	if len(snap.Skills) != 0 || len(snap.Languages) != 0 {
		t.Errorf("non-array tables should normalize to empty, got %v / %v", snap.Skills, snap.Languages)
	}
}

func TestNormalizeSnapshotValue(t *testing.T) {
	in := Snapshot{
		TotalUsers: -1,
		Skills:     []Entry{{"A", "X", -5}, {"", "X", 3}, {"B", "Y", 2}},
		Languages:  []Entry{{"English", "stray", 1}},
	}
	snap := Normalize(&in)
	if snap.TotalUsers != 0 {
		t.Errorf("TotalUsers = %d, want 0", snap.TotalUsers)
	}
	want := []Entry{{"A", "X", 0}, {"B", "Y", 2}}
	if !equalEntries(snap.Skills, want) {
		t.Errorf("Skills = %v, want %v", snap.Skills, want)
	}
	if snap.Languages[0].Category != "" {
		t.Errorf("language category should be dropped, got %q", snap.Languages[0].Category)
	}
}

func TestNormalizeUnknownInput(t *testing.T) {
	for _, raw := range []any{nil, 42, "x", []any{}, (*Snapshot)(nil)} {
		snap := Normalize(raw)
		if snap.Skills == nil || snap.Languages == nil || !snap.IsEmpty() {
			t.Errorf("Normalize(%#v) = %#v, want empty snapshot", raw, snap)
		}
	}
}

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"float", float64(12), 12},
		{"fraction truncates", 3.7, 3},
		{"negative", float64(-1), 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), math.MaxInt},
		{"negative infinity", math.Inf(-1), 0},
		{"int", 5, 5},
		{"negative int", -5, 0},
		{"int64", int64(8), 8},
		{"json integer", json.Number("42"), 42},
		{"json fraction", json.Number("4.5"), 4},
		{"json negative", json.Number("-4"), 0},
		{"numeric string", "10", 10},
		{"non-numeric string", "ten", 0},
		{"bool", true, 0},
		{"object", map[string]any{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceCount(tt.in); got != tt.want {
				t.Errorf("coerceCount(%#v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := Snapshot{
		TotalUsers: 2,
		Skills:     []Entry{{"Go", "Technique", 2}},
		Languages:  []Entry{{"English", "", 2}},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if out.TotalUsers != 2 || !equalEntries(out.Skills, in.Skills) || !equalEntries(out.Languages, in.Languages) {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func equalEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
