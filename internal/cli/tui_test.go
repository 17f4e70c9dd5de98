package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

func press(m BrowseModel, keys ...string) BrowseModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(BrowseModel)
	}
	return m
}

func TestBrowseModelCategories(t *testing.T) {
	m := NewBrowseModel(testSnapshot(t), palette.Default(), "All")

	if got := m.Category(); got != distribution.All {
		t.Fatalf("initial category = %q, want all", got)
	}
	m = press(m, "right")
	if got := m.Category(); got != "Technique" {
		t.Errorf("after right = %q, want Technique", got)
	}
	m = press(m, "left", "left")
	cats := distribution.Categories(m.Snapshot.Skills)
	if got := m.Category(); got != cats[len(cats)-1] {
		t.Errorf("left wraps to %q, want %q", got, cats[len(cats)-1])
	}
}

func TestBrowseModelFilteredRows(t *testing.T) {
	m := NewBrowseModel(testSnapshot(t), palette.Default(), "All")
	for m.Category() != "Design" {
		m = press(m, "right")
	}
	rows := m.Rows()
	if len(rows) != 1 || rows[0].Name != "Figma" || rows[0].Fraction != 0.5 {
		t.Errorf("Design rows = %+v", rows)
	}
}

func TestBrowseModelDatasetToggle(t *testing.T) {
	m := NewBrowseModel(testSnapshot(t), palette.Default(), "All")
	m = press(m, "right", "tab")

	if m.Dataset != pipeline.DatasetLanguages || m.Category() != distribution.All {
		t.Fatalf("after tab = %s/%s, want languages/all", m.Dataset, m.Category())
	}
	if rows := m.Rows(); len(rows) != 2 || rows[0].Name != "English" {
		t.Errorf("language rows = %+v", rows)
	}
	m = press(m, "right")
	if m.Category() != distribution.All {
		t.Error("languages only offer the all category")
	}
}

func TestBrowseModelSelect(t *testing.T) {
	m := NewBrowseModel(testSnapshot(t), palette.Default(), "All")
	m = press(m, "right", "enter")
	if m.Selected == nil {
		t.Fatal("enter should select")
	}
	if *m.Selected != (BrowseSelection{Dataset: "skills", Category: "Technique"}) {
		t.Errorf("Selected = %+v", *m.Selected)
	}

	q := press(NewBrowseModel(testSnapshot(t), palette.Default(), "All"), "q")
	if q.Selected != nil {
		t.Error("quit should not select")
	}
}

func TestBrowseModelView(t *testing.T) {
	m := NewBrowseModel(testSnapshot(t), palette.Default(), "Everyone")
	view := m.View()
	for _, want := range []string{"Talent Map", "12 users", "Everyone", "Go", "8 talents"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBrowseModelScrollBounded(t *testing.T) {
	m := NewBrowseModel(testSnapshot(t), palette.Default(), "All")
	m = press(m, "down", "down")
	if m.Offset != 0 {
		t.Errorf("offset = %d, want 0 when all rows fit", m.Offset)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{0.01, "█░░░"},
		{2, "████"},
	}
	for _, tt := range tests {
		if got := bar(tt.fraction, 4); got != tt.want {
			t.Errorf("bar(%v, 4) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}

func TestBarColorBlendsOverBackground(t *testing.T) {
	p, err := palette.FromHex(map[string]string{"Data": "#0000ff"}, "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		category string
		want     string
	}{
		{"Data", "#3333ff"},
		{"Unknown", "#ff3333"},
	}
	for _, tt := range tests {
		if got := string(barColor(p, tt.category, lightTerminal)); got != tt.want {
			t.Errorf("barColor(%q) = %s, want %s", tt.category, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
