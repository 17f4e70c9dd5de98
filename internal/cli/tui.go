package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

var (
	tabSelectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabNormalStyle   = lipgloss.NewStyle().Foreground(colorGray)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive category selection
// =============================================================================

// BrowseSelection is the dataset and category picked in the browser.
type BrowseSelection struct {
	Dataset  string
	Category string
}

// BrowseModel is the bubbletea model for browsing the snapshot by category.
type BrowseModel struct {
	Snapshot distribution.Snapshot
	Palette  palette.Palette
	AllLabel string

	Dataset  string
	Cursor   int // index into categories()
	Offset   int // first visible row
	Height   int // visible rows
	Selected *BrowseSelection
}

// NewBrowseModel creates a browser over snap showing all skills.
func NewBrowseModel(snap distribution.Snapshot, p palette.Palette, allLabel string) BrowseModel {
	return BrowseModel{
		Snapshot: snap,
		Palette:  p,
		AllLabel: allLabel,
		Dataset:  pipeline.DatasetSkills,
		Height:   15,
	}
}

// categories lists the filter choices of the current dataset. Languages
// carry no categories, so only "all" is offered for them.
func (m BrowseModel) categories() []string {
	if m.Dataset == pipeline.DatasetLanguages {
		return []string{distribution.All}
	}
	return distribution.Categories(m.Snapshot.Skills)
}

// Category returns the category under the cursor.
func (m BrowseModel) Category() string {
	cats := m.categories()
	if m.Cursor >= len(cats) {
		return distribution.All
	}
	return cats[m.Cursor]
}

// Rows returns the ranked rows of the current selection.
func (m BrowseModel) Rows() []distribution.Row {
	opts := pipeline.Options{Dataset: m.Dataset, Category: m.Category()}
	scale := m.Snapshot.Skills
	if m.Dataset == pipeline.DatasetLanguages {
		scale = m.Snapshot.Languages
	}
	return distribution.Rows(pipeline.Select(m.Snapshot, opts), scale)
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			n := len(m.categories())
			m.Cursor = (m.Cursor - 1 + n) % n
			m.Offset = 0
		case "right", "l":
			m.Cursor = (m.Cursor + 1) % len(m.categories())
			m.Offset = 0
		case "tab":
			if m.Dataset == pipeline.DatasetSkills {
				m.Dataset = pipeline.DatasetLanguages
			} else {
				m.Dataset = pipeline.DatasetSkills
			}
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			if m.Offset+m.Height < len(m.Rows()) {
				m.Offset++
			}
		case "enter":
			m.Selected = &BrowseSelection{Dataset: m.Dataset, Category: m.Category()}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Talent Map"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d users · %d verified · %d projects",
		m.Snapshot.TotalUsers, m.Snapshot.VerifiedUsers, m.Snapshot.TotalProjects)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ category  tab skills/languages  ↑/↓ scroll  ⏎ render  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(m.categories()))
	for i, cat := range m.categories() {
		label := distribution.CategoryLabel(cat, m.AllLabel)
		if i == m.Cursor {
			style := tabSelectedStyle
			if cat != distribution.All {
				style = style.Foreground(lipgloss.Color(m.Palette.ColorFor(cat, 1).Hex()))
			}
			tabs = append(tabs, style.Render(label))
		} else {
			tabs = append(tabs, tabNormalStyle.Render(label))
		}
	}
	b.WriteString(StyleHighlight.Render(m.Dataset) + "  " + strings.Join(tabs, "  "))
	b.WriteString("\n")

	rows := m.Rows()
	if len(rows) == 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  nothing in this category"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(rows))
	unit := distribution.UnitTalents
	if m.Dataset == pipeline.DatasetLanguages {
		unit = distribution.UnitPeople
	}
	b.WriteString(renderRows(rows[m.Offset:end], m.Offset+1, m.Palette, unit, m.Dataset == pipeline.DatasetSkills))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(rows))))

	return b.String()
}
