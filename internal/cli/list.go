package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

const listBarWidth = 24

// listCommand prints a dataset ranked by count.
func (c *CLI) listCommand() *cobra.Command {
	var (
		so       sourceOpts
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:       "list [skills|languages]",
		Short:     "Print skills or languages ranked by headcount",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{pipeline.DatasetSkills, pipeline.DatasetLanguages},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := pipeline.DatasetSkills
			if len(args) == 1 {
				dataset = args[0]
			}
			return c.runList(cmd.Context(), cmd.OutOrStdout(), so, dataset, category, limit)
		},
	}

	addSourceFlags(cmd, &so)
	cmd.Flags().StringVarP(&category, "category", "c", distribution.All, "category filter (skills only)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n rows (0 = all)")
	return cmd
}

func (c *CLI) runList(ctx context.Context, w io.Writer, so sourceOpts, dataset, category string, limit int) error {
	opts, err := c.baseOptions()
	if err != nil {
		return err
	}
	opts.Dataset = dataset
	opts.Category = category
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	snap, err := c.fetch(ctx, so)
	if err != nil {
		return err
	}

	scale := snap.Skills
	if dataset == pipeline.DatasetLanguages {
		scale = snap.Languages
	}
	rows := distribution.Rows(pipeline.Select(snap, opts), scale)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s · %s", dataset, distribution.CategoryLabel(opts.Category, c.allLabel()))))
	if len(rows) == 0 {
		fmt.Fprintln(w, StyleDim.Render("  nothing to show"))
		return nil
	}
	fmt.Fprintln(w, renderRows(rows, 1, *opts.Palette, opts.Unit(), dataset == pipeline.DatasetSkills))
	return nil
}

// fetch loads the snapshot behind a spinner.
func (c *CLI) fetch(ctx context.Context, so sourceOpts) (distribution.Snapshot, error) {
	runner, err := c.newRunner(so)
	if err != nil {
		return distribution.Snapshot{}, err
	}
	defer runner.Close()

	return withSpinner(ctx, "Fetching talent map...", func(ctx context.Context) (distribution.Snapshot, error) {
		return runner.Fetch(ctx, so.refresh)
	})
}

// renderRows renders ranked rows as a table with category swatches and
// count bars colored by category. first is the rank of rows[0].
func renderRows(rows []distribution.Row, first int, p palette.Palette, unit string, withCategory bool) string {
	headers := []string{"#", "Name", "Count", ""}
	if withCategory {
		headers = []string{"#", "Name", "Category", "Count", ""}
	}

	bg := terminalBackground()
	data := make([][]string, len(rows))
	for i, r := range rows {
		line := []string{strconv.Itoa(first + i), r.Name}
		if withCategory {
			line = append(line, swatch(p, r.Category))
		}
		line = append(line, r.Label(unit), lipgloss.NewStyle().Foreground(barColor(p, r.Category, bg)).Render(bar(r.Fraction, listBarWidth)))
		data[i] = line
	}

	countCol := len(headers) - 2
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleDim
			case col == countCol:
				return StyleNumber.Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// categoriesCommand prints the category filter choices.
func (c *CLI) categoriesCommand() *cobra.Command {
	var so sourceOpts

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the skill categories available as filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			opts.SetDefaults()
			snap, err := c.fetch(cmd.Context(), so)
			if err != nil {
				return err
			}
			printCategories(cmd.OutOrStdout(), snap, *opts.Palette, c.allLabel())
			return nil
		},
	}
	addSourceFlags(cmd, &so)
	return cmd
}

func printCategories(w io.Writer, snap distribution.Snapshot, p palette.Palette, allLabel string) {
	for _, cat := range distribution.Categories(snap.Skills) {
		n := len(distribution.FilterByCategory(snap.Skills, cat))
		label := distribution.CategoryLabel(cat, allLabel)
		if cat == distribution.All {
			printKeyValue(w, label, fmt.Sprintf("%d skills", n))
			continue
		}
		printKeyValue(w, label, fmt.Sprintf("%s %d skills", categoryStyle(p, cat).Render(iconSwatch), n))
	}
}
