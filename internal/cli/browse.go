package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/talentmap/pkg/distribution"
)

// browseCommand opens the interactive category browser and renders the
// selection.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		so      sourceOpts
		output  string
		formats string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse categories interactively and render the one you pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), so, output, formats)
		},
	}

	addSourceFlags(cmd, &so)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s) for the selection (default svg)")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, so sourceOpts, output, formats string) error {
	opts, err := c.baseOptions()
	if err != nil {
		return err
	}
	opts.Formats = parseFormats(formats)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(so)
	if err != nil {
		return err
	}
	defer runner.Close()

	snap, err := withSpinner(ctx, "Fetching talent map...", func(ctx context.Context) (distribution.Snapshot, error) {
		return runner.Fetch(ctx, so.refresh)
	})
	if err != nil {
		return err
	}
	if snap.IsEmpty() {
		printWarning("The talent map is empty")
		return nil
	}

	final, err := tea.NewProgram(NewBrowseModel(snap, *opts.Palette, c.allLabel()), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	sel := final.(BrowseModel).Selected
	if sel == nil {
		return nil
	}

	pick := opts.Copy()
	pick.Dataset = sel.Dataset
	pick.Category = sel.Category
	result, err := runner.ExecuteSnapshot(ctx, snap, pick)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(result.Artifacts, pick.Formats, output, pick.Dataset, pick.Category)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", distribution.CategoryLabel(pick.Category, c.allLabel()))
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(result.Bubbles), pick.Unit(), result.CacheInfo.RenderHit)
	return nil
}
