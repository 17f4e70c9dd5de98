package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source     sourceOpts
	output     string  // output file (single format) or base path
	formats    string  // comma-separated formats
	dataset    string  // skills or languages
	category   string  // category filter; "all" keeps everything
	width      float64 // canvas width, 0 means config
	height     float64 // canvas height, 0 means config
	title      string
	background string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the talent map to SVG, PNG, PDF, JSON or DOT",
		Example: `  talentmap render
  talentmap render -c Design -f svg,png -o design
  talentmap render -d languages -i snapshot.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &opts)
		},
	}

	addSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", pipeline.DatasetSkills, "dataset: skills or languages")
	cmd.Flags().StringVarP(&opts.category, "category", "c", distribution.All, "category filter")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config, 1000)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config, 600)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title, stored as SVG <title> metadata (SVG/PDF)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (SVG/PDF), e.g. #111827")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	pipeOpts, err := c.baseOptions()
	if err != nil {
		return err
	}
	pipeOpts.Dataset = opts.dataset
	pipeOpts.Category = opts.category
	pipeOpts.Refresh = opts.source.refresh
	pipeOpts.Formats = parseFormats(opts.formats)
	pipeOpts.Title = opts.title
	pipeOpts.Background = opts.background
	if opts.width > 0 {
		pipeOpts.Width = opts.width
	}
	if opts.height > 0 {
		pipeOpts.Height = opts.height
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.source)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	pipeOpts.Logger = logger
	prog := newProgress(logger)
	result, err := withSpinner(ctx, "Drawing talent map...", func(ctx context.Context) (*pipeline.Result, error) {
		return runner.Execute(ctx, pipeOpts)
	})
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, pipeOpts.Formats, opts.output, pipeOpts.Dataset, pipeOpts.Category)
	if err != nil {
		return err
	}
	prog.done("rendered talent map", "files", len(paths), "bubbles", len(result.Bubbles), "run", result.ID)

	if len(result.Bubbles) == 0 {
		printWarning("No %s match category %q", pipeOpts.Dataset, pipeOpts.Category)
	}
	printSuccess("Rendered %s", distribution.CategoryLabel(pipeOpts.Category, c.allLabel()))
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(result.Bubbles), pipeOpts.Unit(), result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format with an explicit output is written to exactly that path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, dataset, category string) ([]string, error) {
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := basePath(output, dataset, category)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// basePath derives the output path without extension. Without an explicit
// output it is "talentmap", plus the dataset and category when they narrow
// the map, e.g. "talentmap-soft-skills".
func basePath(output, dataset, category string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	parts := []string{appName}
	if dataset == pipeline.DatasetLanguages {
		parts = append(parts, dataset)
	}
	if category != "" && category != distribution.All {
		if slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(category), "-"), "-"); slug != "" {
			parts = append(parts, slug)
		}
	}
	return strings.Join(parts, "-")
}
