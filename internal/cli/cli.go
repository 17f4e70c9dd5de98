package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/talentmap/internal/config"
	"github.com/matzehuels/talentmap/pkg/buildinfo"
	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/integrations/talentmap"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "talentmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Talentmap draws the talent pool as category-colored bubbles",
		Long:         `Talentmap fetches the aggregated skill and language distribution of the platform and draws it as a ring of bubbles sized by headcount and colored by skill category.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), commandLogger(c.Logger, cmd.Name())))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/talentmap/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Snapshot Sources
// =============================================================================

// sourceOpts selects where the snapshot comes from.
type sourceOpts struct {
	input   string // saved API response; empty means the live API
	refresh bool   // bypass the snapshot cache
	noCache bool   // disable caching entirely
}

func addSourceFlags(cmd *cobra.Command, so *sourceOpts) {
	cmd.Flags().StringVarP(&so.input, "input", "i", "", "read the snapshot from a saved talent-map JSON file instead of the API")
	cmd.Flags().BoolVar(&so.refresh, "refresh", false, "bypass the snapshot cache")
	cmd.Flags().BoolVar(&so.noCache, "no-cache", false, "disable caching")
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(so sourceOpts) (*pipeline.Runner, error) {
	backend, err := newCache(so.noCache)
	if err != nil {
		return nil, err
	}
	backend = cache.WithHooks(backend)

	src, err := c.newSource(backend, so)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return pipeline.NewRunner(src, backend, nil, c.Logger), nil
}

func (c *CLI) newSource(backend cache.Cache, so sourceOpts) (pipeline.Source, error) {
	if so.input != "" {
		return loadSnapshotFile(so.input)
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}
	return talentmap.NewClient(backend, opts), nil
}

// loadSnapshotFile reads a saved API response.
func loadSnapshotFile(path string) (pipeline.StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.StaticSource{}, fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := distribution.Parse(data)
	if err != nil {
		return pipeline.StaticSource{}, fmt.Errorf("%s: %w", path, err)
	}
	return pipeline.StaticSource(snap), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory (~/.cache/talentmap on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts, err := cfg.PipelineOptions()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Logger = c.Logger
	return opts, nil
}

// allLabel returns the configured display name of the "all" category.
func (c *CLI) allLabel() string {
	if cfg, err := c.config(); err == nil && cfg.Layout.AllLabel != "" {
		return cfg.Layout.AllLabel
	}
	return "All"
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
