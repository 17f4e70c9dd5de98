// Package config loads talentmap settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, TALENTMAP_*
// environment variables, command-line flags (applied by the CLI).
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/talentmap/pkg/bubble"
	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/errors"
	"github.com/matzehuels/talentmap/pkg/integrations/talentmap"
	"github.com/matzehuels/talentmap/pkg/palette"
	"github.com/matzehuels/talentmap/pkg/pipeline"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvAPIURL    = "TALENTMAP_API_URL"
	EnvToken     = "TALENTMAP_TOKEN"
	EnvRedisAddr = "TALENTMAP_REDIS_ADDR"
	EnvAddr      = "TALENTMAP_ADDR"
)

// FallbackKey is the [palette] entry holding the color of unknown categories.
const FallbackKey = "fallback"

// Config is the full talentmap configuration.
type Config struct {
	APIURL   string `toml:"api_url" validate:"required,url"`
	Token    string `toml:"token"`
	CacheTTL string `toml:"cache_ttl"`

	Layout  Layout            `toml:"layout"`
	Palette map[string]string `toml:"palette"`
	Server  Server            `toml:"server"`
}

// Layout holds canvas and bubble sizing defaults.
type Layout struct {
	Width         float64 `toml:"width" validate:"gt=0"`
	Height        float64 `toml:"height" validate:"gt=0"`
	MinRadius     float64 `toml:"min_radius" validate:"gt=0"`
	MaxRadiusSpan float64 `toml:"max_radius_span" validate:"gt=0"`
	AllLabel      string  `toml:"all_label"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr      string `toml:"addr" validate:"required,hostname_port"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:   talentmap.DefaultBaseURL,
		CacheTTL: cache.SnapshotTTL.String(),
		Layout: Layout{
			Width:         pipeline.DefaultWidth,
			Height:        pipeline.DefaultHeight,
			MinRadius:     bubble.DefaultMinRadius,
			MaxRadiusSpan: bubble.DefaultMaxRadiusSpan,
			AllLabel:      "All",
		},
		Server: Server{Addr: "localhost:8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/talentmap/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "talentmap", "config.toml"), nil
}

// Load reads the config file at path, overlays the environment and validates
// the result. An empty path means [DefaultPath], which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.ApplyEnv(os.LookupEnv)
			return cfg, cfg.Validate()
		}
		path = p
	}

	if err := cfg.decodeFile(path); err != nil {
		if explicit || !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML data over the receiver's current values.
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return undecoded(md)
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return undecoded(md)
}

func undecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(names, ", "))
}

// ApplyEnv overlays TALENTMAP_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.APIURL = v
	}
	if v, ok := lookup(EnvToken); ok {
		c.Token = v
	}
	if v, ok := lookup(EnvRedisAddr); ok {
		c.Server.RedisAddr = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
}

// Validate checks field constraints, the cache TTL and the palette.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if err := errors.ValidateURL(c.APIURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "api_url %q", c.APIURL)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	if _, err := c.BuildPalette(); err != nil {
		return err
	}
	return nil
}

// TTL parses cache_ttl. An empty value means [cache.SnapshotTTL].
func (c *Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return cache.SnapshotTTL, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache_ttl %q is not a non-negative duration", c.CacheTTL)
	}
	return d, nil
}

// BuildPalette returns the default palette with the [palette] entries
// overlaid. Categories not mentioned keep their default colors.
func (c *Config) BuildPalette() (palette.Palette, error) {
	if len(c.Palette) == 0 {
		return palette.Default(), nil
	}
	base := palette.Default()
	colors := make(map[string]string, len(c.Palette)+len(base.Categories()))
	for _, cat := range base.Categories() {
		rgb, _ := base.Lookup(cat)
		colors[cat] = rgb.Hex()
	}
	fallback := ""
	for k, v := range c.Palette {
		if k == FallbackKey {
			fallback = v
			continue
		}
		colors[k] = v
	}
	return palette.FromHex(colors, fallback)
}

// PipelineOptions returns pipeline defaults derived from the layout section.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	p, err := c.BuildPalette()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Width:         c.Layout.Width,
		Height:        c.Layout.Height,
		MinRadius:     c.Layout.MinRadius,
		MaxRadiusSpan: c.Layout.MaxRadiusSpan,
		Palette:       &p,
	}, nil
}

// ClientOptions returns options for the talent-map API client.
func (c *Config) ClientOptions() (talentmap.Options, error) {
	ttl, err := c.TTL()
	if err != nil {
		return talentmap.Options{}, err
	}
	return talentmap.Options{BaseURL: c.APIURL, Token: c.Token, TTL: ttl}, nil
}
