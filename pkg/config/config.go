// Package config holds the spacing and packing parameters of the layout
// engine and loads them from TOML files.
//
// A config file looks like:
//
//	horizontal_gap  = 32.0
//	vertical_gap    = 32.0
//	plane_gap       = 128.0
//	row_break_count = 12
//
//	padding           = 16.0
//	depth_padding     = 64.0
//	max_row_width     = 2048.0
//	fit_group_anchors = true
//
// Keys that are absent keep their [Default] values.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridspace/pkg/errors"
)

// Defaults for stream insertion.
const (
	DefaultHorizontalGap = 32.0
	DefaultVerticalGap   = 32.0
	DefaultPlaneGap      = 128.0
	DefaultRowBreakCount = 12
)

// Defaults for hierarchical packing.
const (
	DefaultPadding      = 16.0
	DefaultDepthPadding = 64.0
	DefaultMaxRowWidth  = 2048.0
)

// Config is the injectable configuration of the engine.
type Config struct {
	// HorizontalGap separates trailing siblings in a row.
	HorizontalGap float64 `toml:"horizontal_gap" json:"horizontal_gap"`
	// VerticalGap separates rows.
	VerticalGap float64 `toml:"vertical_gap" json:"vertical_gap"`
	// PlaneGap separates depth planes.
	PlaneGap float64 `toml:"plane_gap" json:"plane_gap"`
	// RowBreakCount is the number of blocks per row in stream insertion.
	RowBreakCount int `toml:"row_break_count" json:"row_break_count"`

	// Padding separates packed items.
	Padding float64 `toml:"padding" json:"padding"`
	// DepthPadding is the Z offset per nesting level.
	DepthPadding float64 `toml:"depth_padding" json:"depth_padding"`
	// MaxRowWidth is the width at which packed rows wrap.
	MaxRowWidth float64 `toml:"max_row_width" json:"max_row_width"`
	// FitGroupAnchors resizes each group's anchor to enclose its packed
	// contents.
	FitGroupAnchors bool `toml:"fit_group_anchors" json:"fit_group_anchors"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		HorizontalGap: DefaultHorizontalGap,
		VerticalGap:   DefaultVerticalGap,
		PlaneGap:      DefaultPlaneGap,
		RowBreakCount: DefaultRowBreakCount,
		Padding:       DefaultPadding,
		DepthPadding:  DefaultDepthPadding,
		MaxRowWidth:   DefaultMaxRowWidth,
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	dims := []struct {
		name string
		v    float64
	}{
		{"horizontal_gap", c.HorizontalGap},
		{"vertical_gap", c.VerticalGap},
		{"plane_gap", c.PlaneGap},
		{"padding", c.Padding},
		{"depth_padding", c.DepthPadding},
		{"max_row_width", c.MaxRowWidth},
	}
	for _, d := range dims {
		if err := errors.ValidateDimension(d.name, d.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s", d.name)
		}
	}
	if c.RowBreakCount < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "row_break_count must be at least 1 (got %d)", c.RowBreakCount)
	}
	if c.MaxRowWidth == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_row_width must be positive")
	}
	return nil
}

// Decode reads TOML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a TOML config file. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
