// Package config loads keycap generation settings from a TOML file.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings holds the global legend layout parameters.
type Settings struct {
	// Font is the default typeface for all legends.
	Font string `toml:"font"`
	// Font sizes in millimetres.
	PrimaryFontSize   float64 `toml:"primary_font_size"`
	SecondaryFontSize float64 `toml:"secondary_font_size"`
	TertiaryFontSize  float64 `toml:"tertiary_font_size"`
	// LegendGap is extra vertical space between primary and secondary
	// legends, in millimetres.
	LegendGap float64 `toml:"legend_gap"`
	// VerticalShift moves the whole legend group up or down the cap.
	VerticalShift float64 `toml:"vertical_shift"`
	// TertiaryXOffset places the tertiary legend left or right of center.
	TertiaryXOffset float64 `toml:"tertiary_x_offset"`
}

// StepFile names a cap body source and its placement.
type StepFile struct {
	Path string
	// Rotation about Z in degrees applied after import.
	Rotation float64
	// HasStem marks caps whose STEP geometry already includes the switch
	// stem, suppressing stem generation.
	HasStem bool
}

// UnmarshalTOML accepts either a bare path string or a full table, so
// simple rows can be written as
//
//	row_2 = "caps/row2.step"
func (s *StepFile) UnmarshalTOML(v interface{}) error {
	switch data := v.(type) {
	case string:
		s.Path = data
	case map[string]interface{}:
		path, ok := data["path"].(string)
		if !ok {
			return errors.New("step file table requires a path")
		}
		s.Path = path
		if rot, ok := data["rotation"]; ok {
			f, err := tomlFloat(rot)
			if err != nil {
				return fmt.Errorf("rotation: %w", err)
			}
			s.Rotation = f
		}
		if has, ok := data["has_stem"]; ok {
			b, ok := has.(bool)
			if !ok {
				return errors.New("has_stem must be a boolean")
			}
			s.HasStem = b
		}
	default:
		return fmt.Errorf("step file entry must be a path string or a table, got %T", v)
	}
	return nil
}

func tomlFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

// Legend configures the text of a single keycap variant.
type Legend struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	Tertiary  string `toml:"tertiary"`
	// MirrorX builds the mirrored right-hand variant of the cap.
	MirrorX bool `toml:"mirror_x"`
	// Per-legend typeface overrides. Empty falls back to Settings.Font
	// (the secondary falls back to the primary's font first).
	PrimaryFont   string `toml:"primary_font"`
	SecondaryFont string `toml:"secondary_font"`
	TertiaryFont  string `toml:"tertiary_font"`
}

// Config is the complete keycap generation configuration.
type Config struct {
	Settings  Settings            `toml:"settings"`
	StepFiles map[string]StepFile `toml:"step_files"`
	Legends   map[string][]Legend `toml:"legends"`
}

// Default returns a Config with the documented default settings and no
// rows configured.
func Default() *Config {
	return &Config{
		Settings: Settings{
			Font:              "Rajdhani",
			PrimaryFontSize:   8,
			SecondaryFontSize: 6,
			TertiaryFontSize:  5,
			LegendGap:         0,
			VerticalShift:     0,
			TertiaryXOffset:   -5,
		},
		StepFiles: map[string]StepFile{},
		Legends:   map[string][]Legend{},
	}
}

// Load reads the TOML file at path on top of the defaults and validates
// the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-references and value ranges.
func (c *Config) Validate() error {
	if c.Settings.PrimaryFontSize <= 0 || c.Settings.SecondaryFontSize <= 0 || c.Settings.TertiaryFontSize <= 0 {
		return errors.New("font sizes must be positive")
	}
	for row := range c.Legends {
		step, ok := c.StepFiles[row]
		if !ok {
			return fmt.Errorf("legends row %q has no step_files entry", row)
		}
		if step.Path == "" {
			return fmt.Errorf("step_files entry %q has an empty path", row)
		}
	}
	return nil
}
