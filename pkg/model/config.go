package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SizeMode selects the metric used to weight tiles for area allocation.
type SizeMode string

const (
	SizeLOC        SizeMode = "loc"
	SizeBytes      SizeMode = "bytes"
	SizeFiles      SizeMode = "files"
	SizeComplexity SizeMode = "complexity"
)

// IsValid returns true if the size mode is a recognized value
func (m SizeMode) IsValid() bool {
	switch m {
	case SizeLOC, SizeBytes, SizeFiles, SizeComplexity:
		return true
	}
	return false
}

// ParseSizeMode parses s, falling back to SizeLOC for unknown values.
func ParseSizeMode(s string) SizeMode {
	m := SizeMode(s)
	if !m.IsValid() {
		return SizeLOC
	}
	return m
}

// ColorMode selects the dimension encoded by tile color.
type ColorMode string

const (
	ColorByLanguage   ColorMode = "language"
	ColorByAge        ColorMode = "age"
	ColorByComplexity ColorMode = "complexity"
	ColorByDensity    ColorMode = "density"
)

// IsValid returns true if the color mode is a recognized value
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorByLanguage, ColorByAge, ColorByComplexity, ColorByDensity:
		return true
	}
	return false
}

// ParseColorMode parses s, falling back to ColorByLanguage for unknown values.
func ParseColorMode(s string) ColorMode {
	m := ColorMode(s)
	if !m.IsValid() {
		return ColorByLanguage
	}
	return m
}

// Config controls layout and rendering. Zero values are replaced with
// defaults by Normalized, so an empty Config is usable.
type Config struct {
	// MaxNestingDepth is the deepest directory level that is subdivided.
	// Directories at this depth render as single aggregate tiles.
	MaxNestingDepth int `yaml:"max_depth"`

	// LabelMinWidth is the minimum tile width (px) for a directory to
	// reserve a label strip.
	LabelMinWidth float64 `yaml:"label_min_width"`

	// LabelHeight is the height (px) of the reserved label strip.
	LabelHeight float64 `yaml:"label_height"`

	SizeMode  SizeMode  `yaml:"size_mode"`
	ColorMode ColorMode `yaml:"color_mode"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxNestingDepth: 4,
		LabelMinWidth:   80,
		LabelHeight:     18,
		SizeMode:        SizeLOC,
		ColorMode:       ColorByLanguage,
	}
}

// Normalized returns a copy of c with invalid fields clamped or defaulted:
// depth below 1 clamps to 1, zero label dimensions and unknown modes take
// the defaults.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.MaxNestingDepth < 1 {
		c.MaxNestingDepth = 1
	}
	if c.LabelMinWidth <= 0 {
		c.LabelMinWidth = d.LabelMinWidth
	}
	if c.LabelHeight <= 0 {
		c.LabelHeight = d.LabelHeight
	}
	if !c.SizeMode.IsValid() {
		c.SizeMode = d.SizeMode
	}
	if !c.ColorMode.IsValid() {
		c.ColorMode = d.ColorMode
	}
	return c
}

// LoadConfig reads a YAML config file and merges it over the defaults.
// A missing file is not an error; a malformed file is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg.Normalized(), nil
}
