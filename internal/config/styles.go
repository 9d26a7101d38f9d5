// Package config loads optional plotting configuration. Style overrides are
// partial by design: pointer fields mean "not set", so a config file only
// needs the values it wants to change.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gridline-data/trackmap/internal/render"
	"github.com/gridline-data/trackmap/internal/track"
)

// StyleOverride is one category's partial style override as it appears in
// the JSON file.
type StyleOverride struct {
	Color  *string  `json:"color,omitempty"`  // hex, e.g. "#ffd500"
	Radius *float64 `json:"radius,omitempty"` // marker radius in points
}

// StyleConfig maps category names to partial style overrides.
type StyleConfig struct {
	Categories map[string]StyleOverride `json:"categories"`
}

// LoadStyleConfig loads a style configuration from a JSON file. Fields
// omitted from the file keep the category defaults, so partial configs are
// safe.
func LoadStyleConfig(path string) (*StyleConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("style config must have .json extension, got %q", ext)
	}

	// Size cap: style files are tiny, anything big is a mistake.
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat style config: %w", err)
	}
	const maxFileSize = 64 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("style config too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read style config: %w", err)
	}

	var cfg StyleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse style config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style config: %w", err)
	}
	return &cfg, nil
}

// Validate checks category names against the closed enumeration and color
// strings against the hex format.
func (c *StyleConfig) Validate() error {
	for name, o := range c.Categories {
		if _, err := track.ParseCategory(name); err != nil {
			return err
		}
		if o.Color != nil {
			if _, err := parseHexColor(*o.Color); err != nil {
				return fmt.Errorf("category %s: %w", name, err)
			}
		}
		if o.Radius != nil && (*o.Radius <= 0) {
			return fmt.Errorf("category %s: radius must be positive, got %v", name, *o.Radius)
		}
	}
	return nil
}

// Styles converts the config into the per-category override map consumed by
// ConeArray.Plot. Validate must have passed.
func (c *StyleConfig) Styles() map[track.Category]render.Style {
	out := make(map[track.Category]render.Style, len(c.Categories))
	for name, o := range c.Categories {
		var s render.Style
		if o.Color != nil {
			col, err := parseHexColor(*o.Color)
			if err != nil {
				continue // unreachable after Validate
			}
			s.Color = col
		}
		if o.Radius != nil {
			s.Radius = *o.Radius
		}
		out[track.Category(name)] = s
	}
	return out
}

// parseHexColor parses "#rrggbb" (leading '#' optional) into a color.
func parseHexColor(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return nil, fmt.Errorf("color must be 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
