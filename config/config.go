package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
)

//go:embed default.yml
var defaultYAML []byte

type Config struct {
	// Icon sizes in pixels, generated in this order
	Sizes []int `yaml:"sizes" json:"sizes"`
	// Text drawn at the center of every icon
	Text string `yaml:"text" json:"text"`
	// Background color (#rrggbb or #rgb)
	Background string `yaml:"background" json:"background"`
	// Text color (#rrggbb or #rgb)
	Foreground string `yaml:"foreground" json:"foreground"`
	// File name pattern, formatted with the size twice
	FilenamePattern string `yaml:"filename" json:"filename"`
}

// Default returns the built-in configuration.
func Default() (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return Parse(defaultYAML)
}

// Parse decodes and validates a YAML configuration.
func Parse(b []byte) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("no icon sizes configured")
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return fmt.Errorf("invalid icon size: %d", s)
		}
	}
	if c.Text == "" {
		return fmt.Errorf("empty icon text")
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.ForegroundColor(); err != nil {
		return err
	}
	if strings.Count(c.FilenamePattern, "%d") != 2 {
		return fmt.Errorf("invalid filename pattern: %q", c.FilenamePattern)
	}
	return nil
}

// Filename returns the output file name for size.
func (c *Config) Filename(size int) string {
	return fmt.Sprintf(c.FilenamePattern, size, size)
}

// BackgroundColor returns the parsed background color.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	col, err := ParseHexColor(c.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid background: %w", err)
	}
	return col, nil
}

// ForegroundColor returns the parsed text color.
func (c *Config) ForegroundColor() (color.RGBA, error) {
	col, err := ParseHexColor(c.Foreground)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid foreground: %w", err)
	}
	return col, nil
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color must start with '#': %q", s)
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color length: %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
