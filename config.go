package slider

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Slide is one entry of the slide configuration. Slides are immutable after
// loading; their order defines the cyclic transition sequence.
type Slide struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
	Field       string `yaml:"field" json:"field"`
	Date        string `yaml:"date" json:"date"`
	Image       string `yaml:"image" json:"image"`
}

// Timing holds every duration, stagger and offset of a transition, in seconds.
type Timing struct {
	Progress float32 `yaml:"progress" json:"progress"` // shader progress 0 -> 1

	ExitDuration   float32 `yaml:"exitDuration" json:"exitDuration"`
	ExitStagger    float32 `yaml:"exitStagger" json:"exitStagger"`
	ExitLineOffset float32 `yaml:"exitLineOffset" json:"exitLineOffset"`
	SwapDelay      float32 `yaml:"swapDelay" json:"swapDelay"` // exit start -> content swap

	EnterDuration    float32 `yaml:"enterDuration" json:"enterDuration"`
	EnterCharStagger float32 `yaml:"enterCharStagger" json:"enterCharStagger"`
	EnterLineStagger float32 `yaml:"enterLineStagger" json:"enterLineStagger"`
	EnterLineOffset  float32 `yaml:"enterLineOffset" json:"enterLineOffset"`

	IntroDuration  float32 `yaml:"introDuration" json:"introDuration"`
	IntroStagger   float32 `yaml:"introStagger" json:"introStagger"`
	IntroLineDelay float32 `yaml:"introLineDelay" json:"introLineDelay"`
}

// DefaultTiming returns the stock transition timing.
func DefaultTiming() Timing {
	return Timing{
		Progress: 2.5,

		ExitDuration:   0.6,
		ExitStagger:    0.025,
		ExitLineOffset: 0.1,
		SwapDelay:      0.5,

		EnterDuration:    0.5,
		EnterCharStagger: 0.025,
		EnterLineStagger: 0.1,
		EnterLineOffset:  0.3,

		IntroDuration:  0.8,
		IntroStagger:   0.025,
		IntroLineDelay: 0.2,
	}
}

// fillDefaults replaces zero values with the defaults.
func (t *Timing) fillDefaults() {
	d := DefaultTiming()
	fill := func(v *float32, def float32) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&t.Progress, d.Progress)
	fill(&t.ExitDuration, d.ExitDuration)
	fill(&t.ExitStagger, d.ExitStagger)
	fill(&t.ExitLineOffset, d.ExitLineOffset)
	fill(&t.SwapDelay, d.SwapDelay)
	fill(&t.EnterDuration, d.EnterDuration)
	fill(&t.EnterCharStagger, d.EnterCharStagger)
	fill(&t.EnterLineStagger, d.EnterLineStagger)
	fill(&t.EnterLineOffset, d.EnterLineOffset)
	fill(&t.IntroDuration, d.IntroDuration)
	fill(&t.IntroStagger, d.IntroStagger)
	fill(&t.IntroLineDelay, d.IntroLineDelay)
}

func (t Timing) validate() error {
	for name, v := range map[string]float32{
		"progress":         t.Progress,
		"exitDuration":     t.ExitDuration,
		"enterDuration":    t.EnterDuration,
		"introDuration":    t.IntroDuration,
		"exitStagger":      t.ExitStagger,
		"enterCharStagger": t.EnterCharStagger,
		"enterLineStagger": t.EnterLineStagger,
		"exitLineOffset":   t.ExitLineOffset,
		"enterLineOffset":  t.EnterLineOffset,
		"swapDelay":        t.SwapDelay,
		"introStagger":     t.IntroStagger,
		"introLineDelay":   t.IntroLineDelay,
	} {
		if v < 0 {
			return fmt.Errorf("timing.%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// Theme holds the CSS color strings of the slide text and background.
type Theme struct {
	Background string `yaml:"background" json:"background"`
	Text       string `yaml:"text" json:"text"`
	Muted      string `yaml:"muted" json:"muted"`
}

// ThemeColors is a parsed Theme.
type ThemeColors struct {
	Background, Text, Muted Color
}

// Colors parses every color of the theme.
func (t Theme) Colors() (ThemeColors, error) {
	var tc ThemeColors
	var err error
	if tc.Background, err = ParseColor(t.Background); err != nil {
		return tc, err
	}
	if tc.Text, err = ParseColor(t.Text); err != nil {
		return tc, err
	}
	if tc.Muted, err = ParseColor(t.Muted); err != nil {
		return tc, err
	}
	return tc, nil
}

// WindowConfig configures the program window.
type WindowConfig struct {
	Title     string `yaml:"title" json:"title"`
	Width     int    `yaml:"width" json:"width"`
	Height    int    `yaml:"height" json:"height"`
	Resizable *bool  `yaml:"resizable" json:"resizable"`
	ShowFPS   bool   `yaml:"showFPS" json:"showFPS"`
}

// FontConfig sets the text sizes in pixels.
type FontConfig struct {
	TitleSize float64 `yaml:"titleSize" json:"titleSize"`
	BodySize  float64 `yaml:"bodySize" json:"bodySize"`
}

// Config is the top-level slide show configuration.
type Config struct {
	Window WindowConfig `yaml:"window" json:"window"`
	Theme  Theme        `yaml:"theme" json:"theme"`
	Fonts  FontConfig   `yaml:"fonts" json:"fonts"`
	// ImageDir is the directory slide image paths are relative to. LoadConfig
	// resolves a relative ImageDir against the config file's directory.
	ImageDir string  `yaml:"imageDir" json:"imageDir"`
	Slides   []Slide `yaml:"slides" json:"slides"`
	Timing   Timing  `yaml:"timing" json:"timing"`
}

// Config file formats accepted by ParseConfig.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadConfig reads a YAML (.yaml, .yml) or JSON (.json) config file, fills
// defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("slider: read config: %w", err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.ImageDir) {
		cfg.ImageDir = filepath.Join(filepath.Dir(path), cfg.ImageDir)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format, fills defaults and validates
// the result.
func ParseConfig(data []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("slider: parse config: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("slider: parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("slider: unknown config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrNoSlides is returned by Validate for a configuration without slides.
var ErrNoSlides = errors.New("slider: config has no slides")

// Validate fills defaults and checks the configuration.
func (c *Config) Validate() error {
	if c.Window.Title == "" {
		c.Window.Title = "Slider"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.Window.Resizable == nil {
		resizable := true
		c.Window.Resizable = &resizable
	}
	if c.Theme.Background == "" {
		c.Theme.Background = "#0a0a0a"
	}
	if c.Theme.Text == "" {
		c.Theme.Text = "#ffffff"
	}
	if c.Theme.Muted == "" {
		c.Theme.Muted = "rgba(255, 255, 255, 0.7)"
	}
	if _, err := c.Theme.Colors(); err != nil {
		return err
	}
	if c.Fonts.TitleSize <= 0 {
		c.Fonts.TitleSize = 96
	}
	if c.Fonts.BodySize <= 0 {
		c.Fonts.BodySize = 16
	}

	if len(c.Slides) == 0 {
		return ErrNoSlides
	}
	for i, s := range c.Slides {
		if strings.TrimSpace(s.Image) == "" {
			return fmt.Errorf("slider: slide %d (%q) has no image", i, s.Title)
		}
	}

	c.Timing.fillDefaults()
	if err := c.Timing.validate(); err != nil {
		return fmt.Errorf("slider: %w", err)
	}
	return nil
}
