// Package config holds the rendering-surface settings the container reports
// to the layout engine: viewport, screen characteristics, font fallbacks and
// locale.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	locale "github.com/jeandeaual/go-locale"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Screen struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	DPI        float64 `toml:"dpi"`
	ColorDepth int     `toml:"color_depth"`
	ColorIndex int     `toml:"color_index"`
	Monochrome int     `toml:"monochrome"`
}

type Fonts struct {
	DefaultName string  `toml:"default_name"`
	DefaultSize float64 `toml:"default_size"`
	// Extensions limits which font files the system finder considers.
	Extensions []string `toml:"extensions"`
	// Generic maps a CSS generic family to concrete family names, tried in
	// order.
	Generic map[string][]string `toml:"generic"`
}

type Locale struct {
	// Language is a BCP 47 tag, or "auto" to ask the operating system.
	Language string `toml:"language"`
	Culture  string `toml:"culture"`
}

type Settings struct {
	Viewport Viewport `toml:"viewport"`
	Screen   Screen   `toml:"screen"`
	Fonts    Fonts    `toml:"fonts"`
	Locale   Locale   `toml:"locale"`
}

func Default() *Settings {
	return &Settings{
		Viewport: Viewport{Width: 800, Height: 600},
		Screen: Screen{
			Width:      1920,
			Height:     1080,
			DPI:        96,
			ColorDepth: 8,
			ColorIndex: 256,
		},
		Fonts: Fonts{
			DefaultName: "sans-serif",
			DefaultSize: 16,
			Extensions:  []string{".ttf"},
			Generic: map[string][]string{
				"serif":      {"Times New Roman", "DejaVu Serif", "Liberation Serif", "Noto Serif"},
				"sans-serif": {"Arial", "DejaVu Sans", "Liberation Sans", "Noto Sans", "Helvetica"},
				"monospace":  {"Courier New", "DejaVu Sans Mono", "Liberation Mono", "Noto Sans Mono"},
				"cursive":    {"Comic Sans MS", "URW Chancery L"},
				"fantasy":    {"Impact", "Papyrus"},
			},
		},
		Locale: Locale{Language: "en"},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (*Settings, error) {
	s := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	switch {
	case s.Viewport.Width <= 0 || s.Viewport.Height <= 0:
		return fmt.Errorf("viewport must be positive, got %vx%v", s.Viewport.Width, s.Viewport.Height)
	case s.Screen.DPI <= 0:
		return fmt.Errorf("screen dpi must be positive, got %v", s.Screen.DPI)
	case s.Fonts.DefaultSize <= 0:
		return fmt.Errorf("default font size must be positive, got %v", s.Fonts.DefaultSize)
	case s.Fonts.DefaultName == "":
		return fmt.Errorf("default font name is empty")
	}
	return nil
}

// Language returns the canonical language and culture (region) to report.
// With "auto" it asks the OS and falls back to English.
func (s *Settings) Language() (lang, culture string) {
	raw := s.Locale.Language
	if raw == "" {
		raw = "en"
	}
	if strings.EqualFold(raw, "auto") {
		detected, err := locale.GetLocale()
		if err != nil || detected == "" {
			return "en", s.Locale.Culture
		}
		raw = detected
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return "en", s.Locale.Culture
	}
	base, _ := tag.Base()
	culture = s.Locale.Culture
	if culture == "" {
		if region, conf := tag.Region(); conf == language.Exact {
			culture = region.String()
		}
	}
	return base.String(), culture
}

// Tag is the language as an x/text tag, for locale-aware casing.
func (s *Settings) Tag() language.Tag {
	lang, culture := s.Language()
	if culture != "" {
		if t, err := language.Parse(lang + "-" + culture); err == nil {
			return t
		}
	}
	return language.Make(lang)
}
