package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 16.0, s.Fonts.DefaultSize)
	assert.Equal(t, "sans-serif", s.Fonts.DefaultName)
	lang, culture := s.Language()
	assert.Equal(t, "en", lang)
	assert.Empty(t, culture)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	s, err := Decode(strings.NewReader(`
[viewport]
width = 1024

[screen]
dpi = 144

[fonts.generic]
serif = ["Georgia"]

[locale]
language = "pt_BR"
`))
	require.NoError(t, err)
	assert.Equal(t, 1024.0, s.Viewport.Width)
	assert.Equal(t, 600.0, s.Viewport.Height, "untouched keys keep their defaults")
	assert.Equal(t, 144.0, s.Screen.DPI)
	assert.Equal(t, []string{"Georgia"}, s.Fonts.Generic["serif"])

	lang, culture := s.Language()
	assert.Equal(t, "pt", lang)
	assert.Equal(t, "BR", culture)
	assert.Equal(t, "pt-BR", s.Tag().String())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[viewport]\ndepth = 3\n"))
	assert.Error(t, err)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("[screen]\ndpi = 0\n"))
	assert.ErrorContains(t, err, "dpi")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.toml")
	require.NoError(t, os.WriteFile(path, []byte("[fonts]\ndefault_size = 12\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, s.Fonts.DefaultSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestBadLanguageFallsBack(t *testing.T) {
	s := Default()
	s.Locale.Language = "!!"
	lang, _ := s.Language()
	assert.Equal(t, "en", lang)
}
