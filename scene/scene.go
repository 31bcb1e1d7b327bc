// Package scene reads a display list from TOML and replays it against a
// container.DocumentContainer, in the order a layout engine's paint pass
// would issue the same callbacks.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"htmlcanvas/color"
	"htmlcanvas/container"
)

var (
	ErrUnbalancedClip = errors.New("unbalanced clip stack")
	ErrUnknownOp      = errors.New("unknown op kind")
	ErrUnknownFont    = errors.New("unknown font")
)

type Scene struct {
	Title      string          `toml:"title"`
	Width      int             `toml:"width"`
	Height     int             `toml:"height"`
	Background string          `toml:"background"`
	BaseURL    string          `toml:"base_url"`
	Fonts      map[string]Font `toml:"fonts"`
	Ops        []Op            `toml:"op"`
}

type Font struct {
	Family     string   `toml:"family"`
	Size       float64  `toml:"size"`
	Weight     int      `toml:"weight"`
	Italic     bool     `toml:"italic"`
	Decoration []string `toml:"decoration"`
}

type Border struct {
	Width float64 `toml:"width"`
	Style string  `toml:"style"`
	Color string  `toml:"color"`
}

// Op is one callback. Which fields apply depends on Kind.
type Op struct {
	Kind   string  `toml:"kind"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Radius float64 `toml:"radius"`
	Color  string  `toml:"color"`
	Root   bool    `toml:"root"`

	// text
	Text string `toml:"text"`
	Font string `toml:"font"`

	// background and image
	Image      string  `toml:"image"`
	Repeat     string  `toml:"repeat"`
	Fixed      bool    `toml:"fixed"`
	PositionX  float64 `toml:"position_x"`
	PositionY  float64 `toml:"position_y"`
	TileWidth  float64 `toml:"tile_width"`
	TileHeight float64 `toml:"tile_height"`

	// borders; Border applies to every side a side entry leaves unset
	Border *Border `toml:"border"`
	Top    *Border `toml:"top"`
	Right  *Border `toml:"right"`
	Bottom *Border `toml:"bottom"`
	Left   *Border `toml:"left"`

	// marker
	Style string `toml:"style"`
	Index int    `toml:"index"`

	// clip; an axis marked invalid spans the client rect
	ValidX *bool `toml:"valid_x"`
	ValidY *bool `toml:"valid_y"`

	// anchor
	Href string `toml:"href"`
}

func valid(flag *bool) bool {
	return flag == nil || *flag
}

var kinds = []string{"text", "background", "borders", "marker", "clip", "unclip", "image", "anchor"}

func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load decodes and checks a scene. Missing dimensions default to 800x600.
func Load(r io.Reader) (*Scene, error) {
	s := &Scene{}
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if s.Width == 0 {
		s.Width = 800
	}
	if s.Height == 0 {
		s.Height = 600
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("scene size must be positive, got %dx%d", s.Width, s.Height)
	}
	for i, op := range s.Ops {
		if !slices.Contains(kinds, op.Kind) {
			return nil, fmt.Errorf("op %d: %w %q", i, ErrUnknownOp, op.Kind)
		}
		if op.Kind == "text" {
			if _, ok := s.Fonts[op.Font]; !ok {
				return nil, fmt.Errorf("op %d: %w %q", i, ErrUnknownFont, op.Font)
			}
		}
	}
	return s, nil
}

func (f Font) Description() container.FontDescription {
	d := container.FontDescription{Family: f.Family, Size: f.Size, Weight: f.Weight, Italic: f.Italic}
	if d.Weight == 0 {
		d.Weight = 400
	}
	for _, name := range f.Decoration {
		switch strings.ToLower(name) {
		case "underline":
			d.Decoration |= container.DecorationUnderline
		case "overline":
			d.Decoration |= container.DecorationOverline
		case "line-through":
			d.Decoration |= container.DecorationLineThrough
		}
	}
	return d
}

func (op Op) position() container.Position {
	return container.Position{X: op.X, Y: op.Y, Width: op.Width, Height: op.Height}
}

func (b *Border) border() (container.Border, error) {
	if b == nil {
		return container.Border{}, nil
	}
	c, err := parseColor(b.Color)
	if err != nil {
		return container.Border{}, err
	}
	style := container.BorderStyleSolid
	if b.Style != "" {
		style = container.ParseBorderStyle(b.Style)
	}
	return container.Border{Width: b.Width, Style: style, Color: c}, nil
}

func (op Op) borders() (container.Borders, error) {
	var out container.Borders
	sides := []struct {
		dst *container.Border
		src *Border
	}{
		{&out.Top, op.Top}, {&out.Right, op.Right}, {&out.Bottom, op.Bottom}, {&out.Left, op.Left},
	}
	for _, side := range sides {
		src := side.src
		if src == nil {
			src = op.Border
		}
		b, err := src.border()
		if err != nil {
			return out, err
		}
		*side.dst = b
	}
	out.Radius = container.UniformRadius(op.Radius)
	return out, nil
}

// parseColor accepts any CSS colour. Empty means black.
func parseColor(s string) (container.WebColor, error) {
	if s == "" {
		return color.Black, nil
	}
	return color.ParseStrict(s)
}

// Play issues the scene's callbacks against c. Fonts are created up front
// and released before returning. The clip stack must be empty at the end.
func (s *Scene) Play(c container.DocumentContainer) error {
	if s.Title != "" {
		c.SetCaption(s.Title)
	}
	if s.BaseURL != "" {
		c.SetBaseURL(s.BaseURL)
	}

	names := make([]string, 0, len(s.Fonts))
	for name := range s.Fonts {
		names = append(names, name)
	}
	slices.Sort(names)
	fonts := make(map[string]container.FontHandle, len(names))
	defer func() {
		for _, name := range names {
			c.DeleteFont(fonts[name])
		}
	}()
	for _, name := range names {
		h, _ := c.CreateFont(s.Fonts[name].Description())
		fonts[name] = h
	}

	if s.Background != "" {
		bg, err := parseColor(s.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		c.DrawBackground(container.BackgroundPaint{
			Color:     bg,
			ClipBox:   container.Position{Width: float64(s.Width), Height: float64(s.Height)},
			BorderBox: container.Position{Width: float64(s.Width), Height: float64(s.Height)},
			IsRoot:    true,
		})
	}

	depth := 0
	for i, op := range s.Ops {
		if err := s.play(c, op, fonts, &depth); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d clip(s) left open", ErrUnbalancedClip, depth)
	}
	container.Logger().Debug("scene played", "ops", len(s.Ops), "fonts", len(names))
	return nil
}

func (s *Scene) play(c container.DocumentContainer, op Op, fonts map[string]container.FontHandle, depth *int) error {
	col, err := parseColor(op.Color)
	if err != nil {
		return err
	}
	pos := op.position()

	switch op.Kind {
	case "text":
		h, ok := fonts[op.Font]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownFont, op.Font)
		}
		c.DrawText(op.Text, h, col, pos)
	case "background":
		if op.Color == "" {
			col = color.Transparent
		}
		if op.Image != "" {
			c.LoadImage(op.Image, s.BaseURL, false)
		}
		attachment := container.AttachmentScroll
		if op.Fixed {
			attachment = container.AttachmentFixed
		}
		c.DrawBackground(container.BackgroundPaint{
			Image:      op.Image,
			BaseURL:    s.BaseURL,
			Attachment: attachment,
			Repeat:     container.ParseBackgroundRepeat(op.Repeat),
			Color:      col,
			ClipBox:    pos,
			OriginBox:  pos,
			BorderBox:  pos,
			Radius:     container.UniformRadius(op.Radius),
			ImageSize:  container.Size{Width: op.TileWidth, Height: op.TileHeight},
			PositionX:  op.PositionX,
			PositionY:  op.PositionY,
			IsRoot:     op.Root,
		})
	case "image":
		c.LoadImage(op.Image, s.BaseURL, false)
		c.DrawBackground(container.BackgroundPaint{
			Image:     op.Image,
			BaseURL:   s.BaseURL,
			Repeat:    container.RepeatNone,
			Color:     color.Transparent,
			ClipBox:   pos,
			OriginBox: pos,
			BorderBox: pos,
			Radius:    container.UniformRadius(op.Radius),
			ImageSize: container.Size{Width: op.Width, Height: op.Height},
		})
	case "borders":
		b, err := op.borders()
		if err != nil {
			return err
		}
		c.DrawBorders(b, pos, op.Root)
	case "marker":
		if op.Image != "" {
			c.LoadImage(op.Image, s.BaseURL, false)
		}
		m := container.ListMarker{
			Image:   op.Image,
			BaseURL: s.BaseURL,
			Type:    container.ParseListStyleType(op.Style),
			Color:   col,
			Pos:     pos,
			Index:   op.Index,
		}
		if op.Font != "" {
			h, ok := fonts[op.Font]
			if !ok {
				return fmt.Errorf("%w %q", ErrUnknownFont, op.Font)
			}
			m.Font = h
		}
		c.DrawListMarker(m)
	case "clip":
		c.SetClip(pos, container.UniformRadius(op.Radius), valid(op.ValidX), valid(op.ValidY))
		*depth++
	case "unclip":
		if *depth == 0 {
			return fmt.Errorf("%w: unclip without clip", ErrUnbalancedClip)
		}
		c.DelClip()
		*depth--
	case "anchor":
		if op.Href == "" {
			return errors.New("anchor without href")
		}
		c.OnAnchorClick(op.Href)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, op.Kind)
	}
	return nil
}
