package color

import (
	"fmt"
	col "image/color"

	"github.com/mazznoer/csscolorparser"
)

// WebColor is a straight (non-premultiplied) 8-bit RGBA colour as the
// layout engine hands it over.
type WebColor struct {
	R, G, B, A uint8
}

var (
	Black       = WebColor{0, 0, 0, 255}
	White       = WebColor{255, 255, 255, 255}
	Transparent = WebColor{}
)

// Parse reads any CSS colour string. Unknown input falls back to black, the
// same way the browser treated bad colour values.
func Parse(color string) WebColor {
	c, err := csscolorparser.Parse(color)
	if err != nil {
		return Black
	}
	r, g, b, a := c.RGBA255()
	return WebColor{r, g, b, a}
}

// ParseStrict is Parse with the parser error surfaced.
func ParseStrict(color string) (WebColor, error) {
	c, err := csscolorparser.Parse(color)
	if err != nil {
		return Black, fmt.Errorf("parse color %q: %w", color, err)
	}
	r, g, b, a := c.RGBA255()
	return WebColor{r, g, b, a}, nil
}

func ParseColor(color string) col.Color {
	return Parse(color).NRGBA()
}

func (c WebColor) NRGBA() col.NRGBA {
	return col.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c WebColor) IsTransparent() bool {
	return c.A == 0
}

// Darken scales the colour channels by factor (0..1), keeping alpha.
func (c WebColor) Darken(factor float64) WebColor {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return WebColor{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func (c WebColor) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)", c.R, c.G, c.B, float64(c.A)/255)
}
