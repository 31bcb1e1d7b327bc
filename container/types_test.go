package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLeavesFittingRadiiAlone(t *testing.T) {
	r := UniformRadius(10)
	assert.Equal(t, r, r.Clamp(100, 100))
}

func TestClampScalesOverlappingRadii(t *testing.T) {
	r := BorderRadiuses{TopLeftX: 60, TopLeftY: 10, TopRightX: 60, TopRightY: 10}
	got := r.Clamp(100, 100)
	// 60+60 > 100 on the top side, so every radius scales by 100/120.
	assert.InDelta(t, 50, got.TopLeftX, 1e-9)
	assert.InDelta(t, 50, got.TopRightX, 1e-9)
	assert.InDelta(t, 10*100.0/120, got.TopLeftY, 1e-9)
}

func TestClampNegative(t *testing.T) {
	got := BorderRadiuses{TopLeftX: -4, TopLeftY: 3}.Clamp(10, 10)
	assert.Zero(t, got.TopLeftX)
	assert.Equal(t, 3.0, got.TopLeftY)
}

func TestInset(t *testing.T) {
	b := Borders{
		Left:   Border{Width: 2},
		Top:    Border{Width: 4},
		Right:  Border{Width: 20},
		Bottom: Border{Width: 1},
	}
	got := UniformRadius(10).Inset(b)
	assert.Equal(t, 8.0, got.TopLeftX)
	assert.Equal(t, 6.0, got.TopLeftY)
	assert.Zero(t, got.TopRightX)
	assert.Equal(t, 9.0, got.BottomLeftY)
}

func TestBorderVisible(t *testing.T) {
	red := WebColor{R: 255, A: 255}
	assert.True(t, Border{Width: 1, Style: BorderStyleSolid, Color: red}.Visible())
	assert.False(t, Border{Width: 0, Style: BorderStyleSolid, Color: red}.Visible())
	assert.False(t, Border{Width: 3, Style: BorderStyleHidden, Color: red}.Visible())
	assert.False(t, Border{Width: 3, Style: BorderStyleNone, Color: red}.Visible())
}

func TestParseKeywords(t *testing.T) {
	assert.Equal(t, BorderStyleDashed, ParseBorderStyle("dashed"))
	assert.Equal(t, BorderStyleNone, ParseBorderStyle("wavy"))
	assert.Equal(t, RepeatX, ParseBackgroundRepeat("repeat-x"))
	assert.Equal(t, RepeatNone, ParseBackgroundRepeat("no-repeat"))
	assert.Equal(t, RepeatBoth, ParseBackgroundRepeat("repeat"))
	assert.Equal(t, ListStyleUpperRoman, ParseListStyleType("upper-roman"))
	assert.Equal(t, ListStyleLowerAlpha, ParseListStyleType("lower-latin"))
	assert.Equal(t, "circle", ListStyleCircle.String())
}

func TestPositionEdges(t *testing.T) {
	p := Position{X: 1, Y: 2, Width: 3, Height: 4}
	assert.Equal(t, 4.0, p.Right())
	assert.Equal(t, 6.0, p.Bottom())
	assert.False(t, p.Empty())
	assert.True(t, Position{Width: 3}.Empty())
}
