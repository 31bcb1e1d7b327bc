package container

import (
	"fmt"
	"math"

	"htmlcanvas/color"
	"htmlcanvas/rect"
)

type WebColor = color.WebColor

// FontHandle identifies a font created by CreateFont. The zero value is the
// null handle.
type FontHandle uint64

// Position is a layout box in canvas pixels.
type Position struct {
	X, Y, Width, Height float64
}

func (p Position) Left() float64   { return p.X }
func (p Position) Top() float64    { return p.Y }
func (p Position) Right() float64  { return p.X + p.Width }
func (p Position) Bottom() float64 { return p.Y + p.Height }

func (p Position) Empty() bool {
	return p.Width <= 0 || p.Height <= 0
}

func (p Position) Rect() rect.Rect {
	return rect.XYWH(p.X, p.Y, p.Width, p.Height)
}

func (p Position) String() string {
	return fmt.Sprintf("Position(x=%.2f, y=%.2f, w=%.2f, h=%.2f)", p.X, p.Y, p.Width, p.Height)
}

type Size struct {
	Width, Height float64
}

func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Decoration is a bitmask of text-decoration lines.
type Decoration uint8

const (
	DecorationUnderline Decoration = 1 << iota
	DecorationOverline
	DecorationLineThrough

	DecorationNone Decoration = 0
)

// FontDescription is what the layout engine asks for. Family is the raw
// comma-separated preference list from font-family.
type FontDescription struct {
	Family     string
	Size       float64
	Weight     int
	Italic     bool
	Decoration Decoration
}

type FontMetrics struct {
	Ascent     float64
	Descent    float64
	Height     float64
	XHeight    float64
	DrawSpaces float64 // advance width of a single space
}

type BorderStyle uint8

const (
	BorderStyleNone BorderStyle = iota
	BorderStyleHidden
	BorderStyleDotted
	BorderStyleDashed
	BorderStyleSolid
	BorderStyleDouble
	BorderStyleGroove
	BorderStyleRidge
	BorderStyleInset
	BorderStyleOutset
)

var borderStyleNames = [...]string{"none", "hidden", "dotted", "dashed", "solid", "double", "groove", "ridge", "inset", "outset"}

func (s BorderStyle) String() string {
	if int(s) < len(borderStyleNames) {
		return borderStyleNames[s]
	}
	return fmt.Sprintf("BorderStyle(%d)", s)
}

// ParseBorderStyle maps a CSS keyword; unknown keywords are none.
func ParseBorderStyle(s string) BorderStyle {
	for i, name := range borderStyleNames {
		if name == s {
			return BorderStyle(i)
		}
	}
	return BorderStyleNone
}

type Border struct {
	Width float64
	Style BorderStyle
	Color WebColor
}

// Visible reports whether the edge paints anything.
func (b Border) Visible() bool {
	return b.Width > 0 && b.Style != BorderStyleNone && b.Style != BorderStyleHidden && !b.Color.IsTransparent()
}

// BorderRadiuses holds the horizontal and vertical radius of each corner.
type BorderRadiuses struct {
	TopLeftX, TopLeftY         float64
	TopRightX, TopRightY       float64
	BottomRightX, BottomRightY float64
	BottomLeftX, BottomLeftY   float64
}

// UniformRadius returns radiuses with every corner set to r.
func UniformRadius(r float64) BorderRadiuses {
	return BorderRadiuses{r, r, r, r, r, r, r, r}
}

func (r BorderRadiuses) IsZero() bool {
	return r == BorderRadiuses{}
}

// Clamp scales all radii by a common factor so that adjacent radii never
// overlap along a side of a width x height box. Negative radii become zero.
func (r BorderRadiuses) Clamp(width, height float64) BorderRadiuses {
	for _, v := range []*float64{&r.TopLeftX, &r.TopLeftY, &r.TopRightX, &r.TopRightY,
		&r.BottomRightX, &r.BottomRightY, &r.BottomLeftX, &r.BottomLeftY} {
		if *v < 0 {
			*v = 0
		}
	}
	f := 1.0
	ratio := func(side, a, b float64) {
		if a+b > 0 && side >= 0 {
			f = math.Min(f, side/(a+b))
		}
	}
	ratio(width, r.TopLeftX, r.TopRightX)
	ratio(width, r.BottomLeftX, r.BottomRightX)
	ratio(height, r.TopLeftY, r.BottomLeftY)
	ratio(height, r.TopRightY, r.BottomRightY)
	if f < 1 {
		r.TopLeftX *= f
		r.TopLeftY *= f
		r.TopRightX *= f
		r.TopRightY *= f
		r.BottomRightX *= f
		r.BottomRightY *= f
		r.BottomLeftX *= f
		r.BottomLeftY *= f
	}
	return r
}

// Inset returns the radii of the padding edge inside the given borders.
func (r BorderRadiuses) Inset(b Borders) BorderRadiuses {
	return BorderRadiuses{
		TopLeftX:     math.Max(0, r.TopLeftX-b.Left.Width),
		TopLeftY:     math.Max(0, r.TopLeftY-b.Top.Width),
		TopRightX:    math.Max(0, r.TopRightX-b.Right.Width),
		TopRightY:    math.Max(0, r.TopRightY-b.Top.Width),
		BottomRightX: math.Max(0, r.BottomRightX-b.Right.Width),
		BottomRightY: math.Max(0, r.BottomRightY-b.Bottom.Width),
		BottomLeftX:  math.Max(0, r.BottomLeftX-b.Left.Width),
		BottomLeftY:  math.Max(0, r.BottomLeftY-b.Bottom.Width),
	}
}

type Borders struct {
	Left, Top, Right, Bottom Border
	Radius                   BorderRadiuses
}

type BackgroundRepeat uint8

const (
	RepeatBoth BackgroundRepeat = iota
	RepeatX
	RepeatY
	RepeatNone
)

func ParseBackgroundRepeat(s string) BackgroundRepeat {
	switch s {
	case "repeat-x":
		return RepeatX
	case "repeat-y":
		return RepeatY
	case "no-repeat", "none":
		return RepeatNone
	default:
		return RepeatBoth
	}
}

type BackgroundAttachment uint8

const (
	AttachmentScroll BackgroundAttachment = iota
	AttachmentFixed
)

type BackgroundPaint struct {
	Image      string
	BaseURL    string
	Attachment BackgroundAttachment
	Repeat     BackgroundRepeat
	Color      WebColor
	ClipBox    Position
	OriginBox  Position
	BorderBox  Position
	Radius     BorderRadiuses
	ImageSize  Size
	PositionX  float64
	PositionY  float64
	IsRoot     bool
}

type ListStyleType uint8

const (
	ListStyleNone ListStyleType = iota
	ListStyleDisc
	ListStyleCircle
	ListStyleSquare
	ListStyleDecimal
	ListStyleDecimalLeadingZero
	ListStyleLowerAlpha
	ListStyleUpperAlpha
	ListStyleLowerRoman
	ListStyleUpperRoman
)

var listStyleNames = [...]string{"none", "disc", "circle", "square", "decimal", "decimal-leading-zero",
	"lower-alpha", "upper-alpha", "lower-roman", "upper-roman"}

func (t ListStyleType) String() string {
	if int(t) < len(listStyleNames) {
		return listStyleNames[t]
	}
	return fmt.Sprintf("ListStyleType(%d)", t)
}

func ParseListStyleType(s string) ListStyleType {
	switch s {
	case "lower-latin":
		return ListStyleLowerAlpha
	case "upper-latin":
		return ListStyleUpperAlpha
	}
	for i, name := range listStyleNames {
		if name == s {
			return ListStyleType(i)
		}
	}
	return ListStyleDisc
}

type ListMarker struct {
	Image   string
	BaseURL string
	Type    ListStyleType
	Color   WebColor
	Pos     Position
	Index   int
	Font    FontHandle
}

type MediaType uint8

const (
	MediaTypeScreen MediaType = iota
	MediaTypePrint
	MediaTypeAll
)

type MediaFeatures struct {
	Type         MediaType
	Width        float64
	Height       float64
	DeviceWidth  float64
	DeviceHeight float64
	Color        int
	ColorIndex   int
	Monochrome   int
	Resolution   float64
}

type TextTransform uint8

const (
	TextTransformNone TextTransform = iota
	TextTransformCapitalize
	TextTransformUppercase
	TextTransformLowercase
)
