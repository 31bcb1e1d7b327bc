// Package border builds the fill geometry for CSS borders: four independent
// edges, each with its own width and colour, joined at elliptical corners.
//
// A rounded corner is split between its two edges at an angle proportional to
// the edge widths, so a thick top edge meeting a thin left edge takes most of
// the top-left arc. Square corners produce the usual mitred trapezoids.
package border

import (
	"math"

	"htmlcanvas/container"
)

type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return "left"
	}
}

type OpKind uint8

const (
	MoveTo OpKind = iota
	LineTo
	Arc
	Close
)

// Op is one path instruction. Arc ops trace the ellipse centred at (X, Y)
// with radii RX, RY from angle A1 to A2 (radians, y axis pointing down).
type Op struct {
	Kind   OpKind
	X, Y   float64
	RX, RY float64
	A1, A2 float64
}

// Edge is the closed fill path of one border side.
type Edge struct {
	Side  Side
	Width float64
	Style container.BorderStyle
	Color container.WebColor
	Ops   []Op
}

// Pather is the subset of a path-building canvas the geometry is replayed
// onto. *gg.Context implements it.
type Pather interface {
	NewSubPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	DrawEllipticalArc(x, y, rx, ry, angle1, angle2 float64)
	ClosePath()
}

// corner describes one box corner: the ellipse centre, the outer and inner
// radii, and the square-corner fallback points.
type corner struct {
	cx, cy   float64
	rx, ry   float64
	irx, iry float64
	ox, oy   float64
	ix, iy   float64
}

func (c corner) rounded() bool      { return c.rx > 0 && c.ry > 0 }
func (c corner) innerRounded() bool { return c.rounded() && c.irx > 0 && c.iry > 0 }

func (c corner) outerPoint(a float64) (float64, float64) {
	return c.cx + c.rx*math.Cos(a), c.cy + c.ry*math.Sin(a)
}

func (c corner) innerPoint(a float64) (float64, float64) {
	return c.cx + c.irx*math.Cos(a), c.cy + c.iry*math.Sin(a)
}

// effectiveWidth treats none/hidden edges as zero width, which is their
// computed CSS value.
func effectiveWidth(b container.Border) float64 {
	if b.Style == container.BorderStyleNone || b.Style == container.BorderStyleHidden || b.Width < 0 {
		return 0
	}
	return b.Width
}

// SplitAngle is the share of a quarter arc owned by an edge of width w whose
// neighbour at that corner has width adjacent.
func SplitAngle(w, adjacent float64) float64 {
	if adjacent <= 0 {
		return math.Pi / 2
	}
	if w <= 0 {
		return 0
	}
	return math.Pi / 2 * w / (w + adjacent)
}

func corners(box container.Position, b container.Borders) [4]corner {
	l, t, r, btm := box.Left(), box.Top(), box.Right(), box.Bottom()
	wl, wt := effectiveWidth(b.Left), effectiveWidth(b.Top)
	wr, wb := effectiveWidth(b.Right), effectiveWidth(b.Bottom)
	rad := b.Radius.Clamp(box.Width, box.Height)

	return [4]corner{
		// top-left, top-right, bottom-right, bottom-left
		{
			cx: l + rad.TopLeftX, cy: t + rad.TopLeftY,
			rx: rad.TopLeftX, ry: rad.TopLeftY,
			irx: rad.TopLeftX - wl, iry: rad.TopLeftY - wt,
			ox: l, oy: t, ix: l + wl, iy: t + wt,
		},
		{
			cx: r - rad.TopRightX, cy: t + rad.TopRightY,
			rx: rad.TopRightX, ry: rad.TopRightY,
			irx: rad.TopRightX - wr, iry: rad.TopRightY - wt,
			ox: r, oy: t, ix: r - wr, iy: t + wt,
		},
		{
			cx: r - rad.BottomRightX, cy: btm - rad.BottomRightY,
			rx: rad.BottomRightX, ry: rad.BottomRightY,
			irx: rad.BottomRightX - wr, iry: rad.BottomRightY - wb,
			ox: r, oy: btm, ix: r - wr, iy: btm - wb,
		},
		{
			cx: l + rad.BottomLeftX, cy: btm - rad.BottomLeftY,
			rx: rad.BottomLeftX, ry: rad.BottomLeftY,
			irx: rad.BottomLeftX - wl, iry: rad.BottomLeftY - wb,
			ox: l, oy: btm, ix: l + wl, iy: btm - wb,
		},
	}
}

// sideInfo lists, for each side in clockwise order, its starting and ending
// corner index and the angle pointing outwards from the box along that side.
var sideInfo = [4]struct {
	start, end int
	axis       float64
}{
	Top:    {0, 1, 3 * math.Pi / 2},
	Right:  {1, 2, 0},
	Bottom: {2, 3, math.Pi / 2},
	Left:   {3, 0, math.Pi},
}

func sideBorder(b container.Borders, s Side) container.Border {
	switch s {
	case Top:
		return b.Top
	case Right:
		return b.Right
	case Bottom:
		return b.Bottom
	default:
		return b.Left
	}
}

// neighbours returns the widths of the edges before and after s clockwise.
func neighbours(b container.Borders, s Side) (before, after float64) {
	return effectiveWidth(sideBorder(b, (s+3)%4)), effectiveWidth(sideBorder(b, (s+1)%4))
}

// Edges returns one closed path per visible border side of box.
func Edges(box container.Position, b container.Borders) []Edge {
	if box.Empty() {
		return nil
	}
	cs := corners(box, b)
	edges := make([]Edge, 0, 4)
	for s := Top; s <= Left; s++ {
		bd := sideBorder(b, s)
		if !bd.Visible() {
			continue
		}
		edges = append(edges, Edge{
			Side:  s,
			Width: bd.Width,
			Style: bd.Style,
			Color: bd.Color,
			Ops:   sideOps(cs, b, s),
		})
	}
	return edges
}

func sideOps(cs [4]corner, b container.Borders, s Side) []Op {
	info := sideInfo[s]
	w := effectiveWidth(sideBorder(b, s))
	before, after := neighbours(b, s)
	start, end := cs[info.start], cs[info.end]
	s1 := SplitAngle(w, before)
	s2 := SplitAngle(w, after)
	ops := make([]Op, 0, 9)

	// outer contour, start corner then end corner
	if start.rounded() {
		x, y := start.outerPoint(info.axis - s1)
		ops = append(ops, Op{Kind: MoveTo, X: x, Y: y})
		ops = append(ops, Op{Kind: Arc, X: start.cx, Y: start.cy, RX: start.rx, RY: start.ry, A1: info.axis - s1, A2: info.axis})
	} else {
		ops = append(ops, Op{Kind: MoveTo, X: start.ox, Y: start.oy})
	}
	if end.rounded() {
		x, y := end.outerPoint(info.axis)
		ops = append(ops, Op{Kind: LineTo, X: x, Y: y})
		ops = append(ops, Op{Kind: Arc, X: end.cx, Y: end.cy, RX: end.rx, RY: end.ry, A1: info.axis, A2: info.axis + s2})
	} else {
		ops = append(ops, Op{Kind: LineTo, X: end.ox, Y: end.oy})
	}

	// inner contour, walked back
	if end.innerRounded() {
		x, y := end.innerPoint(info.axis + s2)
		ops = append(ops, Op{Kind: LineTo, X: x, Y: y})
		ops = append(ops, Op{Kind: Arc, X: end.cx, Y: end.cy, RX: end.irx, RY: end.iry, A1: info.axis + s2, A2: info.axis})
	} else {
		ops = append(ops, Op{Kind: LineTo, X: end.ix, Y: end.iy})
	}
	if start.innerRounded() {
		x, y := start.innerPoint(info.axis)
		ops = append(ops, Op{Kind: LineTo, X: x, Y: y})
		ops = append(ops, Op{Kind: Arc, X: start.cx, Y: start.cy, RX: start.irx, RY: start.iry, A1: info.axis, A2: info.axis - s1})
	} else {
		ops = append(ops, Op{Kind: LineTo, X: start.ix, Y: start.iy})
	}
	return append(ops, Op{Kind: Close})
}

// Emit replays an edge onto p as its own subpath.
func Emit(p Pather, e Edge) {
	EmitOps(p, e.Ops)
}

func EmitOps(p Pather, ops []Op) {
	p.NewSubPath()
	for _, op := range ops {
		switch op.Kind {
		case MoveTo:
			p.MoveTo(op.X, op.Y)
		case LineTo:
			p.LineTo(op.X, op.Y)
		case Arc:
			p.DrawEllipticalArc(op.X, op.Y, op.RX, op.RY, op.A1, op.A2)
		case Close:
			p.ClosePath()
		}
	}
}

// RoundedRectOps traces pos clockwise with elliptical corners.
func RoundedRectOps(pos container.Position, radii container.BorderRadiuses) []Op {
	r := radii.Clamp(pos.Width, pos.Height)
	l, t, rt, b := pos.Left(), pos.Top(), pos.Right(), pos.Bottom()
	ops := []Op{{Kind: MoveTo, X: l + r.TopLeftX, Y: t}}

	arc := func(cx, cy, rx, ry, a1, a2, sx, sy float64) {
		if rx > 0 && ry > 0 {
			ops = append(ops, Op{Kind: Arc, X: cx, Y: cy, RX: rx, RY: ry, A1: a1, A2: a2})
		} else {
			ops = append(ops, Op{Kind: LineTo, X: sx, Y: sy})
		}
	}

	ops = append(ops, Op{Kind: LineTo, X: rt - r.TopRightX, Y: t})
	arc(rt-r.TopRightX, t+r.TopRightY, r.TopRightX, r.TopRightY, 3*math.Pi/2, 2*math.Pi, rt, t)
	ops = append(ops, Op{Kind: LineTo, X: rt, Y: b - r.BottomRightY})
	arc(rt-r.BottomRightX, b-r.BottomRightY, r.BottomRightX, r.BottomRightY, 0, math.Pi/2, rt, b)
	ops = append(ops, Op{Kind: LineTo, X: l + r.BottomLeftX, Y: b})
	arc(l+r.BottomLeftX, b-r.BottomLeftY, r.BottomLeftX, r.BottomLeftY, math.Pi/2, math.Pi, l, b)
	ops = append(ops, Op{Kind: LineTo, X: l, Y: t + r.TopLeftY})
	arc(l+r.TopLeftX, t+r.TopLeftY, r.TopLeftX, r.TopLeftY, math.Pi, 3*math.Pi/2, l, t)
	return append(ops, Op{Kind: Close})
}

// RoundedRect emits the path of pos with the given corner radii.
func RoundedRect(p Pather, pos container.Position, radii container.BorderRadiuses) {
	EmitOps(p, RoundedRectOps(pos, radii))
}
