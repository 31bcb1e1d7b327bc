package border

import (
	"htmlcanvas/container"
)

// thirds returns b with every border width scaled to a third.
func thirds(b container.Borders) container.Borders {
	b.Left.Width /= 3
	b.Top.Width /= 3
	b.Right.Width /= 3
	b.Bottom.Width /= 3
	return b
}

// inset shrinks box by the given fractions of each border width and shrinks
// the radii to match.
func inset(box container.Position, b container.Borders, frac float64) (container.Position, container.Borders) {
	l := effectiveWidth(b.Left) * frac
	t := effectiveWidth(b.Top) * frac
	r := effectiveWidth(b.Right) * frac
	bt := effectiveWidth(b.Bottom) * frac
	inner := container.Position{X: box.X + l, Y: box.Y + t, Width: box.Width - l - r, Height: box.Height - t - bt}
	shrunk := b
	shrunk.Left.Width, shrunk.Top.Width, shrunk.Right.Width, shrunk.Bottom.Width = l, t, r, bt
	rad := b.Radius.Clamp(box.Width, box.Height).Inset(shrunk)
	out := b
	out.Radius = rad
	return inner, out
}

// Double returns the two bands of a double border on side s: the outer
// third and the inner third of the width. The middle third is left empty.
func Double(box container.Position, b container.Borders, s Side) []Edge {
	var bands []Edge
	outer := thirds(b)
	innerBox, innerBorders := inset(box, b, 2.0/3)
	for _, e := range Edges(box, outer) {
		if e.Side == s {
			bands = append(bands, e)
		}
	}
	if innerBox.Empty() {
		return bands
	}
	for _, e := range Edges(innerBox, thirds(innerBorders)) {
		if e.Side == s {
			bands = append(bands, e)
		}
	}
	return bands
}

// SquareCorners reports whether both corners touching side s are unrounded,
// which is when dashed and dotted edges can be stroked as straight lines.
func SquareCorners(box container.Position, b container.Borders, s Side) bool {
	cs := corners(box, b)
	info := sideInfo[s]
	return !cs[info.start].rounded() && !cs[info.end].rounded()
}

// CenterLine returns the line through the middle of side s, end to end.
func CenterLine(box container.Position, b container.Borders, s Side) (x1, y1, x2, y2 float64) {
	switch s {
	case Top:
		y := box.Top() + effectiveWidth(b.Top)/2
		return box.Left(), y, box.Right(), y
	case Right:
		x := box.Right() - effectiveWidth(b.Right)/2
		return x, box.Top(), x, box.Bottom()
	case Bottom:
		y := box.Bottom() - effectiveWidth(b.Bottom)/2
		return box.Right(), y, box.Left(), y
	default:
		x := box.Left() + effectiveWidth(b.Left)/2
		return x, box.Bottom(), x, box.Top()
	}
}

// Dash returns the stroke dash pattern for a dotted or dashed edge of
// width w, or nil for any other style.
func Dash(style container.BorderStyle, w float64) []float64 {
	switch style {
	case container.BorderStyleDotted:
		return []float64{w, w}
	case container.BorderStyleDashed:
		return []float64{3 * w, 3 * w}
	}
	return nil
}
