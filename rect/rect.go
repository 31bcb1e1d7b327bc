package rect

import (
	"fmt"
	"image"
	"math"
)

// Rect is an axis-aligned box in canvas pixels, edges inclusive on the
// top/left and exclusive on the bottom/right.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func New(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// XYWH builds a rect from an origin and a size.
func XYWH(x, y, width, height float64) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left < right && top < bottom {
		return New(left, top, right, bottom)
	}
	return Rect{}
}

func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.Left - dx, r.Top - dy, r.Right + dx, r.Bottom + dy}
}

func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

func (r Rect) RoundOutToInt() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)),
		int(math.Ceil(r.Bottom)),
	)
}

func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right && r.Right > other.Left &&
		r.Top < other.Bottom && r.Bottom > other.Top
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(left=%.2f, top=%.2f, right=%.2f, bottom=%.2f)", r.Left, r.Top, r.Right, r.Bottom)
}
