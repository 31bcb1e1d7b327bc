package border

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlcanvas/container"
)

var red = container.WebColor{R: 255, A: 255}

func solid(w float64) container.Border {
	return container.Border{Width: w, Style: container.BorderStyleSolid, Color: red}
}

func uniform(w float64) container.Borders {
	return container.Borders{Left: solid(w), Top: solid(w), Right: solid(w), Bottom: solid(w)}
}

type recorder struct {
	subpaths int
	closes   int
	ops      []string
}

func (r *recorder) NewSubPath()         { r.subpaths++ }
func (r *recorder) MoveTo(x, y float64) { r.ops = append(r.ops, "M") }
func (r *recorder) LineTo(x, y float64) { r.ops = append(r.ops, "L") }
func (r *recorder) ClosePath()          { r.closes++ }
func (r *recorder) DrawEllipticalArc(x, y, rx, ry, a1, a2 float64) {
	r.ops = append(r.ops, "A")
}

func TestSquareCornersMitre(t *testing.T) {
	box := container.Position{Width: 100, Height: 50}
	edges := Edges(box, uniform(10))
	require.Len(t, edges, 4)

	top := edges[0]
	assert.Equal(t, Top, top.Side)
	assert.Equal(t, []Op{
		{Kind: MoveTo, X: 0, Y: 0},
		{Kind: LineTo, X: 100, Y: 0},
		{Kind: LineTo, X: 90, Y: 10},
		{Kind: LineTo, X: 10, Y: 10},
		{Kind: Close},
	}, top.Ops)

	left := edges[3]
	assert.Equal(t, Left, left.Side)
	assert.Equal(t, []Op{
		{Kind: MoveTo, X: 0, Y: 50},
		{Kind: LineTo, X: 0, Y: 0},
		{Kind: LineTo, X: 10, Y: 10},
		{Kind: LineTo, X: 10, Y: 40},
		{Kind: Close},
	}, left.Ops)
}

func TestInvisibleSidesSkipped(t *testing.T) {
	b := uniform(4)
	b.Top.Width = 0
	b.Right.Style = container.BorderStyleHidden
	b.Bottom.Style = container.BorderStyleNone
	edges := Edges(container.Position{Width: 20, Height: 20}, b)
	require.Len(t, edges, 1)
	assert.Equal(t, Left, edges[0].Side)
}

func TestHiddenNeighbourDoesNotShareCorner(t *testing.T) {
	b := uniform(4)
	b.Top.Style = container.BorderStyleHidden
	edges := Edges(container.Position{Width: 20, Height: 20}, b)
	for _, e := range edges {
		if e.Side == Left {
			// inner corner at the top sits on the outer top edge
			assert.Equal(t, Op{Kind: LineTo, X: 4, Y: 0}, e.Ops[2])
		}
	}
}

func TestSplitAngleProportional(t *testing.T) {
	assert.InDelta(t, math.Pi/2*0.75, SplitAngle(30, 10), 1e-12)
	assert.InDelta(t, math.Pi/2, SplitAngle(30, 10)+SplitAngle(10, 30), 1e-12)
	assert.InDelta(t, math.Pi/2, SplitAngle(5, 0), 1e-12)
	assert.Zero(t, SplitAngle(0, 5))
}

func TestRoundedCornerSplitsArc(t *testing.T) {
	b := container.Borders{Top: solid(30), Left: solid(10), Right: solid(10), Bottom: solid(10)}
	b.Radius = container.UniformRadius(40)
	edges := Edges(container.Position{Width: 200, Height: 200}, b)
	require.Len(t, edges, 4)

	top, left := edges[0], edges[3]
	require.Equal(t, Arc, top.Ops[1].Kind)
	topShare := top.Ops[1].A2 - top.Ops[1].A1

	// the left edge ends at the top-left corner: its second arc
	var leftShare float64
	for _, op := range left.Ops {
		if op.Kind == Arc && op.A1 == math.Pi && op.RX == 40 {
			leftShare = op.A2 - op.A1
		}
	}
	assert.InDelta(t, math.Pi/2*0.75, topShare, 1e-12)
	assert.InDelta(t, math.Pi/2, topShare+leftShare, 1e-12)

	// inner radii shrink by the adjoining widths
	var inner *Op
	for i := range top.Ops {
		if top.Ops[i].Kind == Arc && top.Ops[i].RY == 10 {
			inner = &top.Ops[i]
		}
	}
	require.NotNil(t, inner)
	assert.Equal(t, 30.0, inner.RX)
}

func TestCollapsedInnerCorner(t *testing.T) {
	b := uniform(10)
	b.Radius = container.UniformRadius(5)
	edges := Edges(container.Position{Width: 50, Height: 50}, b)
	top := edges[0]
	assert.Equal(t, Arc, top.Ops[1].Kind)
	assert.Equal(t, Op{Kind: LineTo, X: 10, Y: 10}, top.Ops[len(top.Ops)-2])
	assert.Equal(t, Op{Kind: LineTo, X: 40, Y: 10}, top.Ops[len(top.Ops)-3])
}

func TestEmitClosesEverySubpath(t *testing.T) {
	b := uniform(3)
	b.Radius = container.UniformRadius(8)
	rec := &recorder{}
	edges := Edges(container.Position{X: 5, Y: 5, Width: 60, Height: 30}, b)
	for _, e := range edges {
		Emit(rec, e)
	}
	assert.Equal(t, 4, rec.subpaths)
	assert.Equal(t, 4, rec.closes)
	assert.Equal(t, "M", rec.ops[0])
	assert.Contains(t, rec.ops, "A")
}

func TestEmptyBox(t *testing.T) {
	assert.Empty(t, Edges(container.Position{Width: 0, Height: 10}, uniform(2)))
}

func TestRoundedRectOpsSquare(t *testing.T) {
	ops := RoundedRectOps(container.Position{X: 1, Y: 2, Width: 10, Height: 5}, container.BorderRadiuses{})
	for _, op := range ops {
		assert.NotEqual(t, Arc, op.Kind)
	}
	assert.Equal(t, Op{Kind: MoveTo, X: 1, Y: 2}, ops[0])
	assert.Equal(t, Close, ops[len(ops)-1].Kind)
}

func TestRoundedRectOpsArcs(t *testing.T) {
	ops := RoundedRectOps(container.Position{Width: 10, Height: 10}, container.UniformRadius(20))
	arcs := 0
	for _, op := range ops {
		if op.Kind == Arc {
			arcs++
			assert.Equal(t, 5.0, op.RX, "radii clamp to half the side")
		}
	}
	assert.Equal(t, 4, arcs)
}

func TestDoubleBands(t *testing.T) {
	box := container.Position{Width: 90, Height: 90}
	b := uniform(9)
	bands := Double(box, b, Top)
	require.Len(t, bands, 2)
	assert.Equal(t, 3.0, bands[0].Width)
	// outer band hugs the box edge, inner band starts two thirds in
	assert.Equal(t, Op{Kind: MoveTo, X: 0, Y: 0}, bands[0].Ops[0])
	assert.Equal(t, MoveTo, bands[1].Ops[0].Kind)
	assert.InDelta(t, 6, bands[1].Ops[0].X, 1e-9)
	assert.InDelta(t, 6, bands[1].Ops[0].Y, 1e-9)
}

func TestCenterLineAndDash(t *testing.T) {
	box := container.Position{Width: 40, Height: 20}
	x1, y1, x2, y2 := CenterLine(box, uniform(4), Top)
	assert.Equal(t, [4]float64{0, 2, 40, 2}, [4]float64{x1, y1, x2, y2})
	assert.Equal(t, []float64{4, 4}, Dash(container.BorderStyleDotted, 4))
	assert.Equal(t, []float64{12, 12}, Dash(container.BorderStyleDashed, 4))
	assert.Nil(t, Dash(container.BorderStyleSolid, 4))
	assert.True(t, SquareCorners(box, uniform(4), Top))
}
