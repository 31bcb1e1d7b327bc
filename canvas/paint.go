package canvas

import (
	"image"
	"math"

	"htmlcanvas/border"
	"htmlcanvas/container"
	"htmlcanvas/rect"
)

// paint runs fn inside a saved graphics state with the clip stack applied.
// gg's Pop keeps the current mask, so the mask is reset explicitly on both
// sides.
func (c *Container) paint(name string, clipped bool, fn func()) {
	defer c.trace.Span(name)()
	c.ctx.Push()
	defer func() {
		c.ctx.ResetClip()
		c.ctx.ClearPath()
		c.ctx.Pop()
	}()
	c.ctx.ClearPath()
	c.ctx.ResetClip()
	if clipped {
		c.applyClip()
	}
	fn()
}

// applyClip intersects every region on the clip stack, outermost first.
func (c *Container) applyClip() {
	for _, clip := range c.clips {
		border.RoundedRect(c.ctx, clip.pos, clip.radius)
		c.ctx.Clip()
	}
}

// ClipBounds is the canvas area left after intersecting the clip stack
// rectangles, ignoring corner radii.
func (c *Container) ClipBounds() rect.Rect {
	bounds := rect.XYWH(0, 0, float64(c.ctx.Width()), float64(c.ctx.Height()))
	for _, clip := range c.clips {
		bounds = bounds.Intersect(clip.pos.Rect())
	}
	return bounds
}

// visible reports whether anything drawn inside pos can reach the canvas.
// Empty boxes never do. Antialiasing may bleed one pixel past pos.
func (c *Container) visible(pos container.Position) bool {
	if pos.Empty() {
		return false
	}
	bounds := c.ClipBounds()
	box := pos.Rect().Inflate(1, 1)
	if bounds.IsEmpty() || !bounds.Intersects(box) {
		container.Logger().Debug("paint culled", "box", box, "clip", bounds)
		return false
	}
	return true
}

func (c *Container) SetClip(pos container.Position, radius container.BorderRadiuses, validX, validY bool) {
	client := c.ClientRect()
	if !validX {
		pos.X, pos.Width = client.X, client.Width
	}
	if !validY {
		pos.Y, pos.Height = client.Y, client.Height
	}
	c.clips = append(c.clips, clipEntry{pos: pos, radius: radius})
}

func (c *Container) DelClip() {
	if len(c.clips) == 0 {
		container.Logger().Warn("DelClip without matching SetClip")
		return
	}
	c.clips = c.clips[:len(c.clips)-1]
}

func (c *Container) ClipDepth() int {
	return len(c.clips)
}

// ResetClip drops any clip regions left over from an unbalanced paint.
func (c *Container) ResetClip() {
	if len(c.clips) > 0 {
		container.Logger().Warn("clip stack not empty between paints", "depth", len(c.clips))
	}
	c.clips = c.clips[:0]
}

func (c *Container) DrawText(text string, h container.FontHandle, col container.WebColor, pos container.Position) {
	face, desc, m, ok := c.fonts.Face(h)
	if !ok {
		container.Logger().Warn("DrawText with unknown font handle", "handle", h)
		return
	}
	c.paint("draw_text", true, func() {
		c.ctx.SetColor(col.NRGBA())
		c.ctx.SetFontFace(face)
		baseline := pos.Y + m.Ascent
		c.ctx.DrawString(text, pos.X, baseline)
		if desc.Decoration == container.DecorationNone {
			return
		}

		width := c.fonts.TextWidth(text, h)
		c.ctx.SetLineWidth(math.Max(1, desc.Size/14))
		if desc.Decoration&container.DecorationUnderline != 0 {
			y := baseline + math.Max(1, m.Descent/2)
			c.ctx.DrawLine(pos.X, y, pos.X+width, y)
		}
		if desc.Decoration&container.DecorationLineThrough != 0 {
			y := baseline - m.XHeight/2
			c.ctx.DrawLine(pos.X, y, pos.X+width, y)
		}
		if desc.Decoration&container.DecorationOverline != 0 {
			c.ctx.DrawLine(pos.X, pos.Y, pos.X+width, pos.Y)
		}
		c.ctx.Stroke()
	})
}

func (c *Container) DrawBackground(bg container.BackgroundPaint) {
	if !bg.IsRoot && !c.visible(bg.ClipBox) {
		return
	}
	c.paint("draw_background", true, func() {
		if !bg.Color.IsTransparent() {
			c.ctx.SetColor(bg.Color.NRGBA())
			if bg.IsRoot {
				// the root background covers the whole canvas
				c.ctx.DrawRectangle(0, 0, float64(c.ctx.Width()), float64(c.ctx.Height()))
			} else {
				border.RoundedRect(c.ctx, bg.ClipBox, bg.Radius)
			}
			c.ctx.Fill()
		}
		if bg.Image == "" || bg.ClipBox.Empty() {
			return
		}

		u, err := c.resolve(bg.Image, bg.BaseURL)
		if err != nil {
			container.Logger().Warn("background image URL", "src", bg.Image, "err", err)
			return
		}
		var w, h int
		if !bg.ImageSize.IsZero() {
			w, h = int(math.Round(bg.ImageSize.Width)), int(math.Round(bg.ImageSize.Height))
		}
		img, ok := c.images.Scaled(u.String(), w, h)
		if !ok {
			container.Logger().Debug("background image not loaded", "src", u.String())
			return
		}
		area := bg.ClipBox.Rect().Intersect(c.ClipBounds()).RoundOutToInt()
		if area.Empty() {
			return
		}

		border.RoundedRect(c.ctx, bg.ClipBox, bg.Radius)
		c.ctx.Clip()

		originX := bg.OriginBox.X + bg.PositionX
		originY := bg.OriginBox.Y + bg.PositionY
		if bg.Attachment == container.AttachmentFixed {
			originX, originY = bg.PositionX, bg.PositionY
		}
		size := img.Bounds().Size()
		xs, ys := TilePositions(bg.Repeat, originX, originY, float64(size.X), float64(size.Y), area)
		for _, y := range ys {
			for _, x := range xs {
				c.ctx.DrawImage(img, int(math.Round(x)), int(math.Round(y)))
			}
		}
	})
}

// TilePositions lists where background tiles go so that, along each
// repeating axis, they cover area completely.
func TilePositions(repeat container.BackgroundRepeat, originX, originY, tileW, tileH float64, area image.Rectangle) (xs, ys []float64) {
	xs = []float64{originX}
	ys = []float64{originY}
	if repeat == container.RepeatX || repeat == container.RepeatBoth {
		xs = tiles(originX, tileW, float64(area.Min.X), float64(area.Max.X))
	}
	if repeat == container.RepeatY || repeat == container.RepeatBoth {
		ys = tiles(originY, tileH, float64(area.Min.Y), float64(area.Max.Y))
	}
	return xs, ys
}

func tiles(origin, step, lo, hi float64) []float64 {
	if step <= 0 {
		return []float64{origin}
	}
	start := origin - math.Ceil((origin-lo)/step)*step
	var out []float64
	for v := start; v < hi; v += step {
		out = append(out, v)
	}
	return out
}

func (c *Container) DrawBorders(b container.Borders, drawPos container.Position, isRoot bool) {
	if !isRoot && !c.visible(drawPos) {
		return
	}
	// the root element has no clipping ancestor
	c.paint("draw_borders", !isRoot, func() {
		for _, e := range border.Edges(drawPos, b) {
			c.drawEdge(drawPos, b, e)
		}
	})
}

func (c *Container) drawEdge(box container.Position, b container.Borders, e border.Edge) {
	col := e.Color
	switch e.Style {
	case container.BorderStyleDouble:
		if e.Width >= 3 {
			c.ctx.SetColor(col.NRGBA())
			for _, band := range border.Double(box, b, e.Side) {
				border.Emit(c.ctx, band)
			}
			c.ctx.Fill()
			return
		}
	case container.BorderStyleDotted, container.BorderStyleDashed:
		if border.SquareCorners(box, b, e.Side) {
			x1, y1, x2, y2 := border.CenterLine(box, b, e.Side)
			c.ctx.Push()
			c.ctx.SetColor(col.NRGBA())
			c.ctx.SetLineWidth(e.Width)
			c.ctx.SetLineCapButt()
			c.ctx.SetDash(border.Dash(e.Style, e.Width)...)
			c.ctx.DrawLine(x1, y1, x2, y2)
			c.ctx.Stroke()
			c.ctx.Pop()
			return
		}
	case container.BorderStyleInset, container.BorderStyleGroove:
		if e.Side == border.Top || e.Side == border.Left {
			col = col.Darken(0.6)
		}
	case container.BorderStyleOutset, container.BorderStyleRidge:
		if e.Side == border.Bottom || e.Side == border.Right {
			col = col.Darken(0.6)
		}
	}
	c.ctx.SetColor(col.NRGBA())
	border.Emit(c.ctx, e)
	c.ctx.Fill()
}

func (c *Container) DrawListMarker(m container.ListMarker) {
	if !c.visible(m.Pos) {
		return
	}
	c.paint("draw_list_marker", true, func() {
		if m.Image != "" && c.drawMarkerImage(m) {
			return
		}
		if m.Type == container.ListStyleNone {
			return
		}
		c.ctx.SetColor(m.Color.NRGBA())
		cx := m.Pos.X + m.Pos.Width/2
		cy := m.Pos.Y + m.Pos.Height/2
		switch m.Type {
		case container.ListStyleDisc:
			c.ctx.DrawEllipse(cx, cy, m.Pos.Width/2, m.Pos.Height/2)
			c.ctx.Fill()
		case container.ListStyleCircle:
			c.ctx.SetLineWidth(1)
			c.ctx.DrawEllipse(cx, cy, math.Max(0.5, m.Pos.Width/2-0.5), math.Max(0.5, m.Pos.Height/2-0.5))
			c.ctx.Stroke()
		case container.ListStyleSquare:
			c.ctx.DrawRectangle(m.Pos.X, m.Pos.Y, m.Pos.Width, m.Pos.Height)
			c.ctx.Fill()
		default:
			c.drawMarkerText(m)
		}
	})
}

func (c *Container) drawMarkerImage(m container.ListMarker) bool {
	u, err := c.resolve(m.Image, m.BaseURL)
	if err != nil {
		return false
	}
	img, ok := c.images.Scaled(u.String(), int(math.Round(m.Pos.Width)), int(math.Round(m.Pos.Height)))
	if !ok {
		return false
	}
	c.ctx.DrawImage(img, int(math.Round(m.Pos.X)), int(math.Round(m.Pos.Y)))
	return true
}

func (c *Container) drawMarkerText(m container.ListMarker) {
	text := MarkerText(m.Type, m.Index)
	h := m.Font
	face, _, metrics, ok := c.fonts.Face(h)
	if !ok {
		tmp, _ := c.fonts.Create(container.FontDescription{
			Family: c.settings.Fonts.DefaultName,
			Size:   c.settings.Fonts.DefaultSize,
			Weight: 400,
		})
		defer c.fonts.Delete(tmp)
		h = tmp
		face, _, metrics, _ = c.fonts.Face(h)
	}
	if face == nil {
		return
	}
	c.ctx.SetFontFace(face)
	width := c.fonts.TextWidth(text, h)
	c.ctx.DrawString(text, m.Pos.Right()-width, m.Pos.Y+metrics.Ascent)
}
