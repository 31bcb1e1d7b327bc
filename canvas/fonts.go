package canvas

import (
	"htmlcanvas/container"
)

func (c *Container) CreateFont(desc container.FontDescription) (container.FontHandle, container.FontMetrics) {
	return c.fonts.Create(desc)
}

func (c *Container) DeleteFont(h container.FontHandle) {
	c.fonts.Delete(h)
}

func (c *Container) TextWidth(text string, h container.FontHandle) float64 {
	return c.fonts.TextWidth(text, h)
}

func (c *Container) DefaultFontSize() float64 {
	return c.settings.Fonts.DefaultSize
}

func (c *Container) DefaultFontName() string {
	return c.settings.Fonts.DefaultName
}

func (c *Container) PtToPx(pt float64) float64 {
	return pt * c.settings.Screen.DPI / 72
}
