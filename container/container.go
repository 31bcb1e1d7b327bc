// Package container defines the boundary between an HTML/CSS layout engine
// and the host that measures and paints for it. The engine calls the
// DocumentContainer methods synchronously from its layout and paint passes;
// implementations never block and never return errors; missing resources
// degrade to defaults.
package container

// DocumentContainer is the callback set a layout engine drives.
type DocumentContainer interface {
	FontService
	PaintSurface
	ResourceQueries
}

type FontService interface {
	// CreateFont resolves desc to a concrete font. The handle is owned by
	// the caller and must be released with DeleteFont exactly once.
	CreateFont(desc FontDescription) (FontHandle, FontMetrics)
	DeleteFont(h FontHandle)
	TextWidth(text string, h FontHandle) float64
	DefaultFontSize() float64
	DefaultFontName() string
	PtToPx(pt float64) float64
}

type PaintSurface interface {
	DrawText(text string, h FontHandle, c WebColor, pos Position)
	DrawBackground(bg BackgroundPaint)
	DrawBorders(b Borders, drawPos Position, isRoot bool)
	DrawListMarker(m ListMarker)

	// SetClip and DelClip nest strictly; the stack is empty between
	// top-level paints. An axis whose valid flag is false is not clipped:
	// it spans the client rect instead.
	SetClip(pos Position, radius BorderRadiuses, validX, validY bool)
	DelClip()
}

type ResourceQueries interface {
	LoadImage(src, baseURL string, redrawOnReady bool)
	ImageSize(src, baseURL string) Size
	MediaFeatures() MediaFeatures
	Language() (language, culture string)
	ClientRect() Position
	TransformText(text string, tt TextTransform) string
	SetCaption(caption string)
	SetBaseURL(baseURL string)
	OnAnchorClick(url string)
	SetCursor(cursor string)
	ImportCSS(url, baseURL string) (text, resolvedURL string)
}
