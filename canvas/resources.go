package canvas

import (
	"strings"

	"golang.org/x/text/cases"

	"htmlcanvas/container"
	"htmlcanvas/url"
)

// resolve makes src absolute against baseURL, or the document base when
// baseURL is empty. Bare paths without any base are local files.
func (c *Container) resolve(src, baseURL string) (*url.URL, error) {
	if baseURL == "" {
		baseURL = c.baseURL
	}
	if baseURL == "" {
		if strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
			return url.NewURL(src)
		}
		return url.FromPath(src)
	}
	base, err := url.NewURL(baseURL)
	if err != nil {
		base, err = url.FromPath(baseURL)
		if err != nil {
			return nil, err
		}
	}
	return base.Resolve(src)
}

func (c *Container) LoadImage(src, baseURL string, redrawOnReady bool) {
	defer c.trace.Span("load_image")()
	u, err := c.resolve(src, baseURL)
	if err != nil {
		container.Logger().Warn("image URL", "src", src, "base", baseURL, "err", err)
		return
	}
	key := u.String()
	if _, err := c.images.Load(key, u.MediaType(), func() ([]byte, error) { return c.fetch(u) }); err != nil {
		container.Logger().Warn("image failed to load", "url", key, "err", err)
		return
	}
	// loading is synchronous, so the image is ready before any redraw
	container.Logger().Debug("image loaded", "url", key, "redraw", redrawOnReady)
}

func (c *Container) ImageSize(src, baseURL string) container.Size {
	u, err := c.resolve(src, baseURL)
	if err != nil {
		return container.Size{}
	}
	w, h := c.images.Size(u.String())
	return container.Size{Width: float64(w), Height: float64(h)}
}

func (c *Container) MediaFeatures() container.MediaFeatures {
	s := c.settings
	return container.MediaFeatures{
		Type:         container.MediaTypeScreen,
		Width:        s.Viewport.Width,
		Height:       s.Viewport.Height,
		DeviceWidth:  s.Screen.Width,
		DeviceHeight: s.Screen.Height,
		Color:        s.Screen.ColorDepth,
		ColorIndex:   s.Screen.ColorIndex,
		Monochrome:   s.Screen.Monochrome,
		Resolution:   s.Screen.DPI,
	}
}

func (c *Container) Language() (language, culture string) {
	return c.settings.Language()
}

// ClientRect is the visible viewport in document coordinates.
func (c *Container) ClientRect() container.Position {
	return container.Position{Width: c.settings.Viewport.Width, Height: c.settings.Viewport.Height}
}

func (c *Container) TransformText(text string, tt container.TextTransform) string {
	tag := c.settings.Tag()
	switch tt {
	case container.TextTransformUppercase:
		return cases.Upper(tag).String(text)
	case container.TextTransformLowercase:
		return cases.Lower(tag).String(text)
	case container.TextTransformCapitalize:
		return cases.Title(tag, cases.NoLower).String(text)
	}
	return text
}

func (c *Container) SetCaption(caption string) {
	c.caption = caption
}

func (c *Container) Caption() string { return c.caption }

func (c *Container) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

func (c *Container) BaseURL() string { return c.baseURL }

func (c *Container) OnAnchorClick(href string) {
	target := href
	if u, err := c.resolve(href, ""); err == nil {
		target = u.String()
	}
	if c.anchor == nil {
		container.Logger().Info("anchor clicked", "target", target)
		return
	}
	c.anchor(target)
}

func (c *Container) SetCursor(cursor string) {
	c.cursor = cursor
}

func (c *Container) Cursor() string { return c.cursor }

// ImportCSS fetches an @import target. Failures yield empty text so the
// engine carries on without the sheet.
func (c *Container) ImportCSS(href, baseURL string) (text, resolvedURL string) {
	defer c.trace.Span("import_css")()
	u, err := c.resolve(href, baseURL)
	if err != nil {
		container.Logger().Warn("stylesheet URL", "href", href, "err", err)
		return "", href
	}
	resolvedURL = u.String()
	data, err := c.fetch(u)
	if err != nil {
		container.Logger().Warn("stylesheet failed to load", "url", resolvedURL, "err", err)
		return "", resolvedURL
	}
	return string(data), resolvedURL
}
