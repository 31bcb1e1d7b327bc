// Package canvas implements container.DocumentContainer on top of a
// fogleman/gg raster context.
package canvas

import (
	"github.com/fogleman/gg"

	"htmlcanvas/config"
	"htmlcanvas/container"
	"htmlcanvas/font"
	"htmlcanvas/images"
	"htmlcanvas/trace"
	"htmlcanvas/url"
)

// AnchorHandler receives the resolved target of a followed link.
type AnchorHandler func(target string)

// Fetcher retrieves the bytes behind a resolved URL.
type Fetcher func(u *url.URL) ([]byte, error)

type clipEntry struct {
	pos    container.Position
	radius container.BorderRadiuses
}

// Container paints layout-engine callbacks onto a gg.Context. It is driven
// from a single goroutine and holds no locks.
type Container struct {
	ctx      *gg.Context
	settings *config.Settings
	fonts    *font.Registry
	images   *images.Cache
	clips    []clipEntry
	trace    *trace.MeasureTime
	fetch    Fetcher
	anchor   AnchorHandler

	baseURL string
	caption string
	cursor  string
}

var _ container.DocumentContainer = (*Container)(nil)

type Option func(*Container)

func WithFonts(r *font.Registry) Option {
	return func(c *Container) { c.fonts = r }
}

func WithImageCache(cache *images.Cache) Option {
	return func(c *Container) { c.images = cache }
}

func WithTrace(m *trace.MeasureTime) Option {
	return func(c *Container) { c.trace = m }
}

func WithFetcher(f Fetcher) Option {
	return func(c *Container) { c.fetch = f }
}

func WithAnchorHandler(h AnchorHandler) Option {
	return func(c *Container) { c.anchor = h }
}

// New wraps ctx. With nil settings the defaults are used and the viewport
// matches the context size.
func New(ctx *gg.Context, settings *config.Settings, opts ...Option) *Container {
	if settings == nil {
		settings = config.Default()
		settings.Viewport.Width = float64(ctx.Width())
		settings.Viewport.Height = float64(ctx.Height())
	}
	c := &Container{
		ctx:      ctx,
		settings: settings,
		fetch:    (*url.URL).Fetch,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fonts == nil {
		c.fonts = font.NewRegistry(settings)
	}
	if c.images == nil {
		c.images = images.NewCache()
	}
	return c
}

func (c *Container) Context() *gg.Context { return c.ctx }
func (c *Container) Fonts() *font.Registry { return c.fonts }
func (c *Container) Images() *images.Cache { return c.images }
func (c *Container) Settings() *config.Settings { return c.settings }

// Close releases cached font faces.
func (c *Container) Close() {
	c.fonts.Close()
}
