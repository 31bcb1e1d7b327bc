// Package font turns layout-engine font requests into loaded faces and hands
// out the opaque handles the engine holds on to.
package font

import (
	"math"
	"strings"

	"github.com/adrg/sysfont"
	"github.com/fogleman/gg"
	fnt "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"htmlcanvas/config"
	"htmlcanvas/container"
)

// Matcher finds the installed font closest to a free-form query such as
// "DejaVu Sans bold italic". *sysfont.Finder implements it.
type Matcher interface {
	Match(query string) *sysfont.Font
}

// FaceLoader opens a font file at a pixel size.
type FaceLoader func(path string, size float64) (fnt.Face, error)

type faceKey struct {
	File string
	Size float64
}

type entry struct {
	face    fnt.Face
	desc    container.FontDescription
	metrics container.FontMetrics
}

type Registry struct {
	settings *config.Settings
	matcher  Matcher
	load     FaceLoader
	faces    map[faceKey]fnt.Face
	handles  map[container.FontHandle]*entry
	next     container.FontHandle
}

type Option func(*Registry)

// WithMatcher replaces the system font finder.
func WithMatcher(m Matcher) Option {
	return func(r *Registry) { r.matcher = m }
}

// WithLoader replaces the font file loader.
func WithLoader(l FaceLoader) Option {
	return func(r *Registry) { r.load = l }
}

func NewRegistry(settings *config.Settings, opts ...Option) *Registry {
	if settings == nil {
		settings = config.Default()
	}
	r := &Registry{
		settings: settings,
		load:     gg.LoadFontFace,
		faces:    map[faceKey]fnt.Face{},
		handles:  map[container.FontHandle]*entry{},
		next:     1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) finder() Matcher {
	if r.matcher == nil {
		r.matcher = sysfont.NewFinder(&sysfont.FinderOpts{Extensions: r.settings.Fonts.Extensions})
	}
	return r.matcher
}

// expand replaces generic families with their configured concrete names.
func (r *Registry) expand(families []string) []string {
	var out []string
	for _, f := range families {
		if concrete, ok := r.settings.Fonts.Generic[strings.ToLower(f)]; ok {
			out = append(out, concrete...)
			continue
		}
		out = append(out, f)
	}
	return out
}

func query(family string, w Weight, italic bool) string {
	q := family
	if w != Regular {
		q += " " + w.String()
	}
	if italic {
		q += " italic"
	}
	return q
}

// Resolve picks the font file for desc: the first family in the list the
// system actually has, then the default font, fuzzily.
func (r *Registry) Resolve(desc container.FontDescription) (file string, ok bool) {
	w, valid := WeightBucket(desc.Weight)
	if !valid {
		container.Logger().Warn("font weight out of range, using regular", "weight", desc.Weight, "family", desc.Family)
	}
	finder := r.finder()
	for _, family := range r.expand(ParseFamilies(desc.Family)) {
		f := finder.Match(query(family, w, desc.Italic))
		if f == nil || f.Filename == "" {
			continue
		}
		if strings.EqualFold(f.Family, family) || strings.HasPrefix(strings.ToLower(f.Name), strings.ToLower(family)) {
			container.Logger().Debug("font resolved", "family", family, "file", f.Filename)
			return f.Filename, true
		}
	}
	for _, family := range r.expand(ParseFamilies(r.settings.Fonts.DefaultName)) {
		if f := finder.Match(query(family, w, desc.Italic)); f != nil && f.Filename != "" {
			container.Logger().Debug("font fell back to default", "requested", desc.Family, "file", f.Filename)
			return f.Filename, true
		}
	}
	return "", false
}

func (r *Registry) face(file string, size float64) fnt.Face {
	if file == "" {
		return basicfont.Face7x13
	}
	key := faceKey{File: file, Size: size}
	if face, exists := r.faces[key]; exists {
		return face
	}
	face, err := r.load(file, size)
	if err != nil {
		container.Logger().Warn("font file failed to load", "file", file, "err", err)
		return basicfont.Face7x13
	}
	r.faces[key] = face
	return face
}

// Create resolves desc and returns a fresh handle. A non-positive size
// yields the null handle.
func (r *Registry) Create(desc container.FontDescription) (container.FontHandle, container.FontMetrics) {
	if desc.Size <= 0 {
		container.Logger().Warn("font size must be positive", "size", desc.Size, "family", desc.Family)
		return 0, container.FontMetrics{}
	}
	file, _ := r.Resolve(desc)
	face := r.face(file, desc.Size)
	m := Metrics(face)
	h := r.next
	r.next++
	r.handles[h] = &entry{face: face, desc: desc, metrics: m}
	return h, m
}

// Delete releases h. Null and already-released handles are ignored; the
// underlying face stays cached for reuse.
func (r *Registry) Delete(h container.FontHandle) {
	if h == 0 {
		return
	}
	if _, ok := r.handles[h]; !ok {
		container.Logger().Debug("font handle released twice or never created", "handle", h)
		return
	}
	delete(r.handles, h)
}

func (r *Registry) Face(h container.FontHandle) (fnt.Face, container.FontDescription, container.FontMetrics, bool) {
	e, ok := r.handles[h]
	if !ok {
		return nil, container.FontDescription{}, container.FontMetrics{}, false
	}
	return e.face, e.desc, e.metrics, true
}

func (r *Registry) TextWidth(text string, h container.FontHandle) float64 {
	e, ok := r.handles[h]
	if !ok {
		return 0
	}
	return Measure(e.face, text)
}

// Live is the number of handles not yet deleted.
func (r *Registry) Live() int {
	return len(r.handles)
}

// Close drops every cached face.
func (r *Registry) Close() {
	for key, face := range r.faces {
		if face != basicfont.Face7x13 {
			face.Close()
		}
		delete(r.faces, key)
	}
}

func Measure(font fnt.Face, text string) float64 {
	return math.Ceil(float64(fnt.MeasureString(font, text)) / 64.0)
}

func Ascent(font fnt.Face) float64 {
	return float64(font.Metrics().Ascent) / 64.0
}

func Descent(font fnt.Face) float64 {
	return float64(font.Metrics().Descent) / 64.0
}

// Metrics reads the layout metrics of a face. x-height comes from the face
// when it reports one, otherwise from the bounds of the 'x' glyph.
func Metrics(face fnt.Face) container.FontMetrics {
	m := face.Metrics()
	xHeight := float64(m.XHeight) / 64.0
	if xHeight <= 0 {
		if bounds, _, ok := face.GlyphBounds('x'); ok {
			xHeight = float64(-bounds.Min.Y) / 64.0
		}
	}
	ascent := Ascent(face)
	descent := Descent(face)
	height := float64(m.Height) / 64.0
	if height < ascent+descent {
		height = ascent + descent
	}
	return container.FontMetrics{
		Ascent:     ascent,
		Descent:    descent,
		Height:     height,
		XHeight:    xHeight,
		DrawSpaces: float64(fnt.MeasureString(face, " ")) / 64.0,
	}
}
