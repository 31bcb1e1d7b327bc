package scene

import (
	"fmt"
	"strings"
	"testing"

	"github.com/adrg/sysfont"
	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlcanvas/canvas"
	"htmlcanvas/container"
	"htmlcanvas/font"
)

// recorder logs every callback it receives as a short line.
type recorder struct {
	calls []string
	next  container.FontHandle
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) CreateFont(d container.FontDescription) (container.FontHandle, container.FontMetrics) {
	r.next++
	r.log("font %s %v %d", d.Family, d.Size, r.next)
	return r.next, container.FontMetrics{}
}
func (r *recorder) DeleteFont(h container.FontHandle) { r.log("delfont %d", h) }
func (r *recorder) TextWidth(string, container.FontHandle) float64 { return 0 }
func (r *recorder) DefaultFontSize() float64 { return 16 }
func (r *recorder) DefaultFontName() string { return "sans-serif" }
func (r *recorder) PtToPx(pt float64) float64 { return pt }
func (r *recorder) LoadImage(src, base string, redraw bool) { r.log("load %s", src) }
func (r *recorder) ImageSize(string, string) container.Size { return container.Size{} }
func (r *recorder) MediaFeatures() container.MediaFeatures { return container.MediaFeatures{} }
func (r *recorder) Language() (string, string) { return "en", "" }
func (r *recorder) ClientRect() container.Position { return container.Position{} }
func (r *recorder) SetCaption(string) {}
func (r *recorder) SetBaseURL(u string) { r.log("base %s", u) }
func (r *recorder) OnAnchorClick(href string) { r.log("anchor %s", href) }
func (r *recorder) SetCursor(string) {}
func (r *recorder) ImportCSS(string, string) (string, string) { return "", "" }
func (r *recorder) DelClip() { r.log("unclip") }
func (r *recorder) TransformText(s string, _ container.TextTransform) string { return s }

func (r *recorder) DrawText(text string, h container.FontHandle, c container.WebColor, pos container.Position) {
	r.log("text %q %d %s %s", text, h, c, pos)
}

func (r *recorder) DrawBackground(bg container.BackgroundPaint) {
	r.log("background %s root=%v image=%q", bg.Color, bg.IsRoot, bg.Image)
}

func (r *recorder) DrawBorders(b container.Borders, pos container.Position, root bool) {
	r.log("borders top=%v/%s right=%v/%s root=%v", b.Top.Width, b.Top.Style, b.Right.Width, b.Right.Style, root)
}

func (r *recorder) DrawListMarker(m container.ListMarker) {
	r.log("marker %s %d font=%d", m.Type, m.Index, m.Font)
}

func (r *recorder) SetClip(pos container.Position, radius container.BorderRadiuses, validX, validY bool) {
	r.log("clip %s r=%v valid=%v,%v", pos, radius.TopLeftX, validX, validY)
}

const sample = `
width = 200
height = 100
background = "white"
base_url = "http://example.com/"

[fonts.body]
family = "serif"
size = 14
decoration = ["underline"]

[[op]]
kind = "clip"
width = 100
height = 50
radius = 4
valid_y = false

[[op]]
kind = "text"
text = "hi"
font = "body"
color = "#ff0000"
x = 1
y = 2
width = 14
height = 13

[[op]]
kind = "borders"
width = 100
height = 50
border = { width = 2, style = "dashed", color = "blue" }
right = { width = 0 }

[[op]]
kind = "unclip"

[[op]]
kind = "marker"
style = "lower-roman"
index = 4
font = "body"

[[op]]
kind = "anchor"
href = "next.html"
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, 100, s.Height)
	require.Len(t, s.Ops, 6)
	assert.Equal(t, "text", s.Ops[1].Kind)

	d := s.Fonts["body"].Description()
	assert.Equal(t, 400, d.Weight)
	assert.Equal(t, container.DecorationUnderline, d.Decoration)
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(strings.NewReader("[[op]]\nkind = \"teleport\"\n"))
	assert.ErrorIs(t, err, ErrUnknownOp)

	_, err = Load(strings.NewReader("[[op]]\nkind = \"text\"\nfont = \"nope\"\n"))
	assert.ErrorIs(t, err, ErrUnknownFont)

	_, err = Load(strings.NewReader("colour = \"red\"\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestPlayOrder(t *testing.T) {
	s, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	r := &recorder{}
	require.NoError(t, s.Play(r))

	assert.Equal(t, []string{
		"base http://example.com/",
		"font serif 14 1",
		"background rgba(255, 255, 255, 1) root=true image=\"\"",
		"clip Position(x=0.00, y=0.00, w=100.00, h=50.00) r=4 valid=true,false",
		"text \"hi\" 1 rgba(255, 0, 0, 1) Position(x=1.00, y=2.00, w=14.00, h=13.00)",
		"borders top=2/dashed right=0/solid root=false",
		"unclip",
		"marker lower-roman 4 font=1",
		"anchor next.html",
		"delfont 1",
	}, r.calls)
}

func TestPlayUnbalancedClip(t *testing.T) {
	s := &Scene{Ops: []Op{{Kind: "clip", Width: 1, Height: 1}}}
	r := &recorder{}
	assert.ErrorIs(t, s.Play(r), ErrUnbalancedClip)

	s = &Scene{Ops: []Op{{Kind: "unclip"}}}
	r = &recorder{}
	assert.ErrorIs(t, s.Play(r), ErrUnbalancedClip)
	assert.NotContains(t, r.calls, "unclip")
}

func TestPlayAnchorNeedsHref(t *testing.T) {
	s := &Scene{Ops: []Op{{Kind: "anchor"}}}
	err := s.Play(&recorder{})
	assert.ErrorContains(t, err, "op 0 (anchor)")
}

func TestPlayBadColor(t *testing.T) {
	s := &Scene{Ops: []Op{{Kind: "borders", Border: &Border{Width: 1, Color: "not-a-colour"}}}}
	err := s.Play(&recorder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op 0 (borders)")
}

func TestPlayReleasesFontsOnError(t *testing.T) {
	s := &Scene{
		Fonts: map[string]Font{"a": {Family: "serif", Size: 10}},
		Ops:   []Op{{Kind: "text", Font: "missing"}},
	}
	r := &recorder{}
	assert.ErrorIs(t, s.Play(r), ErrUnknownFont)
	assert.Equal(t, "delfont 1", r.calls[len(r.calls)-1])
}

type noFonts struct{}

func (noFonts) Match(string) *sysfont.Font { return nil }

func TestPlayOntoCanvas(t *testing.T) {
	s, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	var links []string
	ctx := gg.NewContext(s.Width, s.Height)
	c := canvas.New(ctx, nil,
		canvas.WithFonts(font.NewRegistry(nil, font.WithMatcher(noFonts{}))),
		canvas.WithAnchorHandler(func(target string) { links = append(links, target) }))
	defer c.Close()
	require.NoError(t, s.Play(c))

	assert.Zero(t, c.ClipDepth())
	assert.Equal(t, []string{"http://example.com/next.html"}, links)
	assert.Zero(t, c.Fonts().Live())
	_, _, _, a := ctx.Image().At(150, 80).RGBA()
	assert.Equal(t, uint32(0xffff), a, "root background covers the canvas")
}
