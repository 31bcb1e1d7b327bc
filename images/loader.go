// Package images decodes and caches the bitmaps the layout engine refers to
// by URL.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"htmlcanvas/container"
)

var ErrNotImage = errors.New("not an image")

// Cache maps a resolved URL to its decoded bitmap. Entries live until Clear.
// It is not safe for concurrent use; the container drives it from the
// layout thread only.
type Cache struct {
	cache  map[string]image.Image
	scaled map[scaledKey]image.Image
}

type scaledKey struct {
	key           string
	width, height int
}

func NewCache() *Cache {
	return &Cache{
		cache:  make(map[string]image.Image),
		scaled: make(map[scaledKey]image.Image),
	}
}

// Load returns the cached image for key, fetching and decoding it on first
// use. mediaType is the declared type, if any; see Decode. Failed loads are
// not cached, so a later call retries.
func (c *Cache) Load(key, mediaType string, fetch func() ([]byte, error)) (image.Image, error) {
	if img, ok := c.cache[key]; ok {
		container.Logger().Debug("image cache hit", "key", key)
		return img, nil
	}
	data, err := fetch()
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, mediaType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	c.cache[key] = img
	container.Logger().Debug("image cached", "key", key, "size", img.Bounds().Size())
	return img, nil
}

func (c *Cache) Get(key string) (image.Image, bool) {
	img, ok := c.cache[key]
	return img, ok
}

// Size returns the pixel size of a cached image, or 0x0.
func (c *Cache) Size(key string) (width, height int) {
	img, ok := c.cache[key]
	if !ok {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Scaled returns the cached image for key resampled to width x height. The
// resampled bitmap is kept until Clear.
func (c *Cache) Scaled(key string, width, height int) (image.Image, bool) {
	img, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() == width && b.Dy() == height) {
		return img, true
	}
	sk := scaledKey{key: key, width: width, height: height}
	if scaled, ok := c.scaled[sk]; ok {
		return scaled, true
	}
	scaled := Scale(img, width, height)
	c.scaled[sk] = scaled
	return scaled, true
}

func (c *Cache) Len() int {
	return len(c.cache)
}

func (c *Cache) Clear() {
	clear(c.cache)
	clear(c.scaled)
}

// Decode sniffs data and decodes it when it is a known raster format. When
// sniffing fails but mediaType declares an image, decoding is still tried.
func Decode(data []byte, mediaType string) (image.Image, error) {
	if !filetype.IsImage(data) && !strings.HasPrefix(strings.ToLower(mediaType), "image/") {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Scale resamples img to width x height. The original is returned when the
// size already matches or the target is empty.
func Scale(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() == width && b.Dy() == height) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
