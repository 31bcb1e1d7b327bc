// Package browser shows a rendered canvas in an SDL window.
package browser

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

type Window struct {
	sdl_window *sdl.Window
	width      int32
	height     int32
	RED_MASK   uint32
	GREEN_MASK uint32
	BLUE_MASK  uint32
	ALPHA_MASK uint32
}

// Open initialises SDL video and creates a window of the given size.
func Open(title string, width, height int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("init sdl: %w", err)
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create sdl window: %w", err)
	}
	w := &Window{sdl_window: window, width: int32(width), height: int32(height)}

	if sdl.BYTEORDER == sdl.BIG_ENDIAN {
		w.RED_MASK = 0xff000000
		w.GREEN_MASK = 0x00ff0000
		w.BLUE_MASK = 0x0000ff00
		w.ALPHA_MASK = 0x000000ff
	} else {
		w.RED_MASK = 0x000000ff
		w.GREEN_MASK = 0x0000ff00
		w.BLUE_MASK = 0x00ff0000
		w.ALPHA_MASK = 0xff000000
	}
	return w, nil
}

// Draw blits img to the window surface.
func (w *Window) Draw(img image.Image) error {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return fmt.Errorf("image is %T, not *image.RGBA", img)
	}
	if len(rgba.Pix) == 0 {
		return nil
	}

	depth := 32
	sdl_surface, err := sdl.CreateRGBSurfaceFrom(
		unsafe.Pointer(&rgba.Pix[0]),
		int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), depth, rgba.Stride,
		w.RED_MASK, w.GREEN_MASK, w.BLUE_MASK, w.ALPHA_MASK,
	)
	if err != nil {
		return fmt.Errorf("create rgb surface: %w", err)
	}
	defer sdl_surface.Free()

	rect := &sdl.Rect{X: 0, Y: 0, W: w.width, H: w.height}
	window_surface, err := w.sdl_window.GetSurface()
	if err != nil {
		return fmt.Errorf("get window surface: %w", err)
	}
	if err := sdl_surface.Blit(rect, window_surface, rect); err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	return w.sdl_window.UpdateSurface()
}

// Run redraws img whenever the window is exposed and returns once the
// window is closed or Ctrl+Q is pressed.
func (w *Window) Run(img image.Image) error {
	if err := w.Draw(img); err != nil {
		return err
	}
	ctrl_down := false
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_EXPOSED {
					if err := w.Draw(img); err != nil {
						return err
					}
				}
			case *sdl.KeyboardEvent:
				ctrl := e.Keysym.Sym == sdl.K_RCTRL || e.Keysym.Sym == sdl.K_LCTRL
				if e.State == sdl.RELEASED {
					if ctrl {
						ctrl_down = false
					}
				} else if ctrl {
					ctrl_down = true
				} else if e.Keysym.Sym == sdl.K_ESCAPE || (ctrl_down && e.Keysym.Sym == sdl.K_q) {
					return nil
				}
			}
		}
		sdl.Delay(10)
	}
}

func (w *Window) Close() {
	w.sdl_window.Destroy()
	sdl.Quit()
}
