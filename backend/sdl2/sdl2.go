//go:build sdl2

// Package sdl2 implements backend.Backend with a real SDL2 window and an
// accelerated streaming texture. Built only when compiled with -tags sdl2,
// since it requires the SDL2 development libraries to be installed on the
// host; the default build uses backend/terminal or backend/headless
// instead. See stub.go for the error returned by a non-tagged build.
package sdl2

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/video"
)

const (
	windowScale       = 3
	windowWidth       = video.FramebufferWidth * windowScale
	windowHeight      = video.FramebufferHeight * windowScale
	bytesPerPixel     = 4
	fullAlpha   uint8 = 0xFF
)

// Backend renders to a real SDL2 window using a streaming RGBA8888 texture
// sized to the native 160x144 framebuffer, scaled up by the renderer.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	quit     bool

	pixels []byte
}

// New creates an SDL2 backend. Call Init before the first Present.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init(cfg backend.Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2 backend: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = "pocketgb"
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		windowWidth, windowHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2 backend: create window: %w", err)
	}
	b.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2 backend: create renderer: %w", err)
	}
	b.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth, video.FramebufferHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2 backend: create texture: %w", err)
	}
	b.texture = texture
	b.pixels = make([]byte, video.FramebufferWidth*video.FramebufferHeight*bytesPerPixel)

	return nil
}

func (b *Backend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	var events []backend.InputEvent

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			b.quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				b.quit = true
				break
			}
			if key, ok := keyMapping[e.Keysym.Sym]; ok {
				switch e.Type {
				case sdl.KEYDOWN:
					events = append(events, backend.InputEvent{Key: key, Pressed: true})
				case sdl.KEYUP:
					events = append(events, backend.InputEvent{Key: key, Pressed: false})
				}
			}
		}
	}

	b.upload(frame)
	b.renderer.Clear()
	b.renderer.Copy(b.texture, nil, nil)
	b.renderer.Present()

	return events, b.quit, nil
}

func (b *Backend) Cleanup() error {
	if b.texture != nil {
		b.texture.Destroy()
	}
	if b.renderer != nil {
		b.renderer.Destroy()
	}
	if b.window != nil {
		b.window.Destroy()
	}
	sdl.Quit()
	return nil
}

// upload converts the framebuffer's packed RGBA8888 pixels to SDL2's
// expected little-endian ABGR byte order and streams them into the texture.
func (b *Backend) upload(frame *video.FrameBuffer) {
	data := frame.ToSlice()
	for i, px := range data {
		o := i * bytesPerPixel
		b.pixels[o] = byte(px)        // A
		b.pixels[o+1] = byte(px >> 8) // B
		b.pixels[o+2] = byte(px >> 16) // G
		b.pixels[o+3] = byte(px >> 24) // R
	}
	b.texture.Update(nil, unsafe.Pointer(&b.pixels[0]), video.FramebufferWidth*bytesPerPixel)
}

var keyMapping = map[sdl.Keycode]backend.JoypadKey{
	sdl.K_RETURN: backend.KeyStart,
	sdl.K_RSHIFT: backend.KeySelect,
	sdl.K_UP:     backend.KeyUp,
	sdl.K_DOWN:   backend.KeyDown,
	sdl.K_LEFT:   backend.KeyLeft,
	sdl.K_RIGHT:  backend.KeyRight,
	sdl.K_z:      backend.KeyA,
	sdl.K_x:      backend.KeyB,
}
