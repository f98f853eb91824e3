// Package headless implements backend.Backend with no I/O at all: it never
// reports input and never requests shutdown on its own. It is what
// cmd/pocketgb's --headless --frames N mode and test/blargg drive, since
// both only care about running a fixed number of frames and inspecting the
// result afterward.
package headless

import (
	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/video"
)

// Backend is a no-op backend.Backend. The last presented frame is retained
// so tests and the CLI can inspect it after the scheduler returns.
type Backend struct {
	frames int
	last   *video.FrameBuffer
}

// New creates a headless backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init(cfg backend.Config) error {
	return nil
}

func (b *Backend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	b.frames++
	b.last = frame
	return nil, false, nil
}

func (b *Backend) Cleanup() error {
	return nil
}

// FramesPresented returns how many times Present has been called.
func (b *Backend) FramesPresented() int {
	return b.frames
}

// LastFrame returns the most recently presented framebuffer, or nil if none
// has been presented yet.
func (b *Backend) LastFrame() *video.FrameBuffer {
	return b.last
}
