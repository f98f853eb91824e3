// Package backend defines the narrow interface the scheduler needs from a
// host: present a completed frame, collect input edges, and report a
// shutdown request. Concrete backends (headless, terminal, and the
// build-tag gated sdl2) live in their own subpackages so the default build
// never pulls in a windowing toolkit it doesn't need.
package backend

import "github.com/joule-systems/pocketgb/video"

// JoypadKey identifies one of the eight Game Boy buttons, independent of any
// host input library's own key representation. Backends translate their
// native key/button events into these before returning them to the
// scheduler, which maps them onto memory.Button.
type JoypadKey int

const (
	KeyA JoypadKey = iota
	KeyB
	KeyStart
	KeySelect
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// InputEvent is one joypad edge observed by a backend during a Present call.
type InputEvent struct {
	Key     JoypadKey
	Pressed bool
}

// Config configures a Backend at Init time.
type Config struct {
	Title     string
	ShowDebug bool
}

// Backend represents a complete host platform: rendering plus input. A
// Backend is driven once per completed frame by the scheduler.
type Backend interface {
	// Init prepares the backend for rendering and input polling.
	Init(cfg Config) error

	// Present renders frame and returns the joypad edges observed since the
	// previous call, along with whether the host has requested shutdown
	// (window closed, ESC pressed, SIGINT, etc).
	Present(frame *video.FrameBuffer) (events []InputEvent, shutdown bool, err error)

	// Cleanup releases any host resources (terminal state, windows, ...).
	Cleanup() error
}
