//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/video"
)

// errNotBuilt is returned by every method when the binary was built without
// -tags sdl2; the SDL2 C library is not linked in that case.
var errNotBuilt = errors.New("sdl2 backend: not available in this build, rebuild with -tags sdl2")

// Backend is a stub satisfying backend.Backend so cmd/pocketgb can reference
// sdl2.New() unconditionally and fail at Init time with a clear message,
// rather than needing its own build-tag branch.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Init(cfg backend.Config) error { return errNotBuilt }

func (b *Backend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	return nil, true, errNotBuilt
}

func (b *Backend) Cleanup() error { return nil }
