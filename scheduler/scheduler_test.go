package scheduler

import (
	"errors"
	"testing"

	pocketgb "github.com/joule-systems/pocketgb"
	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/backend/headless"
	"github.com/joule-systems/pocketgb/memory"
	"github.com/joule-systems/pocketgb/timing"
	"github.com/joule-systems/pocketgb/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_runBoundedFrames(t *testing.T) {
	emu := pocketgb.New(memory.NewCartridge(), 0, false)
	be := headless.New()
	require.NoError(t, be.Init(backend.Config{}))

	s := New(emu, be, timing.NewNoOpLimiter())
	presented, err := s.Run(2)

	require.NoError(t, err)
	assert.Equal(t, 2, presented)
	assert.Equal(t, 2, be.FramesPresented())
}

type shutdownAfterOneBackend struct {
	presented int
}

func (b *shutdownAfterOneBackend) Init(cfg backend.Config) error { return nil }

func (b *shutdownAfterOneBackend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	b.presented++
	return nil, true, nil
}

func (b *shutdownAfterOneBackend) Cleanup() error { return nil }

func TestScheduler_stopsWhenBackendRequestsShutdown(t *testing.T) {
	emu := pocketgb.New(memory.NewCartridge(), 0, false)
	be := &shutdownAfterOneBackend{}

	s := New(emu, be, timing.NewNoOpLimiter())
	presented, err := s.Run(0)

	require.NoError(t, err)
	assert.Equal(t, 1, presented)
	assert.Equal(t, 1, be.presented)
}

type erroringBackend struct{}

func (b *erroringBackend) Init(cfg backend.Config) error { return nil }

func (b *erroringBackend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	return nil, false, errors.New("boom")
}

func (b *erroringBackend) Cleanup() error { return nil }

func TestScheduler_propagatesBackendError(t *testing.T) {
	emu := pocketgb.New(memory.NewCartridge(), 0, false)
	s := New(emu, &erroringBackend{}, timing.NewNoOpLimiter())

	_, err := s.Run(1)
	assert.Error(t, err)
}

func TestScheduler_forwardsInputEventsToJoypad(t *testing.T) {
	emu := pocketgb.New(memory.NewCartridge(), 0, false)
	be := &singleEventBackend{events: []backend.InputEvent{{Key: backend.KeyA, Pressed: true}}}

	s := New(emu, be, timing.NewNoOpLimiter())
	_, err := s.Run(1)

	require.NoError(t, err)
	// P1 bit 0 (A) cleared (active-low) once the face-button group is selected.
	emu.MMU.Write(0xFF00, 0x10)
	assert.Equal(t, byte(0), emu.MMU.Read(0xFF00)&0x01)
}

type singleEventBackend struct {
	events []backend.InputEvent
	sent   bool
}

func (b *singleEventBackend) Init(cfg backend.Config) error { return nil }

func (b *singleEventBackend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	if b.sent {
		return nil, false, nil
	}
	b.sent = true
	return b.events, false, nil
}

func (b *singleEventBackend) Cleanup() error { return nil }
