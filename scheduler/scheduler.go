// Package scheduler drives the core forward one instruction at a time and
// publishes completed frames to a host backend, pacing presentation with a
// timing.Limiter. It is the only piece of the module that knows how to
// connect an Emulator to a Backend; everything below is independently
// testable.
package scheduler

import (
	"log/slog"

	pocketgb "github.com/joule-systems/pocketgb"
	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/memory"
	"github.com/joule-systems/pocketgb/timing"
)

// joypadMapping translates a backend.JoypadKey (host-agnostic) into the
// memory.Button the joypad register actually tracks.
var joypadMapping = map[backend.JoypadKey]memory.Button{
	backend.KeyA:      memory.ButtonA,
	backend.KeyB:      memory.ButtonB,
	backend.KeyStart:  memory.ButtonStart,
	backend.KeySelect: memory.ButtonSelect,
	backend.KeyUp:     memory.ButtonUp,
	backend.KeyDown:   memory.ButtonDown,
	backend.KeyLeft:   memory.ButtonLeft,
	backend.KeyRight:  memory.ButtonRight,
}

// Scheduler owns one Emulator and one Backend, and runs the instruction ->
// peripheral-tick -> frame-present loop described in spec.md's frame
// scheduler component.
type Scheduler struct {
	emu     *pocketgb.Emulator
	backend backend.Backend
	limiter timing.Limiter
	logger  *slog.Logger
}

// New creates a Scheduler. limiter paces Present calls; pass
// timing.NewNoOpLimiter() for headless/batch execution.
func New(emu *pocketgb.Emulator, be backend.Backend, limiter timing.Limiter) *Scheduler {
	return &Scheduler{
		emu:     emu,
		backend: be,
		limiter: limiter,
		logger:  slog.Default(),
	}
}

// Run drives the emulator until the backend requests shutdown, until
// frames frames have been presented if frames > 0, or until the CPU records
// an illegal-opcode fault (which the caller reads via Emulator.Fault). It
// returns the number of frames actually presented.
func (s *Scheduler) Run(frames int) (int, error) {
	lastFrameIndex := uint64(0)
	presented := 0

	for {
		s.emu.Step()
		if s.emu.Fault() != nil {
			return presented, nil
		}

		frameIndex := s.emu.Cycles() / pocketgb.CyclesPerFrame
		if frameIndex == lastFrameIndex {
			continue
		}
		lastFrameIndex = frameIndex

		s.limiter.WaitForNextFrame()

		events, shutdown, err := s.backend.Present(s.emu.FrameBuffer())
		if err != nil {
			return presented, err
		}
		s.applyInput(events)
		presented++

		if shutdown {
			return presented, nil
		}
		if frames > 0 && presented >= frames {
			return presented, nil
		}
	}
}

func (s *Scheduler) applyInput(events []backend.InputEvent) {
	for _, ev := range events {
		button, ok := joypadMapping[ev.Key]
		if !ok {
			s.logger.Warn("scheduler: unmapped joypad key", "key", ev.Key)
			continue
		}
		if ev.Pressed {
			s.emu.PressButton(button)
		} else {
			s.emu.ReleaseButton(button)
		}
	}
}
