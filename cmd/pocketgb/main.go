// Command pocketgb is the host-facing entry point for the emulator core: it
// loads a ROM, picks a backend (terminal by default, headless for batch/CI
// runs), and drives the scheduler until the backend shuts down or the
// requested frame count is reached.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	pocketgb "github.com/joule-systems/pocketgb"
	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/backend/headless"
	"github.com/joule-systems/pocketgb/backend/sdl2"
	"github.com/joule-systems/pocketgb/backend/terminal"
	"github.com/joule-systems/pocketgb/cpu"
	"github.com/joule-systems/pocketgb/memory"
	"github.com/joule-systems/pocketgb/scheduler"
	"github.com/joule-systems/pocketgb/timing"
)

// Exit codes, per the CLI's external contract: 0 success, 1 malformed ROM,
// 2 illegal instruction fault.
const (
	exitMalformedROM   = 1
	exitIllegalOpcode  = 2
	exitRuntimeFailure = 3
)

func main() {
	app := cli.NewApp()
	app.Name = "pocketgb"
	app.Usage = "a Game Boy emulator core"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "run a ROM file",
			ArgsUsage: "<rom>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "headless",
					Usage: "run with no window or terminal rendering",
				},
				cli.IntFlag{
					Name:  "frames",
					Usage: "number of frames to run in headless mode (0 = unbounded)",
				},
				cli.StringFlag{
					Name:  "mode",
					Usage: "console mode override: dmg or gbc (default: auto-detect from ROM header)",
				},
				cli.BoolFlag{
					Name:  "sdl2",
					Usage: "use the SDL2 backend instead of the terminal backend (requires -tags sdl2 build)",
				},
			},
			Action: runAction,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("pocketgb: fatal", "error", err)
	}
	// HandleExitCoder inspects err for the cli.ExitCoder interface (which
	// cli.NewExitError satisfies) and calls os.Exit with its code; it is a
	// no-op for a nil error and exits 1 for a plain error.
	cli.HandleExitCoder(err)
}

func runAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("run requires a ROM path", exitRuntimeFailure)
	}
	romPath := c.Args().Get(0)

	raw, err := os.ReadFile(romPath)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("pocketgb: %v", err), exitRuntimeFailure)
	}

	mode, modeSet, err := parseMode(c.String("mode"))
	if err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeFailure)
	}

	emu, err := pocketgb.NewFromROM(raw, mode, modeSet)
	if err != nil {
		if errors.Is(err, memory.ErrMalformedROM) {
			slog.Error("pocketgb: malformed ROM", "error", err)
			return cli.NewExitError(err.Error(), exitMalformedROM)
		}
		return cli.NewExitError(err.Error(), exitRuntimeFailure)
	}

	be, limiter, err := chooseBackend(c)
	if err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeFailure)
	}
	if err := be.Init(backend.Config{Title: "pocketgb"}); err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeFailure)
	}
	defer be.Cleanup()

	sched := scheduler.New(emu, be, limiter)
	frames := c.Int("frames")
	presented, err := sched.Run(frames)
	if err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeFailure)
	}

	slog.Info("pocketgb: finished", "frames_presented", presented, "cycles", emu.Cycles())

	if fault := emu.Fault(); fault != nil {
		slog.Error("pocketgb: illegal instruction fault", "opcode", fmt.Sprintf("0x%02X", fault.Opcode), "pc", fmt.Sprintf("0x%04X", fault.PC))
		return cli.NewExitError(fault.Error(), exitIllegalOpcode)
	}

	return nil
}

func parseMode(flag string) (cpu.ConsoleMode, bool, error) {
	switch flag {
	case "":
		return cpu.DMG, false, nil
	case "dmg":
		return cpu.DMG, true, nil
	case "gbc":
		return cpu.CGB, true, nil
	default:
		return cpu.DMG, false, fmt.Errorf("pocketgb: unknown --mode %q (want dmg or gbc)", flag)
	}
}

func chooseBackend(c *cli.Context) (backend.Backend, timing.Limiter, error) {
	if c.Bool("headless") {
		return headless.New(), timing.NewNoOpLimiter(), nil
	}
	if c.Bool("sdl2") {
		return sdl2.New(), timing.NewTickerLimiter(), nil
	}
	return terminal.New(), timing.NewTickerLimiter(), nil
}
