// Package terminal implements backend.Backend on top of
// github.com/gdamore/tcell/v2, rendering each pair of scanlines as one row
// of half-block glyphs and translating terminal key events into joypad
// edges.
package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/backend/terminal/render"
	"github.com/joule-systems/pocketgb/video"
)

const (
	minTermWidth  = video.FramebufferWidth + 2
	minTermHeight = video.FramebufferHeight/2 + 2
)

// keyMapping maps tcell keys/runes to joypad buttons, following a
// default WASD + z/x convention.
var keyMapping = map[tcell.Key]backend.JoypadKey{
	tcell.KeyUp:    backend.KeyUp,
	tcell.KeyDown:  backend.KeyDown,
	tcell.KeyLeft:  backend.KeyLeft,
	tcell.KeyRight: backend.KeyRight,
	tcell.KeyEnter: backend.KeyStart,
}

var runeMapping = map[rune]backend.JoypadKey{
	'z': backend.KeyA,
	'x': backend.KeyB,
	'w': backend.KeyUp,
	's': backend.KeyDown,
	'a': backend.KeyLeft,
	'd': backend.KeyRight,
	' ': backend.KeySelect,
}

// Backend renders to a real terminal via tcell.
type Backend struct {
	screen  tcell.Screen
	quit    bool
	signals chan os.Signal
}

// New creates a terminal backend. Call Init before the first Present.
func New() *Backend {
	return &Backend{}
}

func (t *Backend) Init(cfg backend.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal backend: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal backend: %w", err)
	}

	t.screen = screen
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM)

	return nil
}

func (t *Backend) Present(frame *video.FrameBuffer) ([]backend.InputEvent, bool, error) {
	var events []backend.InputEvent

	select {
	case <-t.signals:
		t.quit = true
	default:
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			events = append(events, t.translateKey(ev)...)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.render(frame)
	t.screen.Show()

	return events, t.quit, nil
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	return nil
}

// translateKey turns one tcell key event into zero or one joypad press.
// tcell (like most terminal input) does not report key-up events, so every
// mapped key produces an immediate press-then-release pair; this loses true
// hold-to-repeat behavior but is sufficient for menu navigation and
// short button taps, which is the terminal backend's intended use (the
// SDL2 backend is the one meant for real-time play).
func (t *Backend) translateKey(ev *tcell.EventKey) []backend.InputEvent {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		t.quit = true
		return nil
	}

	var key backend.JoypadKey
	var ok bool
	if mapped, found := keyMapping[ev.Key()]; found {
		key, ok = mapped, true
	} else if ev.Key() == tcell.KeyRune {
		if mapped, found := runeMapping[ev.Rune()]; found {
			key, ok = mapped, true
		}
	}
	if !ok {
		return nil
	}

	return []backend.InputEvent{
		{Key: key, Pressed: true},
		{Key: key, Pressed: false},
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		t.renderTooSmall(termWidth, termHeight)
		return
	}

	// Fit the native 160x144 framebuffer to whatever cell grid is available,
	// rather than requiring an exact 1:1 terminal size: each cell covers two
	// vertically stacked source pixels via a half-block glyph, so the scaled
	// image needs twice the terminal's row count.
	cellCols := termWidth - 2
	cellRows := termHeight - 2
	img := render.ScaleFrame(frame, cellCols, cellRows*2)

	t.screen.Clear()
	for row := 0; row < cellRows; row++ {
		for col := 0; col < cellCols; col++ {
			top := render.ShadeFromRGBA(img.At(col, row*2))
			bottom := render.ShadeFromRGBA(img.At(col, row*2+1))

			ch, fg, bg := shadeStyle(top, bottom)
			t.screen.SetContent(col+1, row+1, ch, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func (t *Backend) renderTooSmall(termWidth, termHeight int) {
	t.screen.Clear()
	msg := fmt.Sprintf("terminal too small, need at least %dx%d", minTermWidth, minTermHeight)
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for i, ch := range msg {
		if i >= termWidth {
			break
		}
		t.screen.SetContent(i, termHeight/2, ch, nil, style)
	}
}

var shadeColors = [4]tcell.Color{
	tcell.ColorBlack,
	tcell.ColorGray,
	tcell.ColorSilver,
	tcell.ColorWhite,
}

func shadeStyle(top, bottom int) (rune, tcell.Color, tcell.Color) {
	ch := render.HalfBlockChar(top, bottom)
	topColor, bottomColor := shadeColors[top], shadeColors[bottom]
	if top == bottom {
		return ch, topColor, tcell.ColorDefault
	}
	if top == 3 {
		return ch, bottomColor, topColor
	}
	return ch, topColor, bottomColor
}
