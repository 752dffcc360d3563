package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tommi/go-chip8/chip8/backend"
	"github.com/tommi/go-chip8/chip8/video"
)

// keyTimeout is how long a key counts as held after its last press
// event. Terminals deliver no key-up events, so releases have to be
// synthesized from key-repeat gaps.
const keyTimeout = 150 * time.Millisecond

// keyMap is the conventional keyboard layout for the hexadecimal
// keypad: the 4x4 block under 1-2-3-4.
var keyMap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Backend renders the display in a terminal using tcell, one cell per
// pixel, and translates keyboard input into keypad events.
type Backend struct {
	screen tcell.Screen
	config backend.Config

	lastPress map[byte]time.Time // last press time per held key
	quit      bool
}

// New creates a new terminal backend.
func New() *Backend {
	return &Backend{
		lastPress: make(map[byte]time.Time),
	}
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t.screen = screen

	return nil
}

// Update renders the frame and returns the key events collected since
// the previous frame.
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := time.Now()

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			events = append(events, t.processKeyEvent(ev, now)...)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if t.quit {
		events = append(events, backend.InputEvent{Type: backend.Quit})
		return events, nil
	}

	// Expire keys that stopped repeating.
	for key, pressed := range t.lastPress {
		if now.Sub(pressed) >= keyTimeout {
			delete(t.lastPress, key)
			events = append(events, backend.InputEvent{Type: backend.KeyRelease, Key: key})
		}
	}

	t.render(frame)

	if t.config.SoundActive != nil && t.config.SoundActive() {
		t.screen.Beep()
	}

	return events, nil
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) []backend.InputEvent {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		t.quit = true
		return nil
	}

	if ev.Key() != tcell.KeyRune {
		return nil
	}

	key, ok := keyMap[ev.Rune()]
	if !ok {
		return nil
	}

	_, held := t.lastPress[key]
	t.lastPress[key] = now

	if held {
		// Key repeat, already pressed.
		return nil
	}

	return []backend.InputEvent{{Type: backend.KeyPress, Key: key}}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	pixels := frame.ToSlice()

	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			ch := ' '
			if pixels[y*video.FramebufferWidth+x] != 0 {
				ch = '█'
			}
			t.screen.SetContent(x, y, ch, nil, style)
		}
	}

	status := fmt.Sprintf(" %s | ESC to quit ", t.config.Title)
	for i, ch := range status {
		t.screen.SetContent(i, video.FramebufferHeight, ch, nil, style.Reverse(true))
	}

	t.screen.Show()
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}
