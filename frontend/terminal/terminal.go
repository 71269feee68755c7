// Package terminal presents the emulator on an ANSI terminal.
//
// Keys are read from a raw-mode input; a terminal reports only presses, so
// each press is released again after Hold. The display is drawn with
// half-block characters, two pixel rows per text row.
package terminal

import (
	"errors"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	chipio "github.com/ezrec/chip8/io"
)

const (
	DEFAULT_HOLD = 150 * time.Millisecond // Synthetic key hold time.

	KEY_ESC    = 0x1b
	KEY_CTRL_C = 0x03

	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiBell       = "\a"
)

// KeyMap maps terminal keys onto the hex keypad, laid out as
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var KeyMap = map[byte]cpu.Nibble{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Terminal is an emulator.Frontend for ANSI terminals.
type Terminal struct {
	Verbose bool
	Hold    time.Duration    // Key hold time. Zero selects DEFAULT_HOLD.
	Now     func() time.Time // Clock for key releases. Nil selects time.Now.

	in  io.Reader
	out io.Writer

	keys    chan []byte
	release [cpu.KEY_COUNT]time.Time
	quit    bool
	bell    bool
	redraw  bool

	mutex sync.Mutex
	fd    int
	state *term.State
}

// New creates a terminal frontend reading keys from in and drawing to out.
func New(in io.Reader, out io.Writer) (tm *Terminal) {
	tm = &Terminal{
		in:     in,
		out:    out,
		keys:   make(chan []byte, 64),
		redraw: true,
	}

	return
}

// Start puts the input in raw mode, if it is a terminal, and begins reading
// keys. The emulator's buzzer rings the terminal bell.
func (tm *Terminal) Start(emu *emulator.Emulator) (err error) {
	if file, ok := tm.in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		tm.fd = int(file.Fd())
		tm.state, err = term.MakeRaw(tm.fd)
		if err != nil {
			return
		}
	}

	emu.Devices.Buzzer.OnChange = func(active bool) {
		if active {
			tm.mutex.Lock()
			tm.bell = true
			tm.mutex.Unlock()
		}
	}

	go tm.readKeys()

	_, err = io.WriteString(tm.out, ansiHideCursor+ansiClear)
	return
}

// Stop restores the terminal.
func (tm *Terminal) Stop() (err error) {
	_, err = io.WriteString(tm.out, ansiShowCursor+"\r\n")
	if tm.state != nil {
		err = errors.Join(err, term.Restore(tm.fd, tm.state))
		tm.state = nil
	}

	return
}

func (tm *Terminal) readKeys() {
	buf := make([]byte, 16)
	for {
		n, err := tm.in.Read(buf)
		if n > 0 {
			tm.keys <- slices.Clone(buf[:n])
		}
		if err != nil {
			if tm.Verbose && !errors.Is(err, io.EOF) {
				log.Printf("terminal: input: %v", err)
			}
			close(tm.keys)
			return
		}
	}
}

func (tm *Terminal) now() time.Time {
	if tm.Now == nil {
		return time.Now()
	}
	return tm.Now()
}

func (tm *Terminal) hold() time.Duration {
	if tm.Hold <= 0 {
		return DEFAULT_HOLD
	}
	return tm.Hold
}

// Input handles one read of terminal input. A lone ESC quits; ESC followed
// by more bytes is an escape sequence (arrow and function keys) and is
// ignored.
func (tm *Terminal) Input(keypad *chipio.Keypad, chunk []byte) {
	if len(chunk) > 0 && chunk[0] == KEY_ESC {
		if len(chunk) == 1 {
			tm.quit = true
		}
		return
	}

	for _, b := range chunk {
		tm.Key(keypad, b)
	}
}

// Key handles one byte of terminal input.
func (tm *Terminal) Key(keypad *chipio.Keypad, b byte) {
	if b == KEY_CTRL_C {
		tm.quit = true
		return
	}

	key, ok := KeyMap[b]
	if !ok {
		key, ok = KeyMap[b|0x20]
	}
	if !ok {
		return
	}

	if tm.Verbose {
		log.Printf("terminal: key %q -> %X", b, key)
	}

	keypad.Press(key)
	tm.release[key] = tm.now().Add(tm.hold())
}

// Refresh handles pending input, releases expired keys, and redraws the
// screen if it changed. It returns false once the user asked to quit.
func (tm *Terminal) Refresh(emu *emulator.Emulator) (ok bool) {
	keypad := emu.Devices.Keypad

drain:
	for {
		select {
		case chunk, open := <-tm.keys:
			if !open {
				tm.keys = nil
				break drain
			}
			tm.Input(keypad, chunk)
		default:
			break drain
		}
	}

	now := tm.now()
	for key, when := range tm.release {
		if !when.IsZero() && !now.Before(when) {
			keypad.Release(cpu.Nibble(key))
			tm.release[key] = time.Time{}
		}
	}

	var out strings.Builder
	if emu.Devices.Screen.Dirty() || tm.redraw {
		tm.redraw = false
		out.WriteString(ansiHome)
		out.WriteString(Render(emu.Devices.Screen))
	}

	tm.mutex.Lock()
	if tm.bell {
		tm.bell = false
		out.WriteString(ansiBell)
	}
	tm.mutex.Unlock()

	if out.Len() > 0 {
		io.WriteString(tm.out, out.String())
	}

	ok = !tm.quit
	return
}

// Render draws the screen with half-block characters. Rows end in CR LF so
// the output is correct in raw mode.
func Render(sc *chipio.Screen) string {
	var sb strings.Builder

	for y := 0; y < cpu.DISPLAY_HEIGHT; y += 2 {
		for x := range cpu.DISPLAY_WIDTH {
			top, bottom := sc.Pixel(x, y), sc.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}
