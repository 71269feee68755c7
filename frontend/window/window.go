// Package window presents the emulator in a desktop window.
//
// The window runs one emulator frame per ebiten tick, scales the 64x32
// display, maps the keyboard onto the hex keypad, and plays the tone.
package window

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	chipio "github.com/ezrec/chip8/io"
)

const (
	DEFAULT_SCALE = 10 // Window pixels per display pixel.
)

var (
	colorOn  = [4]byte{0xe0, 0xe0, 0xe0, 0xff}
	colorOff = [4]byte{0x10, 0x10, 0x10, 0xff}
)

// KeyMap maps keyboard keys onto the hex keypad, using the same layout as
// the terminal frontend.
var KeyMap = map[ebiten.Key]cpu.Nibble{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xc,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xd,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xe,
	ebiten.KeyZ: 0xa, ebiten.KeyX: 0x0, ebiten.KeyC: 0xb, ebiten.KeyV: 0xf,
}

// Window is an ebiten game running an emulator.
type Window struct {
	Verbose bool
	Title   string
	Scale   int // Zero selects DEFAULT_SCALE.
	Mute    bool

	Frontend emulator.Frontend // If set, refreshed after every frame.

	emu    *emulator.Emulator
	err    error
	pixels []byte
	image  *ebiten.Image
}

// New creates a window for emu.
func New(emu *emulator.Emulator) (w *Window) {
	w = &Window{
		Title:  "CHIP-8",
		emu:    emu,
		pixels: make([]byte, cpu.DISPLAY_WIDTH*cpu.DISPLAY_HEIGHT*4),
	}

	return
}

func (w *Window) scale() int {
	if w.Scale <= 0 {
		return DEFAULT_SCALE
	}
	return w.Scale
}

// Run opens the window and runs the emulator until the window is closed,
// Escape is pressed, MaxFrames is reached, or the cpu faults.
func (w *Window) Run() (err error) {
	if !w.Mute {
		tone, err := NewTone(w.emu.Devices.Buzzer.Active)
		if err != nil {
			if w.Verbose {
				log.Printf("window: no audio: %v", err)
			}
		} else {
			defer tone.Close()
		}
	}

	scale := w.scale()
	ebiten.SetWindowSize(cpu.DISPLAY_WIDTH*scale, cpu.DISPLAY_HEIGHT*scale)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetTPS(emulator.TICK_RATE)

	err = ebiten.RunGame(w)
	if err == nil {
		err = w.err
	}

	return
}

// Update runs one emulator frame.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	keypad := w.emu.Devices.Keypad
	for key, pad := range KeyMap {
		switch {
		case inpututil.IsKeyJustPressed(key):
			keypad.Press(pad)
		case !ebiten.IsKeyPressed(key) && keypad.IsPressed(pad):
			keypad.Release(pad)
		}
	}

	w.err = w.emu.Frame()
	if w.Frontend != nil && !w.Frontend.Refresh(w.emu) {
		return ebiten.Termination
	}
	if w.err != nil {
		return ebiten.Termination
	}

	if w.emu.MaxFrames > 0 && w.emu.Frames >= w.emu.MaxFrames {
		return ebiten.Termination
	}

	return nil
}

// Draw copies the display into the window.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(cpu.DISPLAY_WIDTH, cpu.DISPLAY_HEIGHT)
		Pixels(w.pixels, w.emu.Devices.Screen)
	} else if w.emu.Devices.Screen.Dirty() {
		Pixels(w.pixels, w.emu.Devices.Screen)
	}

	w.image.WritePixels(w.pixels)
	screen.DrawImage(w.image, nil)
}

// Layout keeps the logical screen at display resolution; ebiten scales it
// to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return cpu.DISPLAY_WIDTH, cpu.DISPLAY_HEIGHT
}

// Pixels renders sc into an RGBA buffer of DISPLAY_WIDTH*DISPLAY_HEIGHT*4
// bytes.
func Pixels(rgba []byte, sc *chipio.Screen) {
	for y := range cpu.DISPLAY_HEIGHT {
		for x := range cpu.DISPLAY_WIDTH {
			color := colorOff
			if sc.Pixel(x, y) {
				color = colorOn
			}
			copy(rgba[(y*cpu.DISPLAY_WIDTH+x)*4:], color[:])
		}
	}
}
