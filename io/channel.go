// Package io provides the host devices for the CHIP-8 cpu.
// It includes the monochrome display (Screen), the sixteen key input device
// (Keypad), the random byte source (Random), and the tone output (Buzzer).
package io

import (
	"github.com/ezrec/chip8/cpu"
)

// Devices bundles one of each device, ready to attach to a cpu.
type Devices struct {
	Screen *Screen
	Keypad *Keypad
	Random *Random
	Buzzer *Buzzer
}

// NewDevices creates a fresh set of devices, seeding the random source.
func NewDevices(seed uint64) (dev *Devices) {
	dev = &Devices{
		Screen: &Screen{},
		Keypad: &Keypad{},
		Random: NewRandom(seed),
		Buzzer: &Buzzer{},
	}

	return
}

// Cpu returns the devices in the form a cpu attaches to.
func (dev *Devices) Cpu() cpu.Devices {
	return cpu.Devices{
		Display: dev.Screen,
		Keypad:  dev.Keypad,
		Random:  dev.Random,
		Tone:    dev.Buzzer,
	}
}

// Reset returns every device to its power-on state.
func (dev *Devices) Reset() {
	dev.Screen.Clear()
	dev.Keypad.Reset()
	dev.Buzzer.SetToneActive(false)
}
