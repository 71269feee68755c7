// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"log"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

const (
	TICK_RATE     = 60 // Timer ticks, and frames, per second.
	DEFAULT_SPEED = 10 // Instructions per frame.
)

// Frontend presents the emulator to the user.
type Frontend interface {
	// Refresh is called after every frame. Returning false stops the run.
	Refresh(emu *Emulator) (ok bool)
}

// Emulator state. CPU + devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing, if assembled.
	Devices  *io.Devices  // Host devices attached to the CPU.

	Speed     int // Instructions per frame. Zero selects DEFAULT_SPEED.
	MaxFrames int // If non-zero, Run stops after this many frames.
	Frames    int // Frames since reset.
}

// NewEmulator creates a new emulator, seeding its random source.
func NewEmulator(seed uint64) (emu *Emulator) {
	dev := io.NewDevices(seed)

	emu = &Emulator{
		Cpu:     cpu.NewCpu(dev.Cpu()),
		Devices: dev,
	}

	return
}

// Load a raw program image.
func (emu *Emulator) Load(data []byte) (err error) {
	emu.Program = nil
	emu.Frames = 0
	emu.Devices.Reset()

	err = emu.Cpu.Load(data)
	return
}

// LoadProgram loads an assembled program at its origin.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	emu.Cpu.Origin = prog.Origin

	err = emu.Load(prog.Binary())
	emu.Program = prog
	return
}

// Reset the emulator to the start of the loaded program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Frames = 0
	emu.Devices.Reset()

	err = emu.Cpu.Reset()
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

func (emu *Emulator) speed() int {
	if emu.Speed <= 0 {
		return DEFAULT_SPEED
	}
	return emu.Speed
}

// Frame executes one frame: up to Speed instructions, then one timer tick.
// Instruction execution stops early while awaiting a key.
func (emu *Emulator) Frame() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: uint16(emu.Cpu.Pc), LineNo: emu.LineNo(), Err: err}
		}
	}()

	for range emu.speed() {
		waiting := emu.Cpu.Mode == cpu.MODE_AWAITING_KEY
		err = emu.Cpu.Step()
		if err != nil {
			return
		}
		if emu.Cpu.Mode == cpu.MODE_AWAITING_KEY {
			if !waiting {
				// Only presses after the wait begins complete it.
				emu.Devices.Keypad.Flush()
			}
			break
		}
	}

	emu.Cpu.Tick()
	emu.Frames++

	return
}

// RunFrames executes n frames as fast as possible.
func (emu *Emulator) RunFrames(n int) (err error) {
	for range n {
		err = emu.Frame()
		if err != nil {
			return
		}
	}

	return
}

// Run executes frames at TICK_RATE, refreshing the frontend after each,
// until the context is done, the frontend quits, MaxFrames is reached, or
// the CPU faults.
func (emu *Emulator) Run(ctx context.Context, fe Frontend) (err error) {
	ticker := time.NewTicker(time.Second / TICK_RATE)
	defer ticker.Stop()

	if emu.Verbose {
		log.Printf("emulator: run at %d instructions per frame", emu.speed())
	}

	for {
		err = emu.Frame()
		if fe != nil && !fe.Refresh(emu) {
			return
		}
		if err != nil {
			return
		}
		if emu.MaxFrames > 0 && emu.Frames >= emu.MaxFrames {
			return
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-ticker.C:
		}
	}
}
