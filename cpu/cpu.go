package cpu

import (
	"errors"
	"fmt"
	"log"
	"slices"
)

// Cpu is the simulation context for a CHIP-8 processor.
type Cpu struct {
	Verbose bool    // Set to enable verbose logging.
	Origin  Address // Program load address, and initial program counter.

	Memory Memory   // Address space.
	V      [16]byte // General purpose registers; VF is the flags register.
	I      Address  // Address register.
	Pc     Address  // Program counter.
	Delay  byte     // Delay timer.
	Sound  byte     // Sound timer.
	Stack  Stack    // Return stack.

	Mode  Mode     // Execution mode.
	Fault error    // Cause of the halt, when Mode is MODE_HALTED.
	Key   Register // Destination of the pending key press, when Mode is MODE_AWAITING_KEY.

	Ticks int // Instructions executed since reset.

	dev     Devices
	program []byte
	tone    bool
}

// NewCpu creates a CPU attached to the host devices, loading programs at
// PROGRAM_ORIGIN.
func NewCpu(dev Devices) (cpu *Cpu) {
	cpu = &Cpu{
		Origin: PROGRAM_ORIGIN,
		dev:    dev.withDefaults(),
	}

	cpu.Reset()

	return
}

// Devices returns the host devices the CPU is attached to.
func (cpu *Cpu) Devices() Devices {
	return cpu.dev
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "mode", cpu.Mode)
	text += fmt.Sprintf("% 5s: %v\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "i", cpu.I)
	for n, value := range cpu.V {
		text += fmt.Sprintf("% 5s: 0x%02X\n", Register(n), value)
	}
	text += fmt.Sprintf("% 5s: 0x%02X\n", "dt", cpu.Delay)
	text += fmt.Sprintf("% 5s: 0x%02X\n", "st", cpu.Sound)

	top, err := cpu.Stack.Peek()
	if err == nil {
		text += fmt.Sprintf("% 5s: %v (%d)\n", "stack", top, cpu.Stack.Depth)
	} else {
		text += fmt.Sprintf("% 5s: -----\n", "stack")
	}

	if cpu.Fault != nil {
		text += fmt.Sprintf("% 5s: %v\n", "fault", cpu.Fault)
	}

	return
}

// Load a program image, and reset the CPU to run it.
func (cpu *Cpu) Load(program []byte) (err error) {
	cpu.program = slices.Clone(program)

	err = cpu.Reset()
	return
}

// Reset the CPU state.
//   - Clears memory, registers, stack and timers.
//   - Clears the display and silences the tone.
//   - Installs the font and the last loaded program.
//   - Sets the program counter to the origin.
//
// A program that does not fit at the origin halts the CPU with a load fault.
func (cpu *Cpu) Reset() (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.V[:])
	cpu.I = 0
	cpu.Delay = 0
	cpu.Sound = 0
	cpu.Stack.Reset()
	cpu.Ticks = 0
	cpu.Mode = MODE_RUNNING
	cpu.Fault = nil
	cpu.Key = REG_V0

	cpu.dev = cpu.dev.withDefaults()
	cpu.dev.Display.Clear()
	cpu.setTone(false)

	copy(cpu.Memory[FONT_ADDRESS:], Font[:])

	cpu.Pc = cpu.Origin
	err = cpu.Memory.Load(cpu.Origin, cpu.program)
	if err != nil {
		cpu.halt(err)
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %d bytes at %v", len(cpu.program), cpu.Origin)
	}

	return
}

// Fetch decodes the instruction at the program counter.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	word, err := cpu.Memory.Word(cpu.Pc)
	if err != nil {
		return
	}

	ins, ok := DecodeWord(word)
	if !ok {
		err = ErrInstruction{Address: cpu.Pc, Word: word}
		return
	}

	return
}

// Step executes a single instruction.
//
// When halted, the fault is returned again. When awaiting a key, the keypad
// is polled once; without a pending press Step returns with no change.
func (cpu *Cpu) Step() (err error) {
	switch cpu.Mode {
	case MODE_HALTED:
		err = cpu.Fault
		if err == nil {
			err = ErrHalted
		}
		return
	case MODE_AWAITING_KEY:
		key, ok := cpu.dev.Keypad.AwaitKey()
		if !ok {
			return
		}
		err = cpu.Resume(key)
		return
	}

	ins, err := cpu.Fetch()
	if err != nil {
		cpu.halt(err)
		return
	}

	err = cpu.Execute(ins)
	return
}

// Resume completes a pending key wait with key.
func (cpu *Cpu) Resume(key Nibble) (err error) {
	if cpu.Mode != MODE_AWAITING_KEY {
		err = ErrNotAwaitingKey
		return
	}

	if cpu.Verbose {
		log.Printf("%03x: key %X -> %v", uint16(cpu.Pc), uint8(key), cpu.Key)
	}

	cpu.V[cpu.Key.index()] = byte(key & NIBBLE_MASK)
	cpu.Pc = cpu.Pc.Next(2)
	cpu.Mode = MODE_RUNNING
	return
}

// Tick advances the delay and sound timers by one 60Hz period.
func (cpu *Cpu) Tick() {
	if cpu.Mode == MODE_HALTED {
		return
	}

	if cpu.Delay > 0 {
		cpu.Delay--
	}
	if cpu.Sound > 0 {
		cpu.Sound--
	}

	cpu.setTone(cpu.Sound != 0)
}

// Execute executes a single decoded instruction located at the program counter.
// Any error halts the CPU. While awaiting a key nothing executes, and
// ErrAwaitingKey is returned with the state unchanged.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	switch cpu.Mode {
	case MODE_HALTED:
		err = cpu.Fault
		return
	case MODE_AWAITING_KEY:
		err = ErrAwaitingKey
		return
	}

	defer func() {
		if err != nil {
			cpu.halt(errors.Join(ErrExecute{Address: cpu.Pc, Instruction: ins}, err))
			err = cpu.Fault
		}
	}()

	if cpu.Verbose {
		log.Printf("%03x: %v", uint16(cpu.Pc), ins)
	}

	v := &cpu.V
	next_pc := cpu.Pc.Next(2)
	skip := func(cond bool) {
		if cond {
			next_pc = cpu.Pc.Next(4)
		}
	}

	switch ins := ins.(type) {
	case Sys:
		// Host routines do not exist here.
	case Cls:
		cpu.dev.Display.Clear()
	case Ret:
		next_pc, err = cpu.Stack.Pop()
		if err != nil {
			return
		}
	case Jp:
		next_pc = ins.Addr & ADDRESS_MASK
	case Call:
		err = cpu.Stack.Push(next_pc)
		if err != nil {
			return
		}
		next_pc = ins.Addr & ADDRESS_MASK
	case SeImm:
		skip(v[ins.X.index()] == ins.Byte)
	case SneImm:
		skip(v[ins.X.index()] != ins.Byte)
	case SeReg:
		skip(v[ins.X.index()] == v[ins.Y.index()])
	case LdImm:
		v[ins.X.index()] = ins.Byte
	case AddImm:
		v[ins.X.index()] += ins.Byte
	case LdReg:
		v[ins.X.index()] = v[ins.Y.index()]
	case Or:
		v[ins.X.index()] |= v[ins.Y.index()]
	case And:
		v[ins.X.index()] &= v[ins.Y.index()]
	case Xor:
		v[ins.X.index()] ^= v[ins.Y.index()]
	case AddReg:
		sum := uint16(v[ins.X.index()]) + uint16(v[ins.Y.index()])
		v[ins.X.index()] = byte(sum)
		v[REG_VF] = flag(sum > 0xff)
	case Sub:
		vx, vy := v[ins.X.index()], v[ins.Y.index()]
		v[ins.X.index()] = vx - vy
		v[REG_VF] = flag(vx >= vy)
	case Shr:
		vx := v[ins.X.index()]
		v[ins.X.index()] = vx >> 1
		v[REG_VF] = vx & 0x01
	case Subn:
		vx, vy := v[ins.X.index()], v[ins.Y.index()]
		v[ins.X.index()] = vy - vx
		v[REG_VF] = flag(vy >= vx)
	case Shl:
		vx := v[ins.X.index()]
		v[ins.X.index()] = vx << 1
		v[REG_VF] = vx >> 7
	case SneReg:
		skip(v[ins.X.index()] != v[ins.Y.index()])
	case LdI:
		cpu.I = ins.Addr & ADDRESS_MASK
	case JpV0:
		next_pc = Address(uint16(v[REG_V0])+uint16(ins.Addr)) & ADDRESS_MASK
	case Rnd:
		v[ins.X.index()] = cpu.dev.Random.NextByte() & ins.Byte
	case Drw:
		v[REG_VF] = flag(cpu.draw(v[ins.X.index()], v[ins.Y.index()], ins.N))
	case Skp:
		skip(cpu.dev.Keypad.IsPressed(NibbleLow(v[ins.X.index()])))
	case Sknp:
		skip(!cpu.dev.Keypad.IsPressed(NibbleLow(v[ins.X.index()])))
	case LdVDt:
		v[ins.X.index()] = cpu.Delay
	case LdK:
		// Park on this instruction; Resume advances past it.
		cpu.Mode = MODE_AWAITING_KEY
		cpu.Key = ins.X & NIBBLE_MASK
		next_pc = cpu.Pc
	case LdDtV:
		cpu.Delay = v[ins.X.index()]
	case LdStV:
		cpu.Sound = v[ins.X.index()]
		cpu.setTone(cpu.Sound != 0)
	case AddI:
		cpu.I = cpu.I.Next(int(v[ins.X.index()]))
	case LdF:
		cpu.I = FontGlyph(NibbleLow(v[ins.X.index()]))
	case LdB:
		vx := v[ins.X.index()]
		cpu.Memory.Write(cpu.I, vx/100)
		cpu.Memory.Write(cpu.I.Next(1), (vx/10)%10)
		cpu.Memory.Write(cpu.I.Next(2), vx%10)
	case Dump:
		for r := range ins.X.index() + 1 {
			cpu.Memory.Write(cpu.I.Next(r), v[r])
		}
	case Restore:
		for r := range ins.X.index() + 1 {
			v[r] = cpu.Memory.Read(cpu.I.Next(r))
		}
	default:
		err = ErrOpcodeUnhandled
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// draw XORs an n row sprite from I onto the display at (x, y), wrapping at
// the display edges. Returns true if any pixel was turned off.
func (cpu *Cpu) draw(x, y byte, n Nibble) (collision bool) {
	for row := range int(n & NIBBLE_MASK) {
		bits := cpu.Memory.Read(cpu.I.Next(row))
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % DISPLAY_WIDTH
			py := (int(y) + row) % DISPLAY_HEIGHT
			if cpu.dev.Display.XorPixel(px, py) {
				collision = true
			}
		}
	}

	return
}

// setTone reports sound timer transitions to the tone device.
func (cpu *Cpu) setTone(active bool) {
	if active == cpu.tone {
		return
	}

	cpu.tone = active
	cpu.dev.Tone.SetToneActive(active)
}

// halt enters MODE_HALTED with the fault cause.
func (cpu *Cpu) halt(fault error) {
	if cpu.Verbose {
		log.Printf("cpu: halt: %v", fault)
	}

	cpu.Mode = MODE_HALTED
	cpu.Fault = fault
	cpu.setTone(false)
}

func flag(cond bool) byte {
	if cond {
		return 1
	}
	return 0
}
