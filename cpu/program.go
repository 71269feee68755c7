package cpu

import (
	"iter"
)

// Opcode is the output of one line of assembly.
type Opcode struct {
	LineNo    int      // Source line number.
	Address   Address  // Address of the first byte.
	Words     []string // Source words, after equate substitution.
	Bytes     []byte   // Generated bytes.
	LinkLabel string   // Label linked into the address field, if any.
}

// Program is an assembled program image.
type Program struct {
	Origin  Address
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Offset int // Byte offset of the address within the opcode.
}

// Debug finds the opcode that generated the byte at addr.
func (prog *Program) Debug(addr Address) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Address && int(addr) < int(op.Address)+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Offset: int(addr - op.Address),
			}
			break
		}
	}

	return
}

// Binary returns the program image, to be loaded at Origin.
func (prog *Program) Binary() (bins []byte) {
	for _, b := range prog.Bytes() {
		bins = append(bins, b)
	}

	return
}

// Bytes iterates over the image bytes and their addresses.
func (prog *Program) Bytes() iter.Seq2[Address, byte] {
	return func(yield func(addr Address, b byte) bool) {
		for _, op := range prog.Opcodes {
			for n, b := range op.Bytes {
				if !yield(op.Address+Address(n), b) {
					return
				}
			}
		}
	}
}
