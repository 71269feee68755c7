// Package disasm renders CHIP-8 program images as assembler text.
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
)

const (
	PLACEHOLDER = "--" // Mnemonic of words with no instruction mapping.
)

// Options select the columns of the disassembly.
type Options struct {
	Addresses bool   // Prefix each line with its address.
	Binary    bool   // Prefix each line with the instruction bytes.
	Start     uint16 // Address of the first byte of the program.
}

// Disassembler formats words as text lines.
type Disassembler struct {
	opts Options
}

// New creates a disassembler with fixed options.
func New(opts Options) *Disassembler {
	return &Disassembler{opts: opts}
}

// Options returns the options the disassembler was created with.
func (dis *Disassembler) Options() Options {
	return dis.opts
}

// Mnemonic returns the text of a single word, or PLACEHOLDER.
func Mnemonic(hi, lo byte) string {
	ins, ok := cpu.Decode(hi, lo)
	if !ok {
		return PLACEHOLDER
	}
	return ins.String()
}

// Line formats the word at addr.
func (dis *Disassembler) Line(addr uint16, hi, lo byte) string {
	text := Mnemonic(hi, lo)

	switch {
	case dis.opts.Addresses && dis.opts.Binary:
		return fmt.Sprintf("%03X   %02X %02X    %s", addr, hi, lo, text)
	case dis.opts.Addresses:
		return fmt.Sprintf("%03X    %s", addr, text)
	case dis.opts.Binary:
		return fmt.Sprintf("%02X %02X    %s", hi, lo, text)
	default:
		return text
	}
}

// Disassemble writes one line per word of program to w.
// Odd length programs are rejected before anything is written.
func (dis *Disassembler) Disassemble(program []byte, w io.Writer) (err error) {
	if len(program)%2 != 0 {
		err = ErrOddLength
		return
	}

	out := bufio.NewWriter(w)
	for n, word := range internal.IterPairs(program) {
		addr := dis.opts.Start + uint16(n)
		_, err = fmt.Fprintln(out, dis.Line(addr, word[0], word[1]))
		if err != nil {
			return
		}
	}

	err = out.Flush()
	return
}
