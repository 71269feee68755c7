package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
)

func TestDisassemble_Columns(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		opts Options
		text string
	}){
		{"both", Options{Addresses: true, Binary: true, Start: 0x200}, "200   A2 34    LD   I, 0x234\n"},
		{"address", Options{Addresses: true, Start: 0x200}, "200    LD   I, 0x234\n"},
		{"binary", Options{Binary: true, Start: 0x200}, "A2 34    LD   I, 0x234\n"},
		{"neither", Options{}, "LD   I, 0x234\n"},
	}

	for _, entry := range table {
		var buf bytes.Buffer
		dis := New(entry.opts)
		assert.Equal(entry.opts, dis.Options(), entry.name)
		assert.NoError(dis.Disassemble([]byte{0xa2, 0x34}, &buf), entry.name)
		assert.Equal(entry.text, buf.String(), entry.name)
	}
}

func TestDisassemble_Program(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	dis := New(Options{Addresses: true, Binary: true, Start: 0x300})
	err := dis.Disassemble([]byte{0x00, 0xe0, 0x50, 0x01, 0x12, 0x00}, &buf)
	assert.NoError(err)

	assert.Equal(strings.Join([]string{
		"300   00 E0    CLS",
		"302   50 01    --",
		"304   12 00    JP   0x200",
		"",
	}, "\n"), buf.String())
}

func TestDisassemble_OddLength(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	err := New(Options{}).Disassemble([]byte{0x00, 0xe0, 0x12}, &buf)
	assert.ErrorIs(err, ErrOddLength)
	assert.Equal(0, buf.Len())
}

func TestDisassemble_Empty(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(New(Options{Addresses: true}).Disassemble(nil, &buf))
	assert.Equal("", buf.String())
}

func TestMnemonic(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("CLS", Mnemonic(0x00, 0xe0))
	assert.Equal("ADD  V2, V1", Mnemonic(0x82, 0x14))
	assert.Equal(PLACEHOLDER, Mnemonic(0x80, 0x08))
}

func TestDisassemble_Reassemble(t *testing.T) {
	assert := assert.New(t)

	program := []byte{
		0x00, 0xe0, 0xa2, 0x2a, 0x60, 0x0c, 0x61, 0x08,
		0xd0, 0x15, 0x70, 0x09, 0xa2, 0x39, 0xd0, 0x15,
		0xf3, 0x0a, 0x83, 0x4e, 0xf3, 0x33, 0xf2, 0x65,
		0xe1, 0xa1, 0x22, 0x20, 0x12, 0x00, 0x00, 0xee,
	}

	var buf bytes.Buffer
	assert.NoError(New(Options{}).Disassemble(program, &buf))

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(&buf)
	if assert.NoError(err) {
		assert.Equal(program, prog.Binary())
	}
}
