package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_Scenarios(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		hi, lo byte
		ins    Instruction
		ok     bool
	}){
		{0x00, 0xe0, Cls{}, true},
		{0x00, 0xee, Ret{}, true},
		{0x0a, 0xbc, Sys{Addr: 0xabc}, true},
		{0xa2, 0x34, LdI{Addr: 0x234}, true},
		{0x82, 0x14, AddReg{X: 2, Y: 1}, true},
		{0x50, 0x01, nil, false},
		{0x80, 0x08, nil, false},
		{0x90, 0x0f, nil, false},
		{0xe0, 0x00, nil, false},
		{0xf0, 0x00, nil, false},
		{0x8a, 0xbe, Shl{X: 0xa, Y: 0xb}, true},
		{0xd1, 0x2f, Drw{X: 1, Y: 2, N: 0xf}, true},
		{0xfe, 0x65, Restore{X: 0xe}, true},
	}

	for _, entry := range table {
		ins, ok := Decode(entry.hi, entry.lo)
		assert.Equal(entry.ok, ok, "%02X%02X", entry.hi, entry.lo)
		assert.Equal(entry.ins, ins, "%02X%02X", entry.hi, entry.lo)
	}
}

func TestDecode_Total(t *testing.T) {
	assert := assert.New(t)

	mapped := 0
	for word := range 0x10000 {
		ins, ok := DecodeWord(uint16(word))
		if !ok {
			assert.Nil(ins)
			continue
		}
		mapped++
		if !assert.Equal(uint16(word), ins.Encode(), "%04X %v", word, ins) {
			break
		}
	}

	// 0x0 group (4096), 1/2/3/4/6/7/A/B/C/D (10*4096), 5/9 (2*256),
	// 8 (9*256), E (2*16), F (9*16).
	assert.Equal(11*4096+2*256+9*256+2*16+9*16, mapped)
}

func TestInstruction_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	var table []Instruction
	for _, x := range []Register{0x0, 0xf} {
		for _, y := range []Register{0x0, 0xf} {
			table = append(table,
				SeReg{x, y}, LdReg{x, y}, Or{x, y}, And{x, y}, Xor{x, y},
				AddReg{x, y}, Sub{x, y}, Shr{x, y}, Subn{x, y}, Shl{x, y},
				SneReg{x, y}, Drw{x, y, 0x0}, Drw{x, y, 0xf},
			)
		}
		for _, b := range []byte{0x00, 0xff} {
			table = append(table,
				SeImm{x, b}, SneImm{x, b}, LdImm{x, b}, AddImm{x, b}, Rnd{x, b},
			)
		}
		table = append(table,
			Skp{x}, Sknp{x}, LdVDt{x}, LdK{x}, LdDtV{x}, LdStV{x},
			AddI{x}, LdF{x}, LdB{x}, Dump{x}, Restore{x},
		)
	}
	for _, a := range []Address{0x000, 0xfff} {
		table = append(table, Jp{a}, Call{a}, LdI{a}, JpV0{a})
	}
	// Sys never covers 0x0E0 or 0x0EE.
	table = append(table, Sys{0x000}, Sys{0xfff}, Cls{}, Ret{})

	for _, ins := range table {
		word := ins.Encode()
		got, ok := DecodeWord(word)
		assert.True(ok, "%v", ins)
		assert.Equal(ins, got, "%04X", word)
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word uint16
		text string
	}){
		{0x0123, "SYS  0x123"},
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1200, "JP   0x200"},
		{0x2abc, "CALL 0xABC"},
		{0x3a0f, "SE   VA, 0x0F"},
		{0x4bff, "SNE  VB, 0xFF"},
		{0x5120, "SE   V1, V2"},
		{0x6c42, "LD   VC, 0x42"},
		{0x7d01, "ADD  VD, 0x01"},
		{0x8120, "LD   V1, V2"},
		{0x8121, "OR   V1, V2"},
		{0x8122, "AND  V1, V2"},
		{0x8123, "XOR  V1, V2"},
		{0x8124, "ADD  V1, V2"},
		{0x8125, "SUB  V1, V2"},
		{0x8126, "SHR  V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812e, "SHL  V1, V2"},
		{0x9120, "SNE  V1, V2"},
		{0xa234, "LD   I, 0x234"},
		{0xb300, "JP   V0, 0x300"},
		{0xc7f0, "RND  V7, 0xF0"},
		{0xd125, "DRW  V1, V2, 0x5"},
		{0xe59e, "SKP  V5"},
		{0xe5a1, "SKNP V5"},
		{0xf307, "LD   V3, DT"},
		{0xf30a, "LD   V3, K"},
		{0xf315, "LD   DT, V3"},
		{0xf318, "LD   ST, V3"},
		{0xf31e, "ADD  I, V3"},
		{0xf329, "LD   F, V3"},
		{0xf333, "LD   B, V3"},
		{0xf355, "LD   [I], V3"},
		{0xf365, "LD   V3, [I]"},
	}

	for _, entry := range table {
		ins, ok := DecodeWord(entry.word)
		if assert.True(ok, "%04X", entry.word) {
			assert.Equal(entry.text, ins.String(), "%04X", entry.word)
		}
	}
}

func TestInstruction_ShiftKeepsVy(t *testing.T) {
	assert := assert.New(t)

	// Vy is shown, and kept on reassembly, even though shifts ignore it.
	// Registers use an upper case hex digit.
	assert.Equal("SHR  VA, VB", Shr{X: 0xa, Y: 0xb}.String())
	assert.Equal("SHL  VA, VB", Shl{X: 0xa, Y: 0xb}.String())
	assert.Equal("SHR  V3, V3", Shr{X: 3, Y: 3}.String())

	ins, ok := DecodeWord(0x8ab6)
	assert.True(ok)
	assert.Equal(Shr{X: 0xa, Y: 0xb}, ins)
	assert.Equal(uint16(0x8ab6), ins.Encode())
}
