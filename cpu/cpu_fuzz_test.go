package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	f.Add(byte(0x00), byte(0xe0))
	f.Add(byte(0x50), byte(0x01))
	f.Add(byte(0x80), byte(0x08))
	f.Add(byte(0xff), byte(0xff))

	f.Fuzz(func(t *testing.T, hi, lo byte) {
		assert := assert.New(t)

		ins, ok := Decode(hi, lo)
		if !ok {
			assert.Nil(ins)
			return
		}

		word := uint16(hi)<<8 | uint16(lo)
		assert.Equal(word, ins.Encode(), "%v", ins)
		assert.NotEmpty(ins.String())
	})
}

func FuzzStep(f *testing.F) {
	f.Add(uint16(0x1200), byte(0), byte(0), uint16(0x000), byte(0))
	f.Add(uint16(0x2200), byte(0), byte(0), uint16(0xffe), byte(0))
	f.Add(uint16(0xd01f), byte(63), byte(31), uint16(0xffa), byte(16))
	f.Add(uint16(0xff55), byte(0xff), byte(0xff), uint16(0xff8), byte(0))
	f.Add(uint16(0xf00a), byte(0), byte(0), uint16(0x000), byte(3))

	f.Fuzz(func(t *testing.T, word uint16, vx, vy byte, i uint16, depth byte) {
		assert := assert.New(t)

		keys := &testKeys{}
		keys.down[vx&NIBBLE_MASK] = true
		keys.pending = []Nibble{NibbleLow(vy)}

		cpu := NewCpu(Devices{
			Display: &testScreen{},
			Keypad:  keys,
			Random:  testRandom(vx ^ vy),
			Tone:    &testTone{},
		})
		assert.NoError(cpu.Load([]byte{byte(word >> 8), byte(word)}))

		x := NibbleLow(byte(word >> 8))
		y := NibbleHigh(byte(word))
		cpu.V[x] = vx
		cpu.V[y] = vy
		cpu.I = Address(i) & ADDRESS_MASK
		for range int(depth) % (STACK_LIMIT + 1) {
			assert.NoError(cpu.Stack.Push(0x300))
		}

		err := cpu.Step()
		if err != nil {
			assert.Equal(MODE_HALTED, cpu.Mode)
			assert.Equal(err, cpu.Fault)
			switch {
			case errors.Is(err, ErrOpcodeDecode):
			case errors.Is(err, ErrStackFull):
				assert.True(cpu.Stack.Full())
			case errors.Is(err, ErrStackEmpty):
				assert.True(cpu.Stack.Empty())
			default:
				assert.NoError(err)
			}
			return
		}

		assert.NotEqual(MODE_HALTED, cpu.Mode)
		assert.Equal(0, int(cpu.Pc)&^ADDRESS_MASK)
		assert.Equal(0, int(cpu.I)&^ADDRESS_MASK)
		assert.LessOrEqual(cpu.Stack.Depth, STACK_LIMIT)

		// A second step never panics either.
		_ = cpu.Step()
	})
}
