package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
)

func TestScreen_XorPixel(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	assert.False(sc.Dirty())

	assert.False(sc.XorPixel(3, 4))
	assert.True(sc.Pixel(3, 4))
	assert.True(sc.Dirty())
	assert.False(sc.Dirty())

	assert.True(sc.XorPixel(3, 4))
	assert.False(sc.Pixel(3, 4))

	// Wraps.
	assert.False(sc.XorPixel(cpu.DISPLAY_WIDTH+1, -1))
	assert.True(sc.Pixel(1, cpu.DISPLAY_HEIGHT-1))

	assert.False(sc.Pixel(-1, 0))
	assert.False(sc.Pixel(0, cpu.DISPLAY_HEIGHT))
}

func TestScreen_Clear(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	sc.XorPixel(0, 0)
	sc.Dirty()

	sc.Clear()
	assert.False(sc.Pixel(0, 0))
	assert.True(sc.Dirty())
}

func TestScreen_String(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	sc.XorPixel(0, 0)
	sc.XorPixel(63, 31)

	lines := strings.Split(sc.String(), "\n")
	assert.Len(lines, cpu.DISPLAY_HEIGHT+1)
	assert.Equal("#"+strings.Repeat(".", 63), lines[0])
	assert.Equal(strings.Repeat(".", 63)+"#", lines[31])
	assert.Equal("", lines[32])
}

func TestScreen_Cpu(t *testing.T) {
	assert := assert.New(t)

	dev := NewDevices(1)
	c := cpu.NewCpu(dev.Cpu())

	// LD V0, 0; LD F, V0; DRW V0, V0, 5
	assert.NoError(c.Load([]byte{0x60, 0x00, 0xf0, 0x29, 0xd0, 0x05}))
	for range 3 {
		assert.NoError(c.Step())
	}

	lines := strings.Split(dev.Screen.String(), "\n")
	assert.Equal("####", lines[0][:4])
	assert.Equal("#..#", lines[1][:4])
	assert.Equal("####", lines[4][:4])
	assert.Equal(byte(0), c.V[cpu.REG_VF])
}
