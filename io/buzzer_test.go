package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuzzer(t *testing.T) {
	assert := assert.New(t)

	var changes []bool
	bz := &Buzzer{
		OnChange: func(active bool) { changes = append(changes, active) },
	}

	assert.False(bz.Active())

	bz.SetToneActive(true)
	bz.SetToneActive(true)
	assert.True(bz.Active())

	bz.SetToneActive(false)
	assert.False(bz.Active())

	assert.Equal(2, bz.Transitions())
	assert.Equal([]bool{true, false}, changes)
}

func TestDevices_Reset(t *testing.T) {
	assert := assert.New(t)

	dev := NewDevices(0)
	dev.Screen.XorPixel(1, 1)
	dev.Keypad.Press(3)
	dev.Buzzer.SetToneActive(true)

	dev.Reset()
	assert.False(dev.Screen.Pixel(1, 1))
	assert.False(dev.Keypad.IsPressed(3))
	assert.False(dev.Buzzer.Active())
}
