package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes_Checked(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNibble(0xf)
	assert.NoError(err)
	assert.Equal(Nibble(0xf), n)

	_, err = NewNibble(0x10)
	assert.ErrorAs(err, &ErrRange{})

	r, err := NewRegister(0xf)
	assert.NoError(err)
	assert.Equal(REG_VF, r)

	_, err = NewRegister(16)
	assert.Error(err)

	a, err := NewAddress(0xfff)
	assert.NoError(err)
	assert.Equal(Address(0xfff), a)

	_, err = NewAddress(0x1000)
	assert.EqualError(err, "address 0x1000 out of range")
}

func TestTypes_Extract(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Nibble(0xa), NibbleHigh(0xa2))
	assert.Equal(Nibble(0x2), NibbleLow(0xa2))
	assert.Equal(Address(0x234), MakeAddress(0xa2, 0x34))
	assert.Equal(Address(0xfff), MakeAddress(0xff, 0xff))
}

func TestTypes_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("V0", REG_V0.String())
	assert.Equal("VF", REG_VF.String())
	assert.Equal("VA", Register(0xa).String())
	assert.Equal("0x234", Address(0x234).String())
	assert.Equal("0x005", Address(0x5).String())
}

func TestTypes_AddressNext(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Address(0x202), Address(0x200).Next(2))
	assert.Equal(Address(0x000), Address(0xffe).Next(2))
	assert.Equal(Address(0x001), Address(0xfff).Next(2))
}
