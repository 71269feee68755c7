package cpu

import (
	"fmt"
)

// Nibble is a 4-bit value.
type Nibble uint8

// Register identifies one of the sixteen V registers.
type Register uint8

// Address is a 12-bit memory address.
type Address uint16

const (
	NIBBLE_MASK  = 0xf   // Valid bits of a Nibble.
	ADDRESS_MASK = 0xfff // Valid bits of an Address.

	REG_V0 = Register(0x0) // First general purpose register.
	REG_VF = Register(0xf) // Flags register.
)

// NewNibble returns value as a Nibble, or an error if it needs more than 4 bits.
func NewNibble(value uint8) (n Nibble, err error) {
	if value > NIBBLE_MASK {
		err = ErrRange{Kind: "nibble", Value: uint(value)}
		return
	}

	n = Nibble(value)
	return
}

// NewRegister returns the register with the given index.
func NewRegister(index uint8) (r Register, err error) {
	if index > NIBBLE_MASK {
		err = ErrRange{Kind: "register", Value: uint(index)}
		return
	}

	r = Register(index)
	return
}

// NewAddress returns value as an Address, or an error if it needs more than 12 bits.
func NewAddress(value uint16) (a Address, err error) {
	if value > ADDRESS_MASK {
		err = ErrRange{Kind: "address", Value: uint(value)}
		return
	}

	a = Address(value)
	return
}

// NibbleHigh returns the upper four bits of b.
func NibbleHigh(b byte) Nibble {
	return Nibble((b >> 4) & NIBBLE_MASK)
}

// NibbleLow returns the lower four bits of b.
func NibbleLow(b byte) Nibble {
	return Nibble(b & NIBBLE_MASK)
}

// MakeAddress builds an address from the low nibble of hi and all of lo.
func MakeAddress(hi, lo byte) Address {
	return Address(uint16(hi&NIBBLE_MASK)<<8 | uint16(lo))
}

// String returns the assembler name of the register, with an upper case
// hex digit to match the other operands.
func (r Register) String() string {
	return fmt.Sprintf("V%X", uint8(r)&NIBBLE_MASK)
}

// String returns the address in the assembler's hex notation.
func (a Address) String() string {
	return fmt.Sprintf("0x%03X", uint16(a)&ADDRESS_MASK)
}

// Next returns the address n bytes further on, wrapping at the top of memory.
func (a Address) Next(n int) Address {
	return Address((int(a) + n) & ADDRESS_MASK)
}

// index returns the register as a V slot index.
func (r Register) index() int {
	return int(r & NIBBLE_MASK)
}
