package cpu

const (
	FONT_ADDRESS     = Address(0x000) // Location of the built-in digit sprites.
	FONT_GLYPH_BYTES = 5              // Rows per digit sprite.
)

// Font holds the 4x5 sprites for the hex digits 0 through F.
var Font = [KEY_COUNT * FONT_GLYPH_BYTES]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// FontGlyph returns the address of the sprite for digit.
func FontGlyph(digit Nibble) Address {
	return FONT_ADDRESS + Address(digit&NIBBLE_MASK)*FONT_GLYPH_BYTES
}
