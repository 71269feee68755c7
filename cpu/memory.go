package cpu

const (
	MEMORY_SIZE    = 4096  // Bytes of addressable memory.
	PROGRAM_ORIGIN = 0x200 // Default program load address.
)

// Memory is the 4KiB address space.
type Memory [MEMORY_SIZE]byte

// Load copies data into memory at origin.
// The origin must be word aligned and the whole image must fit.
func (mem *Memory) Load(origin Address, data []byte) (err error) {
	switch {
	case uint16(origin) > ADDRESS_MASK:
		err = ErrLoad{Origin: origin, Size: len(data), Err: ErrAddressRange}
	case origin&1 != 0:
		err = ErrLoad{Origin: origin, Size: len(data), Err: ErrAddressAlign}
	case int(origin)+len(data) > MEMORY_SIZE:
		err = ErrLoad{Origin: origin, Size: len(data), Err: ErrOutOfMemory}
	}
	if err != nil {
		return
	}

	copy(mem[origin:], data)
	return
}

// Word fetches the big-endian word at addr.
func (mem *Memory) Word(addr Address) (word uint16, err error) {
	switch {
	case addr&1 != 0:
		err = ErrFetch{Address: addr, Err: ErrAddressAlign}
	case int(addr)+2 > MEMORY_SIZE:
		err = ErrFetch{Address: addr, Err: ErrAddressRange}
	default:
		word = uint16(mem[addr])<<8 | uint16(mem[addr+1])
	}
	return
}

// Read the byte at addr, wrapping at the top of memory.
func (mem *Memory) Read(addr Address) byte {
	return mem[addr&ADDRESS_MASK]
}

// Write the byte at addr, wrapping at the top of memory.
func (mem *Memory) Write(addr Address, value byte) {
	mem[addr&ADDRESS_MASK] = value
}

// Reset zeroes all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
