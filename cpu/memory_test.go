package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		origin Address
		size   int
		err    error
	}){
		{"empty", 0x200, 0, nil},
		{"small", 0x200, 3, nil},
		{"exact", 0x200, MEMORY_SIZE - 0x200, nil},
		{"oversize", 0x200, MEMORY_SIZE - 0x200 + 1, ErrOutOfMemory},
		{"origin zero", 0x000, MEMORY_SIZE, nil},
		{"origin odd", 0x201, 2, ErrAddressAlign},
		{"origin range", 0x1000, 0, ErrAddressRange},
	}

	for _, entry := range table {
		mem := &Memory{}
		data := make([]byte, entry.size)
		for n := range data {
			data[n] = byte(n + 1)
		}
		err := mem.Load(entry.origin, data)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
			assert.ErrorAs(err, &ErrLoad{}, entry.name)
			assert.Contains(err.Error(), entry.err.Error(), entry.name)
			continue
		}
		assert.NoError(err, entry.name)
		if entry.size > 0 {
			assert.Equal(byte(1), mem[entry.origin], entry.name)
		}
	}
}

func TestMemory_Word(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem[0x200] = 0xa2
	mem[0x201] = 0x34
	mem[0xffe] = 0x12
	mem[0xfff] = 0x00

	word, err := mem.Word(0x200)
	assert.NoError(err)
	assert.Equal(uint16(0xa234), word)

	word, err = mem.Word(0xffe)
	assert.NoError(err)
	assert.Equal(uint16(0x1200), word)

	_, err = mem.Word(0x201)
	assert.ErrorIs(err, ErrAddressAlign)

	_, err = mem.Word(0x1000)
	assert.ErrorIs(err, ErrAddressRange)
}

func TestMemory_Wrap(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(0x1001, 0x55)
	assert.Equal(byte(0x55), mem[0x001])
	assert.Equal(byte(0x55), mem.Read(0x001))
	assert.Equal(byte(0x55), mem.Read(0x2001))

	mem.Reset()
	assert.Equal(byte(0), mem.Read(0x001))
}
