package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.NoError(s.Push(0x234))
	assert.False(s.Empty())
	assert.Equal(1, s.Depth)
	assert.Equal([]Address{0x234}, s.Frames())
}

func TestStack_Push_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range STACK_LIMIT {
		assert.NoError(s.Push(Address(0x200 + 2*n)))
	}
	assert.True(s.Full())

	err := s.Push(0x300)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(STACK_LIMIT, s.Depth)

	top, err := s.Peek()
	assert.NoError(err)
	assert.Equal(Address(0x200+2*(STACK_LIMIT-1)), top)
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x202))
	assert.NoError(s.Push(0x404))

	val, err := s.Pop()
	assert.NoError(err)
	assert.Equal(Address(0x404), val)
	assert.Equal(1, s.Depth)

	val, err = s.Pop()
	assert.NoError(err)
	assert.Equal(Address(0x202), val)
	assert.Equal(0, s.Depth)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, err := s.Pop()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(Address(0), val)
	assert.Equal(0, s.Depth)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x202))
	assert.NoError(s.Push(0x404))

	val, err := s.Peek()
	assert.NoError(err)
	assert.Equal(Address(0x404), val)
	assert.Equal(2, s.Depth)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x202))
	s.Reset()
	assert.True(s.Empty())
	assert.Empty(s.Frames())
}
