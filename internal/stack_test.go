package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStack(t *testing.T) {
	var s Stack
	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := range stackDepth {
		assert.NoError(t, s.Push(uint16(0x200+2*i)))
	}
	assert.True(t, errors.Is(s.Push(0x300), ErrStackOverflow))
	assert.Equal(t, stackDepth, s.Len())

	for i := stackDepth - 1; i >= 0; i-- {
		addr, err := s.Pop()
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x200+2*i), addr)
	}
	assert.Equal(t, 0, s.Len())
}
