package internal

import "fmt"

const stackDepth = 16

// Stack is the bounded call stack holding subroutine return addresses.
type Stack struct {
	entries [stackDepth]uint16
	sp      uint8
}

// Push stores addr on top of the stack.
func (s *Stack) Push(addr uint16) error {
	if int(s.sp) == stackDepth {
		return fmt.Errorf("%w: depth %d exceeded", ErrStackOverflow, stackDepth)
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Len returns the number of stored return addresses.
func (s *Stack) Len() int {
	return int(s.sp)
}
