package internal

import (
	"errors"
	"fmt"
)

// Errors reported by the VM. Execution errors returned from Step are wrapped
// in an *ExecError and can be matched with errors.Is.
var (
	ErrRomTooLarge    = errors.New("program size exceeds the maximum size")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrOutOfBounds    = errors.New("memory access out of bounds")
)

// ExecError is a fatal execution error. It carries the program counter and
// the opcode of the instruction that failed.
type ExecError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing opcode %04X at %03X: %v", e.Opcode, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
