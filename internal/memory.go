package internal

import "fmt"

// Memory layout constants
const (
	totalMemory    = 0x1000
	fontStartAddr  = 0x000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
)

// Memory is the 4 KB address space of the VM. The font glyphs live at the
// bottom of memory and programs are loaded at 0x200.
type Memory [totalMemory]uint8

// newMemory returns zeroed memory with the font glyphs seeded.
func newMemory() Memory {
	var m Memory
	copy(m[fontStartAddr:], fontset)
	return m
}

// Load copies a program verbatim into memory starting at 0x200.
// Memory is left untouched if the program does not fit.
func (m *Memory) Load(program []byte) error {
	if len(program) > maxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrRomTooLarge, len(program), maxProgramSize)
	}
	copy(m[pcStartAddr:], program)
	return nil
}

// Word returns the big-endian 16-bit value at addr and addr+1.
func (m *Memory) Word(addr uint16) (uint16, error) {
	if int(addr)+1 >= totalMemory {
		return 0, fmt.Errorf("%w: fetching %04X", ErrOutOfBounds, addr)
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// Slice returns the n bytes starting at addr. The returned slice aliases
// memory.
func (m *Memory) Slice(addr uint16, n int) ([]uint8, error) {
	end := int(addr) + n
	if end > totalMemory {
		return nil, fmt.Errorf("%w: %d bytes at %04X", ErrOutOfBounds, n, addr)
	}
	return m[addr:end], nil
}
