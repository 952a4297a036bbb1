package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestExecute_Flow(t *testing.T) {
	t.Run("jump", func(t *testing.T) {
		vm := newTestVM(t, 0x1345)
		stepN(t, vm, 1)
		assert.Equal(t, uint16(0x345), vm.PC())
	})

	t.Run("jump with V0 offset", func(t *testing.T) {
		vm := newTestVM(t, 0x6010, 0xB300)
		stepN(t, vm, 2)
		assert.Equal(t, uint16(0x310), vm.PC())
	})

	t.Run("call and return", func(t *testing.T) {
		// 200: CALL 206, 202: LD V1 07, 204: JP 204, 206: LD V0 01, 208: RET
		vm := newTestVM(t, 0x2206, 0x6107, 0x1204, 0x6001, 0x00EE)
		stepN(t, vm, 1)
		assert.Equal(t, uint16(0x206), vm.PC())
		assert.Equal(t, 1, vm.stack.Len())

		stepN(t, vm, 2)
		assert.Equal(t, uint16(0x202), vm.PC())
		assert.Equal(t, 0, vm.stack.Len())

		stepN(t, vm, 1)
		assert.Equal(t, uint8(0x07), vm.V(1))
		assert.Equal(t, uint8(0x01), vm.V(0))
	})

	t.Run("return with empty stack", func(t *testing.T) {
		vm := newTestVM(t, 0x00EE)
		err := vm.Step()
		assert.True(t, errors.Is(err, ErrStackUnderflow))
		var execErr *ExecError
		assert.True(t, errors.As(err, &execErr))
		assert.Equal(t, uint16(0x00EE), execErr.Opcode)
	})

	t.Run("stack overflow", func(t *testing.T) {
		vm := newTestVM(t, 0x2200) // calls itself forever
		stepN(t, vm, stackDepth)
		err := vm.Step()
		assert.True(t, errors.Is(err, ErrStackOverflow))
		assert.Equal(t, stackDepth, vm.stack.Len())
	})
}

func TestExecute_Skip(t *testing.T) {
	tests := []struct {
		name    string
		opcodes []uint16
		steps   int
		pc      uint16
	}{
		{"SE byte taken", []uint16{0x6042, 0x3042}, 2, 0x206},
		{"SE byte not taken", []uint16{0x6042, 0x3043}, 2, 0x204},
		{"SNE byte taken", []uint16{0x6042, 0x4043}, 2, 0x206},
		{"SNE byte not taken", []uint16{0x6042, 0x4042}, 2, 0x204},
		{"SE reg taken", []uint16{0x6042, 0x6142, 0x5010}, 3, 0x208},
		{"SE reg not taken", []uint16{0x6042, 0x6141, 0x5010}, 3, 0x206},
		{"SNE reg taken", []uint16{0x6042, 0x6141, 0x9010}, 3, 0x208},
		{"SNE reg not taken", []uint16{0x6042, 0x6142, 0x9010}, 3, 0x206},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcodes...)
			stepN(t, vm, tt.steps)
			assert.Equal(t, tt.pc, vm.PC())
		})
	}
}

func TestExecute_Load(t *testing.T) {
	vm := newTestVM(t, 0x6AFE, 0x7A03, 0x7A01, 0xA123)
	stepN(t, vm, 1)
	assert.Equal(t, uint8(0xFE), vm.V(0xA))

	// 7xkk wraps and leaves VF untouched
	stepN(t, vm, 2)
	assert.Equal(t, uint8(0x02), vm.V(0xA))
	assert.Equal(t, uint8(0), vm.V(0xF))

	stepN(t, vm, 1)
	assert.Equal(t, uint16(0x123), vm.I())
	assert.Equal(t, uint16(0x208), vm.PC())
}

func TestExecute_ALU(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy uint8
		opcode uint16
		result uint8
		flag   uint8
	}{
		{"LD", 0x01, 0x02, 0x8120, 0x02, 0},
		{"OR", 0x0C, 0x0A, 0x8121, 0x0E, 0},
		{"AND", 0x0C, 0x0A, 0x8122, 0x08, 0},
		{"XOR", 0x0C, 0x0A, 0x8123, 0x06, 0},
		{"ADD no carry", 0x10, 0x20, 0x8124, 0x30, 0},
		{"ADD carry", 0xFF, 0x01, 0x8124, 0x00, 1},
		{"ADD carry max", 0xFF, 0xFF, 0x8124, 0xFE, 1},
		{"SUB no borrow", 0x05, 0x03, 0x8125, 0x02, 1},
		{"SUB equal", 0x05, 0x05, 0x8125, 0x00, 1},
		{"SUB borrow", 0x01, 0x02, 0x8125, 0xFF, 0},
		{"SHR odd", 0x05, 0x00, 0x8126, 0x02, 1},
		{"SHR even", 0x04, 0xFF, 0x8126, 0x02, 0},
		{"SUBN no borrow", 0x03, 0x05, 0x8127, 0x02, 1},
		{"SUBN borrow", 0x02, 0x01, 0x8127, 0xFF, 0},
		{"SHL msb set", 0x81, 0x00, 0x812E, 0x02, 1},
		{"SHL msb clear", 0x41, 0xFF, 0x812E, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[1] = tt.vx
			vm.regV[2] = tt.vy
			stepN(t, vm, 1)

			assert.Equal(t, tt.result, vm.V(1))
			assert.Equal(t, tt.vy, vm.V(2))
			assert.Equal(t, tt.flag, vm.V(0xF))
			assert.Equal(t, uint16(0x202), vm.PC())
		})
	}
}

func TestExecute_ALUFlagRegisterDestination(t *testing.T) {
	vm := newTestVM(t, 0x8F14)
	vm.regV[0xF] = 0xFF
	vm.regV[1] = 0x01
	stepN(t, vm, 1)
	assert.Equal(t, uint8(1), vm.V(0xF))
}

func TestExecute_LegacyShift(t *testing.T) {
	opts := DefaultOptions()
	opts.LegacyShift = true

	vm := newTestVMWithOptions(t, opts, 0x8126, 0x834E)
	vm.regV[1] = 0xFF
	vm.regV[2] = 0x03
	vm.regV[4] = 0x80
	stepN(t, vm, 2)

	assert.Equal(t, uint8(0x01), vm.V(1))
	assert.Equal(t, uint8(0x00), vm.V(3))
	assert.Equal(t, uint8(1), vm.V(0xF))
}

func TestExecute_Random(t *testing.T) {
	vm := newTestVM(t, 0xC10F, 0xC200)
	vm.regV[2] = 0xFF
	stepN(t, vm, 2)
	assert.Equal(t, uint8(0), vm.V(1)&0xF0)
	assert.Equal(t, uint8(0), vm.V(2))

	opts := DefaultOptions()
	opts.Seed = 42
	first := newTestVMWithOptions(t, opts, 0xC1FF)
	second := newTestVMWithOptions(t, opts, 0xC1FF)
	stepN(t, first, 1)
	stepN(t, second, 1)
	assert.Equal(t, first.V(1), second.V(1))
}

func TestExecute_Draw(t *testing.T) {
	// draw the 2 glyph twice at 2, 3
	vm := newTestVM(t, 0x6002, 0x6103, 0xF029, 0xD015, 0xD015)
	vm.UnsetDrawFlag()
	stepN(t, vm, 4)

	assert.True(t, vm.IsDrawFlagSet())
	assert.Equal(t, uint8(0), vm.V(0xF))
	assert.True(t, vm.Framebuffer().Pixel(2, 3))
	assert.True(t, vm.Framebuffer().Pixel(5, 3))
	assert.False(t, vm.Framebuffer().Pixel(3, 4))
	assert.True(t, vm.Framebuffer().Pixel(2, 7))

	stepN(t, vm, 1)
	assert.Equal(t, uint8(1), vm.V(0xF))
	assert.Equal(t, [ScreenWidth][ScreenHeight]uint8{}, vm.Framebuffer().Pixels())
}

func TestExecute_DrawOutOfBounds(t *testing.T) {
	vm := newTestVM(t, 0xAFFE, 0xD005)
	stepN(t, vm, 1)
	err := vm.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestExecute_ClearScreen(t *testing.T) {
	vm := newTestVM(t, 0xD015, 0x00E0)
	stepN(t, vm, 1)
	assert.True(t, vm.Framebuffer().Pixel(0, 0))
	vm.UnsetDrawFlag()

	stepN(t, vm, 1)
	assert.True(t, vm.IsDrawFlagSet())
	assert.Equal(t, [ScreenWidth][ScreenHeight]uint8{}, vm.Framebuffer().Pixels())
}

func TestExecute_Keys(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		pressed bool
		pc      uint16
	}{
		{"SKP pressed", 0xE19E, true, 0x206},
		{"SKP released", 0xE19E, false, 0x204},
		{"SKNP pressed", 0xE1A1, true, 0x204},
		{"SKNP released", 0xE1A1, false, 0x206},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, 0x610A, tt.opcode)
			vm.Keypad().SetPressed(0xA, tt.pressed)
			stepN(t, vm, 2)
			assert.Equal(t, tt.pc, vm.PC())
		})
	}

	t.Run("key index out of range", func(t *testing.T) {
		vm := newTestVM(t, 0x6120, 0xE19E)
		vm.Keypad().SetPressed(0x0, true)
		stepN(t, vm, 2)
		assert.Equal(t, uint16(0x204), vm.PC())
	})
}

func TestExecute_WaitForKey(t *testing.T) {
	vm := newTestVM(t, 0xF30A, 0x6101)
	for range 5 {
		stepN(t, vm, 1)
		assert.True(t, vm.WaitingForKey())
		assert.Equal(t, uint16(0x200), vm.PC())
	}

	// timers keep running while suspended
	vm.timers.Delay = 2
	vm.Tick()
	assert.Equal(t, uint8(1), vm.DelayTimer())

	vm.Keypad().SetPressed(0xC, true)
	vm.Keypad().SetPressed(0x7, true)
	stepN(t, vm, 1)
	assert.False(t, vm.WaitingForKey())
	assert.Equal(t, uint8(0x7), vm.V(3))
	assert.Equal(t, uint16(0x202), vm.PC())

	stepN(t, vm, 1)
	assert.Equal(t, uint8(0x01), vm.V(1))
}

func TestExecute_WaitForKeyAlreadyPressed(t *testing.T) {
	vm := newTestVM(t, 0xF30A)
	vm.Keypad().SetPressed(0x5, true)
	stepN(t, vm, 1)
	assert.False(t, vm.WaitingForKey())
	assert.Equal(t, uint8(0x5), vm.V(3))
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestExecute_Timers(t *testing.T) {
	vm := newTestVM(t, 0x6009, 0xF015, 0xF018, 0xF107)
	stepN(t, vm, 3)
	assert.Equal(t, uint8(9), vm.DelayTimer())
	assert.Equal(t, uint8(9), vm.SoundTimer())
	assert.True(t, vm.SoundActive())

	vm.Tick()
	stepN(t, vm, 1)
	assert.Equal(t, uint8(8), vm.V(1))
}

func TestExecute_Index(t *testing.T) {
	t.Run("add to I", func(t *testing.T) {
		vm := newTestVM(t, 0xAFFF, 0x6002, 0xF01E)
		stepN(t, vm, 3)
		assert.Equal(t, uint16(0x1001), vm.I())
		assert.Equal(t, uint8(0), vm.V(0xF))
	})

	t.Run("add to I wraps", func(t *testing.T) {
		vm := newTestVM(t, 0x60FF, 0xF01E)
		vm.regI = 0xFFF0
		stepN(t, vm, 2)
		assert.Equal(t, uint16(0x00EF), vm.I())
	})

	t.Run("font glyph", func(t *testing.T) {
		vm := newTestVM(t, 0x600B, 0xF029)
		stepN(t, vm, 2)
		assert.Equal(t, uint16(0xB*glyphSize), vm.I())
	})
}

func TestExecute_BCD(t *testing.T) {
	tests := []struct {
		value  uint8
		digits []uint8
	}{
		{255, []uint8{2, 5, 5}},
		{7, []uint8{0, 0, 7}},
		{0, []uint8{0, 0, 0}},
		{109, []uint8{1, 0, 9}},
	}

	for _, tt := range tests {
		vm := newTestVM(t, 0xA300, 0xF533)
		vm.regV[5] = tt.value
		stepN(t, vm, 2)
		assert.Equal(t, tt.digits, []uint8(vm.memory[0x300:0x303]))
		assert.Equal(t, uint16(0x300), vm.I())
	}

	vm := newTestVM(t, 0xAFFE, 0xF033)
	stepN(t, vm, 1)
	assert.True(t, errors.Is(vm.Step(), ErrOutOfBounds))
}

func TestExecute_StoreLoadRegisters(t *testing.T) {
	vm := newTestVM(t, 0xA400, 0xF255, 0xF365)
	vm.regV[0] = 0x11
	vm.regV[1] = 0x22
	vm.regV[2] = 0x33
	vm.regV[3] = 0x44
	stepN(t, vm, 2)

	assert.Equal(t, []uint8{0x11, 0x22, 0x33, 0x00}, []uint8(vm.memory[0x400:0x404]))
	assert.Equal(t, uint16(0x400), vm.I())

	vm.memory[0x403] = 0x99
	vm.regV = [16]uint8{}
	stepN(t, vm, 1)
	assert.Equal(t, uint8(0x11), vm.V(0))
	assert.Equal(t, uint8(0x22), vm.V(1))
	assert.Equal(t, uint8(0x33), vm.V(2))
	assert.Equal(t, uint8(0x99), vm.V(3))
	assert.Equal(t, uint8(0x00), vm.V(4))

	vm = newTestVM(t, 0xAFFA, 0xFF55)
	stepN(t, vm, 1)
	assert.True(t, errors.Is(vm.Step(), ErrOutOfBounds))
}
