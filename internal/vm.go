package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode  uint16    // 16-bit opcode of the current instruction
	regV    [16]uint8 // 16 general purpose 8-bit registers
	regI    uint16    // 16-bit register that is generally used to store memory addresses
	pc      uint16    // Program counter
	stack   Stack     // Return addresses of active subroutine calls
	memory  Memory    // 4 KB global memory
	timers  Timers    // Delay and sound timers
	keypad  Keypad    // 16 key hexadecimal keypad
	display Framebuffer

	// Fx0A suspends execution until a key is pressed, the key is then
	// stored in waitReg.
	waitingKey bool
	waitReg    uint8

	drawFlag bool  // Set when the framebuffer changed since the last UnsetDrawFlag
	halted   error // The fatal error that stopped execution

	program []byte // Loaded program, kept for Reset
	opts    Options
	rnd     *rand.Rand
	logger  *log.Logger
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts Options) (*C8VM, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	vm := &C8VM{
		opts:   opts,
		rnd:    rand.New(rand.NewSource(opts.seed())),
		logger: opts.Logger,
	}
	vm.Reset()
	return vm, nil
}

// Reset restores the VM to its power-on state, keeping the loaded program.
func (vm *C8VM) Reset() {
	vm.memory = newMemory()
	_ = vm.memory.Load(vm.program) // fitted when loaded

	vm.opcode = 0
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.pc = pcStartAddr
	vm.stack = Stack{}
	vm.timers = Timers{}
	vm.keypad.Release()
	vm.display.Clear()
	vm.waitingKey = false
	vm.waitReg = 0
	vm.drawFlag = true
	vm.halted = nil
}

// LoadProgram loads a given CHIP-8 program into the VM's memory
func (vm *C8VM) LoadProgram(program []byte) error {
	if err := vm.memory.Load(program); err != nil {
		return err
	}
	vm.program = append([]byte(nil), program...)
	return nil
}

// LoadProgramFile reads a CHIP-8 program from disk and loads it
func (vm *C8VM) LoadProgramFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := vm.LoadProgram(data); err != nil {
		return fmt.Errorf("loading program '%s': %w", filename, err)
	}
	return nil
}

// Step executes a single instruction. While the VM waits for a key press,
// Step returns without advancing until the keypad reports a pressed key.
// A returned error is fatal: the VM stays halted and keeps returning it.
func (vm *C8VM) Step() error {
	if vm.halted != nil {
		return vm.halted
	}

	if vm.waitingKey {
		key, ok := vm.keypad.AnyPressed()
		if !ok {
			return nil
		}
		vm.regV[vm.waitReg] = key
		vm.waitingKey = false
		vm.pc += 2
		return nil
	}

	vm.opcode = 0
	opcode, err := vm.memory.Word(vm.pc)
	if err != nil {
		return vm.halt(err)
	}
	vm.opcode = opcode

	ins := Decode(opcode)
	if vm.logger != nil {
		vm.logger.Debug("Step",
			log.Hex("pc", vm.pc),
			log.Hex("opcode", opcode),
			log.String("instruction", Disassemble(opcode)))
	}

	advance, err := vm.execute(ins)
	if err != nil {
		return vm.halt(err)
	}
	if advance {
		vm.pc += 2
	}
	return nil
}

func (vm *C8VM) halt(err error) error {
	vm.halted = &ExecError{
		PC:     vm.pc,
		Opcode: vm.opcode,
		Err:    err,
	}
	return vm.halted
}

// Tick decrements the delay and sound timers. It must be called at
// TimerFrequency, independent of the rate Step is called at.
func (vm *C8VM) Tick() {
	vm.timers.Tick()
}

// Disassemble returns the instruction at addr in assembly form, prefixed
// with its address.
func (vm *C8VM) Disassemble(addr uint16) string {
	opcode, err := vm.memory.Word(addr)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%03X - %s", addr, Disassemble(opcode))
}

// Keypad returns the keypad for the input source to update.
func (vm *C8VM) Keypad() *Keypad {
	return &vm.keypad
}

// Framebuffer returns the display memory.
func (vm *C8VM) Framebuffer() *Framebuffer {
	return &vm.display
}

// IsDrawFlagSet returns whether the framebuffer changed since the flag was
// last unset.
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

// WaitingForKey returns whether execution is suspended by Fx0A.
func (vm *C8VM) WaitingForKey() bool {
	return vm.waitingKey
}

// Halted returns the fatal error that stopped execution, or nil.
func (vm *C8VM) Halted() error {
	return vm.halted
}

// PC returns the program counter.
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// I returns the index register.
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// V returns the value of register Vx.
func (vm *C8VM) V(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.timers.Delay
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.timers.Sound
}

// SoundActive returns whether the buzzer should sound.
func (vm *C8VM) SoundActive() bool {
	return vm.timers.Sound > 0
}
