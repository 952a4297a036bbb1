package internal

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the assembly form of an opcode, for example
// "LD V1, #02". Opcodes that do not decode are shown as a data word.
func Disassemble(opcode uint16) string {
	ins := Decode(opcode)
	if ins.Op == OpInvalid {
		return fmt.Sprintf("DW     #%04X", opcode)
	}

	name := mnemonic(opcode)
	params := ins.params()
	if params == "" {
		return name
	}
	return fmt.Sprintf("%-6s %s", name, params)
}

// mnemonic looks up the instruction name in the CHIP-8 opcode table.
func mnemonic(opcode uint16) string {
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return strings.ToUpper(op.Instruction.Name)
		}
	}
	return "???"
}

// params formats the operands of the instruction.
func (ins Instruction) params() string {
	switch ins.Op {
	case OpCls, OpRet:
		return ""
	case OpJp, OpCall:
		return fmt.Sprintf("#%03X", ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, #%03X", ins.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("V%X, #%02X", ins.X, ins.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", ins.X)
	case OpLdI:
		return fmt.Sprintf("I, #%03X", ins.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, %d", ins.X, ins.Y, ins.N)
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpLdIVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLdVxI:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
