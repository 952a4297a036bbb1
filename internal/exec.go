package internal

// execute runs a decoded instruction. It returns whether the program
// counter should advance to the next instruction; operations that set the
// program counter themselves return false.
func (vm *C8VM) execute(ins Instruction) (bool, error) {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCls:
		vm.display.Clear()
		vm.drawFlag = true

	case OpRet:
		addr, err := vm.stack.Pop()
		if err != nil {
			return false, err
		}
		// The stack holds the address of the call, continue after it.
		vm.pc = addr

	case OpJp:
		vm.pc = ins.NNN
		return false, nil

	case OpCall:
		if err := vm.stack.Push(vm.pc); err != nil {
			return false, err
		}
		vm.pc = ins.NNN
		return false, nil

	case OpSeByte:
		vm.skipIf(vm.regV[x] == ins.KK)
	case OpSneByte:
		vm.skipIf(vm.regV[x] != ins.KK)
	case OpSeReg:
		vm.skipIf(vm.regV[x] == vm.regV[y])
	case OpSneReg:
		vm.skipIf(vm.regV[x] != vm.regV[y])

	case OpLdByte:
		vm.regV[x] = ins.KK
	case OpAddByte:
		vm.regV[x] += ins.KK

	case OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShr, OpSubn, OpShl:
		vm.alu(ins.Op, x, y)

	case OpLdI:
		vm.regI = ins.NNN
	case OpJpV0:
		vm.pc = ins.NNN + uint16(vm.regV[0])
		return false, nil
	case OpRnd:
		vm.regV[x] = uint8(vm.rnd.Intn(256)) & ins.KK

	case OpDrw:
		sprite, err := vm.memory.Slice(vm.regI, int(ins.N))
		if err != nil {
			return false, err
		}
		vm.regV[0xF] = 0
		if vm.display.Draw(vm.regV[x], vm.regV[y], sprite, vm.opts.WrapSprites) {
			vm.regV[0xF] = 1
		}
		vm.drawFlag = true

	case OpSkp:
		vm.skipIf(vm.keypad.IsPressed(vm.regV[x]))
	case OpSknp:
		vm.skipIf(!vm.keypad.IsPressed(vm.regV[x]))

	case OpLdVxDT:
		vm.regV[x] = vm.timers.Delay
	case OpLdVxK:
		if key, ok := vm.keypad.AnyPressed(); ok {
			vm.regV[x] = key
			break
		}
		vm.waitingKey = true
		vm.waitReg = x
		return false, nil
	case OpLdDTVx:
		vm.timers.Delay = vm.regV[x]
	case OpLdSTVx:
		vm.timers.Sound = vm.regV[x]
	case OpAddI:
		vm.regI += uint16(vm.regV[x])
	case OpLdF:
		vm.regI = fontStartAddr + uint16(vm.regV[x])*glyphSize

	case OpLdB:
		digits, err := vm.memory.Slice(vm.regI, 3)
		if err != nil {
			return false, err
		}
		digits[0] = vm.regV[x] / 100
		digits[1] = (vm.regV[x] / 10) % 10
		digits[2] = vm.regV[x] % 10

	case OpLdIVx:
		mem, err := vm.memory.Slice(vm.regI, int(x)+1)
		if err != nil {
			return false, err
		}
		copy(mem, vm.regV[:x+1])
	case OpLdVxI:
		mem, err := vm.memory.Slice(vm.regI, int(x)+1)
		if err != nil {
			return false, err
		}
		copy(vm.regV[:x+1], mem)

	default:
		return false, ErrUnknownOpcode
	}

	return true, nil
}

// skipIf skips the next instruction if cond holds. The regular advance past
// the current instruction still happens.
func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
}

// alu executes the 8xyn register operations. The flag is written after the
// result, so VF holds the flag even when it is the destination.
func (vm *C8VM) alu(op Op, x, y uint8) {
	vx, vy := vm.regV[x], vm.regV[y]

	switch op {
	case OpLdReg:
		vm.regV[x] = vy
	case OpOr:
		vm.regV[x] = vx | vy
	case OpAnd:
		vm.regV[x] = vx & vy
	case OpXor:
		vm.regV[x] = vx ^ vy
	case OpAddReg:
		sum := uint16(vx) + uint16(vy)
		vm.regV[x] = uint8(sum)
		vm.regV[0xF] = boolToFlag(sum > 0xFF)
	case OpSub:
		vm.regV[x] = vx - vy
		vm.regV[0xF] = boolToFlag(vx >= vy)
	case OpSubn:
		vm.regV[x] = vy - vx
		vm.regV[0xF] = boolToFlag(vy >= vx)
	case OpShr:
		if vm.opts.LegacyShift {
			vx = vy
		}
		vm.regV[x] = vx >> 1
		vm.regV[0xF] = vx & 0x01
	case OpShl:
		if vm.opts.LegacyShift {
			vx = vy
		}
		vm.regV[x] = vx << 1
		vm.regV[0xF] = vx >> 7
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
