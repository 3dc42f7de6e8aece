/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */


package chip8

/// execute applies a decoded instruction to the machine and returns the
/// next program counter. Faults are detected before any state is changed.
///
func (vm *CHIP_8) execute(inst Instruction) (uint16, error) {
	var err error

	// operands
	x, y := inst.X, inst.Y
	a, b := inst.NNN, inst.NN

	// address of the following instruction
	next := vm.PC + 2

	switch inst.Op {
	case SYS:
		// RCA 1802 machine code is not emulated
	case CLS:
		vm.Video.Clear()
	case RET:
		return vm.ret()
	case JP:
		return vm.jump(a)
	case CALL:
		return vm.call(a, next)
	case JP_V0:
		return vm.jump(a + uint16(vm.V[0]))
	case SE_BYTE:
		return skipIf(next, vm.V[x] == b), nil
	case SNE_BYTE:
		return skipIf(next, vm.V[x] != b), nil
	case SE_REG:
		return skipIf(next, vm.V[x] == vm.V[y]), nil
	case SNE_REG:
		return skipIf(next, vm.V[x] != vm.V[y]), nil
	case SKP:
		return skipIf(next, vm.Keys[vm.V[x]&0xF]), nil
	case SKNP:
		return skipIf(next, !vm.Keys[vm.V[x]&0xF]), nil
	case LD_BYTE:
		vm.V[x] = b
	case ADD_BYTE:
		vm.V[x] += b
	case LD_REG:
		vm.V[x] = vm.V[y]
	case OR:
		vm.V[x] |= vm.V[y]
	case AND:
		vm.V[x] &= vm.V[y]
	case XOR:
		vm.V[x] ^= vm.V[y]
	case ADD_REG:
		vm.addXY(x, y)
	case SUB:
		vm.subXY(x, y)
	case SUBN:
		vm.subYX(x, y)
	case SHR:
		vm.shr(x)
	case SHL:
		vm.shl(x)
	case LD_I:
		vm.I = a
	case RND:
		vm.V[x] = byte(vm.rng.Intn(256)) & b
	case DRW:
		err = vm.drw(x, y, inst.N)
	case LD_VX_DT:
		vm.V[x] = vm.DT
	case LD_DT_VX:
		vm.DT = vm.V[x]
	case LD_ST_VX:
		vm.ST = vm.V[x]
	case LD_VX_K:
		vm.State = AwaitingKey(x)

		// stay on this instruction until a key is pressed
		return vm.PC, nil
	case ADD_I:
		vm.addIX(x)
	case LD_F:
		vm.I = uint16(vm.V[x]) * 5
	case LD_B:
		err = vm.loadB(x)
	case LD_STORE:
		err = vm.saveRegs(x)
	case LD_LOAD:
		err = vm.loadRegs(x)
	}

	if err != nil {
		return 0, err
	}

	return next, nil
}

/// skip the next instruction if the condition holds.
///
func skipIf(next uint16, cond bool) uint16 {
	if cond {
		return next + 2
	}

	return next
}

/// jump to address, which must leave room for a full instruction inside
/// program memory.
///
func (vm *CHIP_8) jump(address uint16) (uint16, error) {
	if address < ProgramStart || int(address)+1 >= MemorySize {
		return 0, ErrMemoryOutOfBounds
	}

	return address, nil
}

/// call a subroutine at address, pushing the return address.
///
func (vm *CHIP_8) call(address, ret uint16) (uint16, error) {
	if vm.SP >= StackDepth {
		return 0, ErrStackOverflow
	}

	pc, err := vm.jump(address)
	if err != nil {
		return 0, err
	}

	vm.Stack[vm.SP] = ret
	vm.SP++

	return pc, nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() (uint16, error) {
	if vm.SP == 0 {
		return 0, ErrStackUnderflow
	}

	vm.SP--

	return vm.Stack[vm.SP], nil
}

/// span checks that n bytes starting at I are addressable.
///
func (vm *CHIP_8) span(n int) error {
	if int(vm.I)+n > MemorySize {
		return ErrMemoryOutOfBounds
	}

	return nil
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y byte) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = flag(sum > 0xFF)
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y byte) {
	noBorrow := vm.V[x] >= vm.V[y]

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = flag(noBorrow)
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y byte) {
	noBorrow := vm.V[y] >= vm.V[x]

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = flag(noBorrow)
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(x byte) {
	lsb := vm.V[x] & 1

	vm.V[x] >>= 1
	vm.V[0xF] = lsb
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(x byte) {
	msb := vm.V[x] >> 7

	vm.V[x] <<= 1
	vm.V[0xF] = msb
}

/// add vx to i, set carry if the 16-bit sum overflows.
///
func (vm *CHIP_8) addIX(x byte) {
	sum := uint32(vm.I) + uint32(vm.V[x])

	vm.I = uint16(sum)
	vm.V[0xF] = flag(sum > 0xFFFF)
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(x, y, n byte) error {
	if err := vm.span(int(n)); err != nil {
		return err
	}

	sprite := vm.Memory[vm.I : int(vm.I)+int(n)]

	// set carry flag if any collision occurred
	vm.V[0xF] = flag(vm.Video.Draw(vm.V[x], vm.V[y], sprite))

	return nil
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x byte) error {
	if err := vm.span(3); err != nil {
		return err
	}

	n := vm.V[x]

	vm.Memory[vm.I+0] = n / 100
	vm.Memory[vm.I+1] = n / 10 % 10
	vm.Memory[vm.I+2] = n % 10

	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x byte) error {
	if err := vm.span(int(x) + 1); err != nil {
		return err
	}

	copy(vm.Memory[vm.I:], vm.V[:x+1])

	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x byte) error {
	if err := vm.span(int(x) + 1); err != nil {
		return err
	}

	copy(vm.V[:x+1], vm.Memory[vm.I:])

	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
