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

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// alu runs a single 8xyN instruction for every pair of byte values.
func alu(t *testing.T, opcode uint16, check func(a, b, vx, vf byte)) {
	t.Helper()

	vm := load(t, opcode)

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vm.PC = ProgramStart
			vm.V[1], vm.V[2], vm.V[0xF] = byte(a), byte(b), 0xAA

			steps(t, vm, 1)
			check(byte(a), byte(b), vm.V[1], vm.V[0xF])
		}
	}
}

func TestAddRegisters(t *testing.T) {
	alu(t, 0x8124, func(a, b, vx, vf byte) {
		sum := int(a) + int(b)
		if vx != byte(sum%256) || vf != flag(sum >= 256) {
			t.Fatalf("%d + %d: got V1=%d VF=%d", a, b, vx, vf)
		}
	})
}

func TestSubRegisters(t *testing.T) {
	alu(t, 0x8125, func(a, b, vx, vf byte) {
		if vx != a-b || vf != flag(a >= b) {
			t.Fatalf("%d - %d: got V1=%d VF=%d", a, b, vx, vf)
		}
	})
}

func TestSubnRegisters(t *testing.T) {
	alu(t, 0x8127, func(a, b, vx, vf byte) {
		if vx != b-a || vf != flag(b >= a) {
			t.Fatalf("%d =- %d: got V1=%d VF=%d", a, b, vx, vf)
		}
	})
}

func TestLogicRegisters(t *testing.T) {
	alu(t, 0x8121, func(a, b, vx, vf byte) {
		if vx != a|b || vf != 0xAA {
			t.Fatalf("%d | %d: got V1=%d VF=%d", a, b, vx, vf)
		}
	})
	alu(t, 0x8122, func(a, b, vx, vf byte) {
		if vx != a&b || vf != 0xAA {
			t.Fatalf("%d & %d: got V1=%d VF=%d", a, b, vx, vf)
		}
	})
	alu(t, 0x8123, func(a, b, vx, vf byte) {
		if vx != a^b || vf != 0xAA {
			t.Fatalf("%d ^ %d: got V1=%d VF=%d", a, b, vx, vf)
		}
	})
}

func TestShifts(t *testing.T) {
	vm := load(t, 0x8106, 0x810E)

	for a := 0; a < 256; a++ {
		vm.PC = ProgramStart
		vm.V[1] = byte(a)
		steps(t, vm, 1)

		assert.Equal(t, byte(a)>>1, vm.V[1])
		assert.Equal(t, byte(a)&1, vm.V[0xF])

		vm.V[1] = byte(a)
		steps(t, vm, 1)

		assert.Equal(t, byte(a)<<1, vm.V[1])
		assert.Equal(t, byte(a)>>7, vm.V[0xF])
	}
}

func TestFlagRegisterAsOperand(t *testing.T) {
	// the flag is written after the result, so it wins
	vm := load(t, 0x8FF6, 0x6FFF, 0x8F14)
	vm.V[0xF] = 0x03
	vm.V[1] = 0x01

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.V[0xF])

	steps(t, vm, 2)
	assert.Equal(t, byte(1), vm.V[0xF])
}

func TestImmediates(t *testing.T) {
	vm := load(t, 0x6AFE, 0x7A03, 0x8BA0)
	vm.V[0xF] = 0x55

	steps(t, vm, 3)

	assert.Equal(t, byte(0x01), vm.V[0xA])
	assert.Equal(t, byte(0x01), vm.V[0xB])
	assert.Equal(t, byte(0x55), vm.V[0xF])
}

func TestMachineCallIsIgnored(t *testing.T) {
	vm := load(t, 0x0000, 0x0123)
	vm.V[0] = 0x42

	steps(t, vm, 2)

	assert.Equal(t, uint16(0x204), vm.PC)
	assert.Equal(t, byte(0x42), vm.V[0])
	assert.Equal(t, uint(0), vm.SP)
	assert.False(t, vm.Video.Dirty())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		skip   bool
	}{
		{"SE byte equal", 0x3005, true},
		{"SE byte not equal", 0x3006, false},
		{"SNE byte equal", 0x4005, false},
		{"SNE byte not equal", 0x4006, true},
		{"SE reg equal", 0x5010, true},
		{"SE reg not equal", 0x5020, false},
		{"SNE reg equal", 0x9010, false},
		{"SNE reg not equal", 0x9020, true},
		{"SKP pressed", 0xE09E, true},
		{"SKP released", 0xE29E, false},
		{"SKNP pressed", 0xE0A1, false},
		{"SKNP released", 0xE2A1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := load(t, tt.opcode)
			vm.V[0], vm.V[1], vm.V[2] = 5, 5, 6
			vm.PressKey(5)

			steps(t, vm, 1)

			if tt.skip {
				assert.Equal(t, uint16(0x204), vm.PC)
			} else {
				assert.Equal(t, uint16(0x202), vm.PC)
			}
		})
	}
}

func TestJumps(t *testing.T) {
	vm := load(t, 0x1208, 0, 0, 0, 0xB300)
	vm.V[0] = 0x10

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x208), vm.PC)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x310), vm.PC)
}

func TestJumpOutOfProgramMemory(t *testing.T) {
	for _, opcode := range []uint16{0x1100, 0x2000 | 0x1FF, 0xBFFF} {
		vm := load(t, opcode)
		vm.V[0] = 0xFF

		err := vm.Step()
		assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
		assert.Equal(t, uint16(ProgramStart), vm.PC)
		assert.Equal(t, uint(0), vm.SP)
	}
}

func TestCallReturn(t *testing.T) {
	vm := load(t, 0x2206, 0x6001, 0x1204, 0x00EE)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC)
	assert.Equal(t, uint(1), vm.SP)

	steps(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Equal(t, uint(0), vm.SP)

	steps(t, vm, 1)
	assert.Equal(t, byte(1), vm.V[0])
}

func TestStackLimits(t *testing.T) {
	vm := load(t, 0x2200)

	// 16 nested calls fit
	steps(t, vm, StackDepth)
	assert.Equal(t, uint(StackDepth), vm.SP)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint(StackDepth), vm.SP)
	assert.Equal(t, uint16(0x200), vm.PC)

	vm = load(t, 0x00EE)

	err = vm.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), vm.PC)
}

func TestRandom(t *testing.T) {
	vm := New(&sequence{values: []int{0xAB, 0x5A}})
	assert.NoError(t, vm.Load([]byte{0xC0, 0x0F, 0xC1, 0xFF}))

	steps(t, vm, 2)

	assert.Equal(t, byte(0x0B), vm.V[0])
	assert.Equal(t, byte(0x5A), vm.V[1])
}

func TestTimerRegisters(t *testing.T) {
	vm := load(t, 0x6003, 0xF015, 0xF018, 0xF107)

	steps(t, vm, 3)
	assert.Equal(t, byte(3), vm.DT)
	assert.True(t, vm.Tone())

	vm.TickTimers()
	steps(t, vm, 1)
	assert.Equal(t, byte(2), vm.V[1])

	for i := 0; i < 5; i++ {
		vm.TickTimers()
	}

	assert.Equal(t, byte(0), vm.DT)
	assert.Equal(t, byte(0), vm.ST)
	assert.False(t, vm.Tone())
}

func TestIndexRegister(t *testing.T) {
	vm := load(t, 0xA123, 0x6010, 0xF01E)

	steps(t, vm, 3)

	assert.Equal(t, uint16(0x133), vm.I)
	assert.Equal(t, byte(0), vm.V[0xF])
}

// ADD I, Vx reports a 16-bit overflow in VF. Most references define no
// flag for this instruction; this interpreter keeps the carry.
func TestAddIndexCarry(t *testing.T) {
	vm := load(t, 0xF31E, 0xF31E)
	vm.V[3] = 2
	vm.I = 0xFFFF

	steps(t, vm, 1)
	assert.Equal(t, uint16(1), vm.I)
	assert.Equal(t, byte(1), vm.V[0xF])

	steps(t, vm, 1)
	assert.Equal(t, uint16(3), vm.I)
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestFontAddress(t *testing.T) {
	vm := load(t, 0x600A, 0xF029)

	steps(t, vm, 2)

	assert.Equal(t, uint16(50), vm.I)
	assert.Equal(t, Glyph(0xA), vm.Memory[vm.I:vm.I+5])
}

func TestBCD(t *testing.T) {
	for _, n := range []byte{0, 7, 42, 100, 254, 255} {
		vm := load(t, 0xA300, 0xF033)
		vm.V[0] = n

		steps(t, vm, 2)

		assert.Equal(t, []byte{n / 100, n / 10 % 10, n % 10}, vm.Memory[0x300:0x303])
	}
}

func TestStoreLoadRegisters(t *testing.T) {
	vm := load(t, 0xA400, 0xF355, 0xF365)
	vm.V = [16]byte{1, 2, 3, 4, 5}

	steps(t, vm, 2)
	assert.Equal(t, []byte{1, 2, 3, 4, 0}, vm.Memory[0x400:0x405])
	assert.Equal(t, uint16(0x400), vm.I)

	vm.V = [16]byte{}
	vm.Memory[0x404] = 9

	steps(t, vm, 1)
	assert.Equal(t, [16]byte{1, 2, 3, 4}, vm.V)
}

func TestIndexedAccessPastEndOfMemory(t *testing.T) {
	tests := []struct {
		name   string
		index  uint16
		opcode uint16
		fails  bool
	}{
		{"BCD fits", 0xFFD, 0xF033, false},
		{"BCD overruns", 0xFFE, 0xF033, true},
		{"store fits", 0xFF0, 0xFF55, false},
		{"store overruns", 0xFF1, 0xFF55, true},
		{"load overruns", 0xFFF, 0xF165, true},
		{"draw fits", 0xFF1, 0xD00F, false},
		{"draw overruns", 0xFF2, 0xD00F, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := load(t, tt.opcode)
			vm.I = tt.index
			vm.V[0xF] = 0x77

			err := vm.Step()
			if !tt.fails {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
			assert.Equal(t, uint16(ProgramStart), vm.PC)
			assert.Equal(t, byte(0x77), vm.V[0xF])
			assert.False(t, vm.Video.Dirty())
		})
	}
}
