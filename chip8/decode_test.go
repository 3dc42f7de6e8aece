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

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   Instruction
	}{
		{0x00E0, Instruction{Op: CLS, Raw: 0x00E0, NNN: 0x0E0, NN: 0xE0, Y: 0xE}},
		{0x00EE, Instruction{Op: RET, Raw: 0x00EE, NNN: 0x0EE, NN: 0xEE, Y: 0xE, N: 0xE}},
		{0x1234, Instruction{Op: JP, Raw: 0x1234, NNN: 0x234, NN: 0x34, X: 2, Y: 3, N: 4}},
		{0x6A07, Instruction{Op: LD_BYTE, Raw: 0x6A07, NNN: 0xA07, NN: 0x07, X: 0xA, N: 7}},
		{0xD125, Instruction{Op: DRW, Raw: 0xD125, NNN: 0x125, NN: 0x25, X: 1, Y: 2, N: 5}},
	}

	for _, tt := range tests {
		inst, err := Decode(tt.opcode)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, inst)
	}
}

func TestDecodeOps(t *testing.T) {
	tests := map[uint16]Op{
		0x0123: SYS, 0x00E0: CLS, 0x00EE: RET, 0x1FFF: JP, 0x2ABC: CALL,
		0x3122: SE_BYTE, 0x4122: SNE_BYTE, 0x5120: SE_REG, 0x6122: LD_BYTE,
		0x7122: ADD_BYTE, 0x8120: LD_REG, 0x8121: OR, 0x8122: AND,
		0x8123: XOR, 0x8124: ADD_REG, 0x8125: SUB, 0x8126: SHR,
		0x8127: SUBN, 0x812E: SHL, 0x9120: SNE_REG, 0xA123: LD_I,
		0xB123: JP_V0, 0xC1FF: RND, 0xD12F: DRW, 0xE19E: SKP, 0xE1A1: SKNP,
		0xF107: LD_VX_DT, 0xF10A: LD_VX_K, 0xF115: LD_DT_VX, 0xF118: LD_ST_VX,
		0xF11E: ADD_I, 0xF129: LD_F, 0xF133: LD_B, 0xF155: LD_STORE,
		0xF165: LD_LOAD,
	}

	assert.Equal(t, 35, len(tests))

	for opcode, op := range tests {
		inst, err := Decode(opcode)
		assert.NoError(t, err)
		assert.Equal(t, op, inst.Op)
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, opcode := range []uint16{
		0x5001, 0x512F, 0x8008, 0x800D, 0x800F, 0x9001,
		0xE000, 0xE19F, 0xF000, 0xF0FF, 0xF156,
	} {
		inst, err := Decode(opcode)
		assert.True(t, errors.Is(err, ErrUnknownOpcode))
		assert.Equal(t, opcode, inst.Raw)
	}
}

func TestInstructionString(t *testing.T) {
	tests := map[uint16]string{
		0x00E0: "CLS",
		0x00EE: "RET",
		0x1234: "JP     #234",
		0x6A07: "LD     VA, #07",
		0x8AB4: "ADD    VA, VB",
		0x8AA6: "SHR    VA",
		0x8A06: "SHR    VA, V0",
		0x812E: "SHL    V1, V2",
		0xB200: "JP     V0, #200",
		0xD01F: "DRW    V0, V1, 15",
		0xF30A: "LD     V3, K",
		0xF355: "LD     [I], V3",
		0xF365: "LD     V3, [I]",
		0xF31E: "ADD    I, V3",
	}

	for opcode, want := range tests {
		inst, err := Decode(opcode)
		assert.NoError(t, err)
		assert.Equal(t, want, inst.String())
	}
}
