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

import "fmt"

/// Op identifies one of the CHIP-8 instructions.
///
type Op uint8

/// The CHIP-8 instruction set.
///
const (
	SYS      Op = iota // 0nnn
	CLS                // 00E0
	RET                // 00EE
	JP                 // 1nnn
	CALL               // 2nnn
	SE_BYTE            // 3xnn
	SNE_BYTE           // 4xnn
	SE_REG             // 5xy0
	LD_BYTE            // 6xnn
	ADD_BYTE           // 7xnn
	LD_REG             // 8xy0
	OR                 // 8xy1
	AND                // 8xy2
	XOR                // 8xy3
	ADD_REG            // 8xy4
	SUB                // 8xy5
	SHR                // 8xy6
	SUBN               // 8xy7
	SHL                // 8xyE
	SNE_REG            // 9xy0
	LD_I               // Annn
	JP_V0              // Bnnn
	RND                // Cxnn
	DRW                // Dxyn
	SKP                // Ex9E
	SKNP               // ExA1
	LD_VX_DT           // Fx07
	LD_VX_K            // Fx0A
	LD_DT_VX           // Fx15
	LD_ST_VX           // Fx18
	ADD_I              // Fx1E
	LD_F               // Fx29
	LD_B               // Fx33
	LD_STORE           // Fx55
	LD_LOAD            // Fx65
)

var mnemonics = [...]string{
	SYS:      "SYS",
	CLS:      "CLS",
	RET:      "RET",
	JP:       "JP",
	CALL:     "CALL",
	SE_BYTE:  "SE",
	SNE_BYTE: "SNE",
	SE_REG:   "SE",
	LD_BYTE:  "LD",
	ADD_BYTE: "ADD",
	LD_REG:   "LD",
	OR:       "OR",
	AND:      "AND",
	XOR:      "XOR",
	ADD_REG:  "ADD",
	SUB:      "SUB",
	SHR:      "SHR",
	SUBN:     "SUBN",
	SHL:      "SHL",
	SNE_REG:  "SNE",
	LD_I:     "LD",
	JP_V0:    "JP",
	RND:      "RND",
	DRW:      "DRW",
	SKP:      "SKP",
	SKNP:     "SKNP",
	LD_VX_DT: "LD",
	LD_VX_K:  "LD",
	LD_DT_VX: "LD",
	LD_ST_VX: "LD",
	ADD_I:    "ADD",
	LD_F:     "LD",
	LD_B:     "LD",
	LD_STORE: "LD",
	LD_LOAD:  "LD",
}

/// String returns the assembler mnemonic of the instruction.
///
func (op Op) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

/// Instruction is a decoded opcode with all of its operand fields split out.
/// Which fields are meaningful depends on Op.
///
type Instruction struct {
	Op  Op
	Raw uint16

	/// NNN is the 12-bit address operand.
	///
	NNN uint16

	/// NN is the 8-bit immediate operand.
	///
	NN byte

	/// X and Y are register selectors, N is the 4-bit count.
	///
	X, Y, N byte
}

/// Decode splits a big-endian 16-bit opcode into an Instruction. Words that
/// do not match any instruction pattern fail with ErrUnknownOpcode.
///
func Decode(opcode uint16) (Instruction, error) {
	inst := Instruction{
		Raw: opcode,
		NNN: opcode & 0xFFF,
		NN:  byte(opcode),
		X:   byte(opcode>>8) & 0xF,
		Y:   byte(opcode>>4) & 0xF,
		N:   byte(opcode) & 0xF,
	}

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			inst.Op = CLS
		case 0x00EE:
			inst.Op = RET
		default:
			inst.Op = SYS
		}
	case 0x1:
		inst.Op = JP
	case 0x2:
		inst.Op = CALL
	case 0x3:
		inst.Op = SE_BYTE
	case 0x4:
		inst.Op = SNE_BYTE
	case 0x5:
		if inst.N != 0 {
			return inst, unknown(opcode)
		}
		inst.Op = SE_REG
	case 0x6:
		inst.Op = LD_BYTE
	case 0x7:
		inst.Op = ADD_BYTE
	case 0x8:
		switch inst.N {
		case 0x0:
			inst.Op = LD_REG
		case 0x1:
			inst.Op = OR
		case 0x2:
			inst.Op = AND
		case 0x3:
			inst.Op = XOR
		case 0x4:
			inst.Op = ADD_REG
		case 0x5:
			inst.Op = SUB
		case 0x6:
			inst.Op = SHR
		case 0x7:
			inst.Op = SUBN
		case 0xE:
			inst.Op = SHL
		default:
			return inst, unknown(opcode)
		}
	case 0x9:
		if inst.N != 0 {
			return inst, unknown(opcode)
		}
		inst.Op = SNE_REG
	case 0xA:
		inst.Op = LD_I
	case 0xB:
		inst.Op = JP_V0
	case 0xC:
		inst.Op = RND
	case 0xD:
		inst.Op = DRW
	case 0xE:
		switch inst.NN {
		case 0x9E:
			inst.Op = SKP
		case 0xA1:
			inst.Op = SKNP
		default:
			return inst, unknown(opcode)
		}
	case 0xF:
		switch inst.NN {
		case 0x07:
			inst.Op = LD_VX_DT
		case 0x0A:
			inst.Op = LD_VX_K
		case 0x15:
			inst.Op = LD_DT_VX
		case 0x18:
			inst.Op = LD_ST_VX
		case 0x1E:
			inst.Op = ADD_I
		case 0x29:
			inst.Op = LD_F
		case 0x33:
			inst.Op = LD_B
		case 0x55:
			inst.Op = LD_STORE
		case 0x65:
			inst.Op = LD_LOAD
		default:
			return inst, unknown(opcode)
		}
	}

	return inst, nil
}

func unknown(opcode uint16) error {
	return fmt.Errorf("%w: %04X", ErrUnknownOpcode, opcode)
}

/// String renders the instruction in assembler syntax, e.g. "LD     V0, #07".
///
func (inst Instruction) String() string {
	var operands string

	switch inst.Op {
	case CLS, RET:
		return inst.Op.String()
	case SYS, JP, CALL:
		operands = fmt.Sprintf("#%03X", inst.NNN)
	case SE_BYTE, SNE_BYTE, LD_BYTE, ADD_BYTE, RND:
		operands = fmt.Sprintf("V%X, #%02X", inst.X, inst.NN)
	case SE_REG, SNE_REG, LD_REG, OR, AND, XOR, ADD_REG, SUB, SUBN:
		operands = fmt.Sprintf("V%X, V%X", inst.X, inst.Y)
	case SHR, SHL:
		if inst.X == inst.Y {
			operands = fmt.Sprintf("V%X", inst.X)
		} else {
			operands = fmt.Sprintf("V%X, V%X", inst.X, inst.Y)
		}
	case SKP, SKNP:
		operands = fmt.Sprintf("V%X", inst.X)
	case LD_I:
		operands = fmt.Sprintf("I, #%03X", inst.NNN)
	case JP_V0:
		operands = fmt.Sprintf("V0, #%03X", inst.NNN)
	case DRW:
		operands = fmt.Sprintf("V%X, V%X, %d", inst.X, inst.Y, inst.N)
	case LD_VX_DT:
		operands = fmt.Sprintf("V%X, DT", inst.X)
	case LD_VX_K:
		operands = fmt.Sprintf("V%X, K", inst.X)
	case LD_DT_VX:
		operands = fmt.Sprintf("DT, V%X", inst.X)
	case LD_ST_VX:
		operands = fmt.Sprintf("ST, V%X", inst.X)
	case ADD_I:
		operands = fmt.Sprintf("I, V%X", inst.X)
	case LD_F:
		operands = fmt.Sprintf("F, V%X", inst.X)
	case LD_B:
		operands = fmt.Sprintf("B, V%X", inst.X)
	case LD_STORE:
		operands = fmt.Sprintf("[I], V%X", inst.X)
	case LD_LOAD:
		operands = fmt.Sprintf("V%X, [I]", inst.X)
	}

	return fmt.Sprintf("%-6s %s", inst.Op, operands)
}
