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
	"bufio"
	"bytes"
	"fmt"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load at 0x200.
	///
	ROM []byte

	/// Breakpoints is a list of addresses marked with BREAK.
	///
	Breakpoints []Breakpoint

	/// Labels maps label names to addresses (or EQU values).
	///
	Labels map[string]int

	// addresses with unresolved labels
	unresolved map[int]fixup
}

/// Breakpoint is an address the debugger should stop at.
///
type Breakpoint struct {
	Address uint16
	Reason  string
}

/// fixup is a forward label reference to patch once all labels are known.
///
type fixup struct {
	label string
	word  bool
}

/// slot says where an operand is encoded in the opcode.
///
type slot uint8

const (
	slotNone slot = iota
	slotX
	slotY
	slotXY
	slotV0
	slotNNN
	slotNN
	slotN
)

/// pattern is one operand form of a mnemonic.
///
type pattern struct {
	operands []tokenType
	slots    []slot
	opcode   uint16
}

func ops(t ...tokenType) []tokenType { return t }
func at(s ...slot) []slot            { return s }

var patterns = map[string][]pattern{
	"CLS":  {{nil, nil, 0x00E0}},
	"RET":  {{nil, nil, 0x00EE}},
	"SYS":  {{ops(TOKEN_LIT), at(slotNNN), 0x0000}},
	"JP":   {{ops(TOKEN_LIT), at(slotNNN), 0x1000}, {ops(TOKEN_V, TOKEN_LIT), at(slotV0, slotNNN), 0xB000}},
	"CALL": {{ops(TOKEN_LIT), at(slotNNN), 0x2000}},
	"SE":   {{ops(TOKEN_V, TOKEN_LIT), at(slotX, slotNN), 0x3000}, {ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x5000}},
	"SNE":  {{ops(TOKEN_V, TOKEN_LIT), at(slotX, slotNN), 0x4000}, {ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x9000}},
	"OR":   {{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8001}},
	"AND":  {{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8002}},
	"XOR":  {{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8003}},
	"SUB":  {{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8005}},
	"SUBN": {{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8007}},
	"SHR":  {{ops(TOKEN_V), at(slotXY), 0x8006}, {ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8006}},
	"SHL":  {{ops(TOKEN_V), at(slotXY), 0x800E}, {ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x800E}},
	"RND":  {{ops(TOKEN_V, TOKEN_LIT), at(slotX, slotNN), 0xC000}},
	"DRW":  {{ops(TOKEN_V, TOKEN_V, TOKEN_LIT), at(slotX, slotY, slotN), 0xD000}},
	"SKP":  {{ops(TOKEN_V), at(slotX), 0xE09E}},
	"SKNP": {{ops(TOKEN_V), at(slotX), 0xE0A1}},
	"ADD": {
		{ops(TOKEN_V, TOKEN_LIT), at(slotX, slotNN), 0x7000},
		{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8004},
		{ops(TOKEN_I, TOKEN_V), at(slotNone, slotX), 0xF01E},
	},
	"LD": {
		{ops(TOKEN_V, TOKEN_LIT), at(slotX, slotNN), 0x6000},
		{ops(TOKEN_V, TOKEN_V), at(slotX, slotY), 0x8000},
		{ops(TOKEN_I, TOKEN_LIT), at(slotNone, slotNNN), 0xA000},
		{ops(TOKEN_V, TOKEN_DT), at(slotX, slotNone), 0xF007},
		{ops(TOKEN_V, TOKEN_K), at(slotX, slotNone), 0xF00A},
		{ops(TOKEN_DT, TOKEN_V), at(slotNone, slotX), 0xF015},
		{ops(TOKEN_ST, TOKEN_V), at(slotNone, slotX), 0xF018},
		{ops(TOKEN_F, TOKEN_V), at(slotNone, slotX), 0xF029},
		{ops(TOKEN_B, TOKEN_V), at(slotNone, slotX), 0xF033},
		{ops(TOKEN_EFFECTIVE_ADDRESS, TOKEN_V), at(slotNone, slotX), 0xF055},
		{ops(TOKEN_V, TOKEN_EFFECTIVE_ADDRESS), at(slotX, slotNone), 0xF065},
	},
}

var directives = map[string]func(a *Assembly, tokens []token) []byte{
	"BYTE":  (*Assembly).assembleBYTE,
	"WORD":  (*Assembly).assembleWORD,
	"ALIGN": (*Assembly).assembleALIGN,
	"PAD":   (*Assembly).assemblePAD,
}

/// Assemble CHIP-8 source code. Errors are reported with the line they
/// occurred on.
///
func Assemble(program []byte) (out *Assembly, err error) {
	var line int

	out = &Assembly{
		ROM:        make([]byte, ProgramStart, MemorySize),
		Labels:     make(map[string]int),
		unresolved: make(map[int]fixup),
	}

	// assembly errors are raised with panic and reported here
	defer func() {
		if r := recover(); r != nil {
			if line > 0 {
				err = fmt.Errorf("line %d: %v", line, r)
			} else {
				err = fmt.Errorf("%v", r)
			}

			out = nil
		}
	}()

	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(program)))

	for line = 1; scanner.Scan(); line++ {
		out.assemble(&tokenScanner{bytes: scanner.Bytes()})

		if len(out.ROM) > MemorySize {
			panic(ErrProgramTooLarge)
		}
	}

	line = 0

	// resolve all forward references
	for address, ref := range out.unresolved {
		v, ok := out.Labels[ref.label]
		if !ok {
			panic(fmt.Errorf("unresolved label: %s", ref.label))
		}

		if ref.word {
			out.ROM[address] = byte(v >> 8)
		} else {
			out.ROM[address] = out.ROM[address]&0xF0 | byte(v>>8)&0xF
		}

		out.ROM[address+1] = byte(v)
	}

	// drop the reserved bytes below the program
	out.ROM = out.ROM[ProgramStart:]

	return out, nil
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	if t.typ == TOKEN_LABEL {
		t = a.assembleLabel(t.val.(string), s)
	}

	switch t.typ {
	case TOKEN_INSTRUCTION:
		a.assembleInstruction(t.val.(string), s.scanOperands())
	case TOKEN_BREAK:
		a.Breakpoints = append(a.Breakpoints, Breakpoint{
			Address: uint16(len(a.ROM)),
			Reason:  s.scanToEnd().val.(string),
		})
	case TOKEN_END:
	default:
		panic("unexpected token")
	}
}

/// Assign a label the current address, or a value with EQU.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic(fmt.Errorf("duplicate label: %s", label))
	}

	a.Labels[label] = len(a.ROM)

	t := s.scanToken()
	if t.typ != TOKEN_EQU {
		return t
	}

	if v := s.scanToken(); v.typ == TOKEN_LIT {
		a.Labels[label] = v.val.(int)

		if t = s.scanToken(); t.typ == TOKEN_END {
			return t
		}
	}

	panic("illegal label assignment")
}

/// Compile a single instruction or directive into the assembly.
///
func (a *Assembly) assembleInstruction(i string, tokens []token) {
	if directive, ok := directives[i]; ok {
		a.ROM = append(a.ROM, directive(a, tokens)...)
		return
	}

	for _, p := range patterns[i] {
		if opcode, ok := a.assemblePattern(p, tokens); ok {
			a.ROM = append(a.ROM, byte(opcode>>8), byte(opcode))
			return
		}
	}

	panic(fmt.Errorf("illegal instruction: %s", i))
}

/// Match tokens against an operand pattern and encode the opcode.
///
func (a *Assembly) assemblePattern(p pattern, tokens []token) (uint16, bool) {
	if len(tokens) != len(p.operands) {
		return 0, false
	}

	opcode := p.opcode
	forward := ""

	for i, typ := range p.operands {
		t, ref := a.assembleOperand(tokens[i])
		if t.typ != typ {
			return 0, false
		}

		v, _ := t.val.(int)

		switch p.slots[i] {
		case slotX:
			opcode |= uint16(v) << 8
		case slotY:
			opcode |= uint16(v) << 4
		case slotXY:
			opcode |= uint16(v)<<8 | uint16(v)<<4
		case slotV0:
			if v != 0 {
				return 0, false
			}
		case slotNNN:
			if v < 0 || v > 0xFFF {
				return 0, false
			}
			opcode |= uint16(v)
			forward = ref
		case slotNN:
			if ref != "" || v < 0 || v > 0xFF {
				return 0, false
			}
			opcode |= uint16(v)
		case slotN:
			if ref != "" || v < 0 || v > 0xF {
				return 0, false
			}
			opcode |= uint16(v)
		}
	}

	if forward != "" {
		a.unresolved[len(a.ROM)] = fixup{label: forward}
	}

	return opcode, true
}

/// Assemble a single operand, expanding label references. Labels that
/// are not yet defined become a placeholder literal and the name is
/// returned so the caller can record a fixup.
///
func (a *Assembly) assembleOperand(t token) (token, string) {
	if t.typ != TOKEN_REF {
		return t, ""
	}

	label := t.val.(string)
	if v, exists := a.Labels[label]; exists {
		return token{typ: TOKEN_LIT, val: v}, ""
	}

	return token{typ: TOKEN_LIT, val: ProgramStart}, label
}

/// Assemble a BYTE directive. Labels must already be defined.
///
func (a *Assembly) assembleBYTE(tokens []token) []byte {
	b := make([]byte, 0, len(tokens))

	for _, t := range tokens {
		op, ref := a.assembleOperand(t)

		if op.typ != TOKEN_LIT || ref != "" || op.val.(int) < 0 || op.val.(int) > 0xFF {
			panic("invalid byte")
		}

		b = append(b, byte(op.val.(int)))
	}

	return b
}

/// Assemble a WORD directive, stored msb first.
///
func (a *Assembly) assembleWORD(tokens []token) []byte {
	b := make([]byte, 0, len(tokens)*2)

	for _, t := range tokens {
		op, ref := a.assembleOperand(t)

		if op.typ != TOKEN_LIT || op.val.(int) < 0 || op.val.(int) > 0xFFFF {
			panic("invalid word")
		}

		if ref != "" {
			a.unresolved[len(a.ROM)+len(b)] = fixup{label: ref, word: true}
		}

		b = append(b, byte(op.val.(int)>>8), byte(op.val.(int)))
	}

	return b
}

/// Assemble an ALIGN directive: pad with zeros to a power of 2 boundary.
///
func (a *Assembly) assembleALIGN(tokens []token) []byte {
	if len(tokens) == 1 && tokens[0].typ == TOKEN_LIT {
		n := tokens[0].val.(int)

		if n > 0 && n&(n-1) == 0 {
			return make([]byte, (n-len(a.ROM)&(n-1))&(n-1))
		}
	}

	panic("illegal alignment")
}

/// Assemble a PAD directive: reserve n zero bytes.
///
func (a *Assembly) assemblePAD(tokens []token) []byte {
	if len(tokens) == 1 && tokens[0].typ == TOKEN_LIT {
		n := tokens[0].val.(int)

		if n >= 0 && n <= MemorySize-len(a.ROM) {
			return make([]byte, n)
		}
	}

	panic("illegal size")
}
