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
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const subroutineSource = `; call a subroutine that bumps V0
START:  LD   V0, #0A
        CALL BUMP
LOOP    JP   LOOP
BUMP    ADD  V0, 1
        RET
SPRITE  byte $11111111, $1......1
VALUE   EQU  #30
        WORD BUMP
`

func TestAssemble(t *testing.T) {
	asm, err := Assemble([]byte(subroutineSource))
	assert.NoError(t, err)

	want := []byte{
		0x60, 0x0A,
		0x22, 0x06,
		0x12, 0x04,
		0x70, 0x01,
		0x00, 0xEE,
		0xFF, 0x81,
		0x02, 0x06,
	}
	assert.Equal(t, want, asm.ROM)
	assert.Equal(t, 0x206, asm.Labels["BUMP"])
	assert.Equal(t, 0x30, asm.Labels["VALUE"])
}

func TestAssembleAndRun(t *testing.T) {
	asm, err := Assemble([]byte(subroutineSource))
	assert.NoError(t, err)

	vm := New(&sequence{})
	assert.NoError(t, vm.Load(asm.ROM))

	steps(t, vm, 5)

	assert.Equal(t, byte(0x0B), vm.V[0])
	assert.Equal(t, uint16(0x204), vm.PC)
	assert.Equal(t, uint(0), vm.SP)
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	lines := []string{
		"CLS", "RET", "SYS #123", "JP #234", "CALL #345",
		"SE V1, #22", "SNE V1, #22", "SE V1, V2", "LD V1, #22",
		"ADD V1, #22", "LD V1, V2", "OR V1, V2", "AND V1, V2",
		"XOR V1, V2", "ADD V1, V2", "SUB V1, V2", "SHR V1", "SHR V1, V2",
		"SUBN V1, V2", "SHL V1", "SHL V1, V2", "SNE V1, V2", "LD I, #456",
		"JP V0, #567", "RND V1, #FF", "DRW V1, V2, 15", "SKP V1",
		"SKNP V1", "LD V1, DT", "LD V1, K", "LD DT, V1", "LD ST, V1",
		"ADD I, V1", "LD F, V1", "LD B, V1", "LD [I], V1", "LD V1, [I]",
	}

	asm, err := Assemble([]byte("  " + strings.Join(lines, "\n  ")))
	assert.NoError(t, err)
	assert.Len(t, asm.ROM, len(lines)*2)

	vm := New(&sequence{})
	assert.NoError(t, vm.Load(asm.ROM))

	for i, got := range vm.Listing(ProgramStart, len(lines)) {
		want := fmt.Sprintf("%04X - %s", ProgramStart+i*2, lines[i])
		assert.Equal(t, want, strings.Join(strings.Fields(got), " "))
	}
}

func TestAssembleBreakpoints(t *testing.T) {
	asm, err := Assemble([]byte("  LD V0, 1\n  BREAK check v0\n  ADD V0, 1\n"))
	assert.NoError(t, err)

	assert.Equal(t, []Breakpoint{{Address: 0x202, Reason: "CHECK V0"}}, asm.Breakpoints)
}

func TestAssembleDirectives(t *testing.T) {
	asm, err := Assemble([]byte("  BYTE 1\n  ALIGN 4\n  PAD 2\n  WORD #1234, END\nEND\n"))
	assert.NoError(t, err)

	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0x12, 0x34, 0x02, 0x0A}, asm.ROM)
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		err    string
	}{
		{"unresolved label", "  JP NOWHERE", "unresolved label: NOWHERE"},
		{"byte too large", "  LD V0, #100", "line 1: illegal instruction: LD"},
		{"duplicate label", "LOOP CLS\nLOOP CLS", "line 2: duplicate label: LOOP"},
		{"not an instruction", "  FOO", "line 1: unexpected token"},
		{"missing comma", "  LD V0 V1", "line 1: expected ','"},
		{"too large", "  PAD 3584\n  CLS", "line 2: program too large"},
		{"forward byte", "  BYTE LATER\nLATER", "line 1: invalid byte"},
		{"mnemonic as label", "SUB ADD V0, 1", "line 1: reserved word used as label"},
		{"register as label", "V1: CLS", "line 1: reserved word used as label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm, err := Assemble([]byte(tt.source))
			assert.True(t, asm == nil)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestDisassemble(t *testing.T) {
	vm := load(t, 0x6A07, 0x5001)

	assert.Equal(t, "0200 - LD     VA, #07", vm.Disassemble(0x200))
	assert.Equal(t, "0202 - ??     #5001", vm.Disassemble(0x202))
	assert.Equal(t, "", vm.Disassemble(0xFFF))
	assert.Len(t, vm.Listing(0xFFA, 8), 3)
}
