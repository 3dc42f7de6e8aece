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
	"strconv"
	"strings"
)

/// Lexical token types.
///
type tokenType uint8

const (
	TOKEN_END tokenType = iota
	TOKEN_LABEL
	TOKEN_INSTRUCTION
	TOKEN_BREAK
	TOKEN_EQU
	TOKEN_REF
	TOKEN_OPERAND
	TOKEN_V
	TOKEN_I
	TOKEN_EFFECTIVE_ADDRESS
	TOKEN_B
	TOKEN_F
	TOKEN_K
	TOKEN_DT
	TOKEN_ST
	TOKEN_LIT
)

/// A parsed, lexical token.
///
type token struct {
	typ tokenType

	// tokens can have an optional value associated with them
	val interface{}
}

/// CHIP-8 assembler token scanner over a single, upper-cased line.
///
type tokenScanner struct {
	bytes []byte

	// scan position
	pos int
}

/// Reads the next token from a scanner. Returns the token.
///
func (s *tokenScanner) scanToken() token {
	for len(s.bytes) > s.pos && s.bytes[s.pos] < 33 {
		s.pos++
	}

	/// if at the end, return an end token
	///
	if len(s.bytes) <= s.pos {
		return token{typ: TOKEN_END, val: ""}
	}

	c := s.bytes[s.pos]

	switch {
	case c == ';':
		return s.scanToEnd()
	case isIdentStart(c) && s.pos == 0:
		return s.scanLabel()
	case c == '[':
		return s.scanIndirection()
	case c == ',':
		s.pos++
		return token{typ: TOKEN_OPERAND}
	case c == '#':
		return s.scanLit(16, "0123456789ABCDEF")
	case c == '$':
		return s.scanLit(2, ".01")
	case c >= '0' && c <= '9':
		return s.scanDecLit()
	case isIdentStart(c):
		return s.scanIdentifier()
	}

	panic(fmt.Errorf("unexpected character '%c'", c))
}

/// Scan a list of comma-separated operands up to the end of the line.
///
func (s *tokenScanner) scanOperands() []token {
	tokens := make([]token, 0, 3)

	for t := s.scanToken(); t.typ != TOKEN_END; t = s.scanToken() {
		if t.typ == TOKEN_OPERAND {
			panic("expected operand")
		}

		tokens = append(tokens, t)

		// operands are separated by commas
		if t = s.scanToken(); t.typ == TOKEN_END {
			break
		}
		if t.typ != TOKEN_OPERAND {
			panic("expected ','")
		}
	}

	return tokens
}

/// Scan to the end of the input and return it, trimmed.
///
func (s *tokenScanner) scanToEnd() token {
	text := string(s.bytes[s.pos:])

	// skip to the end
	s.pos = len(s.bytes)

	return token{typ: TOKEN_END, val: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ";"))}
}

/// Scan a label, which is an identifier in the first column with an
/// optional trailing colon.
///
func (s *tokenScanner) scanLabel() token {
	id := s.scanIdentifier()
	if id.typ != TOKEN_REF {
		panic(fmt.Errorf("reserved word used as label"))
	}

	if s.pos < len(s.bytes) && s.bytes[s.pos] == ':' {
		s.pos++
	}

	return token{typ: TOKEN_LABEL, val: id.val}
}

/// Scan an identifier: instruction, register, or label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	i := s.pos

	for ; s.pos < len(s.bytes); s.pos++ {
		if c := s.bytes[s.pos]; !isIdentStart(c) && (c < '0' || c > '9') {
			break
		}
	}

	id := string(s.bytes[i:s.pos])

	// v-registers
	if len(id) == 2 && id[0] == 'V' {
		if n, err := strconv.ParseUint(id[1:], 16, 8); err == nil {
			return token{typ: TOKEN_V, val: int(n)}
		}
	}

	switch id {
	case "I":
		return token{typ: TOKEN_I}
	case "B":
		return token{typ: TOKEN_B}
	case "F":
		return token{typ: TOKEN_F}
	case "K":
		return token{typ: TOKEN_K}
	case "D", "DT":
		return token{typ: TOKEN_DT}
	case "S", "ST":
		return token{typ: TOKEN_ST}
	case "EQU":
		return token{typ: TOKEN_EQU}
	case "BREAK":
		return token{typ: TOKEN_BREAK}
	}

	if _, ok := patterns[id]; ok {
		return token{typ: TOKEN_INSTRUCTION, val: id}
	}
	if _, ok := directives[id]; ok {
		return token{typ: TOKEN_INSTRUCTION, val: id}
	}

	return token{typ: TOKEN_REF, val: id}
}

/// Scan the [I] effective address operand.
///
func (s *tokenScanner) scanIndirection() token {
	s.pos++

	if t := s.scanToken(); t.typ != TOKEN_I {
		panic("illegal indirection")
	}

	for s.pos < len(s.bytes) && s.bytes[s.pos] < 33 {
		s.pos++
	}

	if s.pos >= len(s.bytes) || s.bytes[s.pos] != ']' {
		panic("illegal indirection")
	}

	s.pos++

	return token{typ: TOKEN_EFFECTIVE_ADDRESS}
}

/// Scan a decimal literal.
///
func (s *tokenScanner) scanDecLit() token {
	i := s.pos

	for ; s.pos < len(s.bytes); s.pos++ {
		if c := s.bytes[s.pos]; c < '0' || c > '9' {
			break
		}
	}

	n, err := strconv.ParseInt(string(s.bytes[i:s.pos]), 10, 32)
	if err != nil {
		panic(fmt.Errorf("illegal decimal value: %s", string(s.bytes[i:s.pos])))
	}

	return token{typ: TOKEN_LIT, val: int(n)}
}

/// Scan a prefixed hex (#) or binary ($) literal. Binary literals may use
/// '.' for 0 so sprites can be drawn in the source.
///
func (s *tokenScanner) scanLit(base int, digits string) token {
	i := s.pos

	for s.pos++; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte(digits, s.bytes[s.pos]) < 0 {
			break
		}
	}

	v := strings.Replace(string(s.bytes[i+1:s.pos]), ".", "0", -1)

	n, err := strconv.ParseInt(v, base, 32)
	if err != nil {
		panic(fmt.Errorf("illegal literal: %s", string(s.bytes[i:s.pos])))
	}

	return token{typ: TOKEN_LIT, val: int(n)}
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || c == '_' || c == '.'
}
