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
	"fmt"
)

/// Faults that can be returned from Step and Load.
///
var (
	/// ErrUnknownOpcode is returned when a fetched word does not decode.
	///
	ErrUnknownOpcode = errors.New("unknown opcode")

	/// ErrStackOverflow is returned by CALL with 16 frames already active.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by RET with no active frame.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrMemoryOutOfBounds is returned when a fetch, jump target or
	/// index-relative access reaches past the end of memory.
	///
	ErrMemoryOutOfBounds = errors.New("memory out of bounds")

	/// ErrProgramTooLarge is returned by Load for programs over 3584 bytes.
	///
	ErrProgramTooLarge = errors.New("program too large")
)

/// Fault is the error returned from Step. It records where the machine was
/// when the instruction failed; the machine state is left as it was before
/// the instruction.
///
type Fault struct {
	/// Address of the faulting instruction.
	///
	Address uint16

	/// Opcode is the raw instruction word, zero if it could not be fetched.
	///
	Opcode uint16

	/// Err is one of the Err* faults above.
	///
	Err error
}

/// Error implements the error interface.
///
func (f *Fault) Error() string {
	return fmt.Sprintf("%04X: %04X: %v", f.Address, f.Opcode, f.Err)
}

/// Unwrap returns the underlying fault so errors.Is works on it.
///
func (f *Fault) Unwrap() error {
	return f.Err
}
