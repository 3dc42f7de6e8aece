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

/// State is the control state of the executor: either running, or
/// suspended on LD Vx, K until a key is pressed.
///
type State struct {
	awaiting bool
	register byte
}

/// Running is the normal fetch/decode/execute state.
///
var Running = State{}

/// AwaitingKey returns the state waiting for a key press to store in Vx.
///
func AwaitingKey(x byte) State {
	return State{awaiting: true, register: x & 0xF}
}

/// Awaiting returns the register waiting for a key, and whether the machine
/// is waiting at all.
///
func (s State) Awaiting() (byte, bool) {
	return s.register, s.awaiting
}

func (s State) String() string {
	if s.awaiting {
		return fmt.Sprintf("AwaitingKey(V%X)", s.register)
	}
	return "Running"
}

/// SetKey records a key press or release from the keypad. Codes outside of
/// 0-F are ignored. A press transition while waiting on LD Vx, K stores the
/// key in Vx and resumes execution after the waiting instruction.
///
func (vm *CHIP_8) SetKey(code byte, pressed bool) {
	if code >= 16 {
		return
	}

	wasPressed := vm.Keys[code]
	vm.Keys[code] = pressed

	if !pressed || wasPressed {
		return
	}

	// resolve the wait
	if x, ok := vm.State.Awaiting(); ok {
		vm.V[x] = code
		vm.PC += 2
		vm.State = Running
	}
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key byte) {
	vm.SetKey(key, true)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key byte) {
	vm.SetKey(key, false)
}

/// Waiting is true while the machine is suspended on LD Vx, K.
///
func (vm *CHIP_8) Waiting() bool {
	_, ok := vm.State.Awaiting()

	return ok
}
