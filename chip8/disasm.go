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

/// Disassemble the CHIP-8 instruction at address. The line is prefixed
/// with the address; words that don't decode are shown as "??".
///
func (vm *CHIP_8) Disassemble(address uint16) string {
	if int(address)+1 >= MemorySize {
		return ""
	}

	inst, err := vm.Fetch(address)
	if err != nil {
		return fmt.Sprintf("%04X - ??     #%04X", address, inst.Raw)
	}

	return fmt.Sprintf("%04X - %s", address, inst)
}

/// Listing disassembles n instructions starting at address.
///
func (vm *CHIP_8) Listing(address uint16, n int) []string {
	lines := make([]string, 0, n)

	for i := 0; i < n; i++ {
		line := vm.Disassemble(address + uint16(i*2))
		if line == "" {
			break
		}

		lines = append(lines, line)
	}

	return lines
}
