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


package main

import (
	"fmt"

	"github.com/massung/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// DebugHelp prints the keyboard layout and hot-keys.
///
func DebugHelp() {
	fmt.Println("Virtual keys:")
	fmt.Println("  1-2-3-4")
	fmt.Println("  Q-W-E-R")
	fmt.Println("  A-S-D-F")
	fmt.Println("  Z-X-C-V")
	fmt.Println("")
	fmt.Println("Emulation keys:")
	fmt.Println("  ESC      - Quit")
	fmt.Println("  BS       - Reset (+CTRL to reset paused)")
	fmt.Println("  H, F1    - Help")
	fmt.Println("  [ ]      - Slower / faster")
	fmt.Println("  SPACE/F5 - Pause")
	fmt.Println("  F6, F10  - Step")
	fmt.Println("  F8       - Dump memory at I")
	fmt.Println("  F9       - Toggle breakpoint at PC")
}

/// DebugStep logs the next few instructions from the program counter.
///
func DebugStep() {
	Logger.Info("Paused",
		log.Hex("pc", VM.PC),
		log.Hex("i", VM.I),
		log.Uint8("sp", uint8(VM.SP)),
		log.Stringer("state", VM.State))

	for _, line := range VM.Listing(VM.PC, 4) {
		Logger.Info(line)
	}
}

/// DebugMemory logs 64 bytes of memory starting at I.
///
func DebugMemory() {
	for a := int(VM.I); a < int(VM.I)+64 && a < chip8.MemorySize; a += 16 {
		end := a + 16
		if end > chip8.MemorySize {
			end = chip8.MemorySize
		}

		Logger.Info("Memory",
			log.Hex("address", uint16(a)),
			log.String("bytes", fmt.Sprintf("% X", VM.Memory[a:end])))
	}
}

/// DebugRegisters draws the CHIP-8 registers at x, y.
///
func DebugRegisters(x, y int32) {
	const line = 7 * textSize

	// highlight the program counter when paused or on a breakpoint
	if Clock.Paused {
		Font.SetColorMod(176, 32, 57)
	}

	pc := fmt.Sprintf("PC %04X", VM.PC)
	if Clock.Breakpoint(VM.PC) {
		pc += "*"
	}

	DrawText(pc, x, y, textSize)
	Font.SetColorMod(255, 255, 255)

	DrawText(fmt.Sprintf("I  %04X", VM.I), x, y+line, textSize)
	DrawText(fmt.Sprintf("SP %X", VM.SP), x, y+line*2, textSize)
	DrawText(fmt.Sprintf("DT %02X", VM.DT), x, y+line*3, textSize)
	DrawText(fmt.Sprintf("ST %02X", VM.ST), x, y+line*4, textSize)

	// the v-registers in two columns
	for i := 0; i < 8; i++ {
		row := y + line*int32(6+i)

		DrawText(fmt.Sprintf("V%X %02X  V%X %02X", i, VM.V[i], i+8, VM.V[i+8]), x, row, textSize)
	}

	if k, ok := VM.State.Awaiting(); ok {
		DrawText(fmt.Sprintf("K: V%X", k), x, y+line*15, textSize)
	}
}

/// DebugPanel is the area the registers need at text size.
///
func DebugPanel() sdl.Rect {
	return sdl.Rect{W: 12 * 5 * textSize, H: 16 * 7 * textSize}
}
