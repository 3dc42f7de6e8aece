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
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// KeyMap maps the left side of a modern keyboard onto the CHIP-8 hex
/// keypad:
///
///   1 2 3 4      1 2 3 C
///   Q W E R  ->  4 5 6 D
///   A S D F      7 8 9 E
///   Z X C V      A 0 B F
///
var KeyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

/// ProcessEvents from SDL, forwarding keypad keys to the VM and handling
/// the emulator hot-keys. Returns false once the user quits.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, ok := KeyMap[ev.Keysym.Scancode]

			if ok {
				VM.SetKey(key, ev.Type == sdl.KEYDOWN)
				continue
			}

			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				continue
			}

			if !hotKey(ev.Keysym) {
				return false
			}
		}
	}

	return true
}

/// hotKey runs the emulator command bound to a key. Returns false on quit.
///
func hotKey(sym sdl.Keysym) bool {
	switch sym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		Logger.Info("Resetting")

		VM.Reset()
		Clock.Start(time.Now())

		// holding control during reset will reboot paused
		if sym.Mod&sdl.KMOD_CTRL != 0 {
			Clock.Paused = true
		}
	case sdl.SCANCODE_H, sdl.SCANCODE_F1:
		DebugHelp()
	case sdl.SCANCODE_LEFTBRACKET:
		Clock.DecSpeed()
	case sdl.SCANCODE_RIGHTBRACKET:
		Clock.IncSpeed()
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		Clock.Paused = !Clock.Paused

		if Clock.Paused {
			DebugStep()
		} else {
			Clock.Start(time.Now())
		}
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Clock.Paused {
			if err := Clock.Step(VM); err != nil {
				Logger.Error("Step failed", log.Err(err))
			}

			DebugStep()
		}
	case sdl.SCANCODE_F8:
		if Clock.Paused {
			DebugMemory()
		}
	case sdl.SCANCODE_F9:
		state := "cleared"
		if Clock.ToggleBreakpoint(VM.PC) {
			state = "set"
		}

		Logger.Info("Breakpoint "+state, log.Hex("address", VM.PC))
	}

	return true
}
