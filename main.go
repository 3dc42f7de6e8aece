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
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/massung/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

/// pixel size of the register panel text
///
const textSize = 2

var (
	/// VM is the running CHIP-8 machine.
	///
	VM *chip8.CHIP_8

	/// Clock paces VM.
	///
	Clock *chip8.Clock

	/// Logger is shared by the front-end and the clock.
	///
	Logger *log.Logger

	/// Window and Renderer are created once SDL is up.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	// window pixels per CHIP-8 pixel
	scale int32
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	Logger = createLogger(opts.debug, opts.quiet)
	printBanner(Logger, opts)

	if opts.rom == "" {
		opts.rom, err = dialog.File().Title("Load CHIP-8 program").Filter("CHIP-8 programs", "ch8", "c8", "asm").Load()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return
			}
			Logger.Fatal("Selecting program failed", log.Err(err))
		}
	}

	program, breakpoints, err := readProgram(opts.rom)
	if err != nil {
		Logger.Fatal("Loading program failed", log.Err(err))
	}

	VM = chip8.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	if err = VM.Load(program); err != nil {
		Logger.Fatal("Loading program failed", log.Err(err))
	}

	Logger.Info("Loaded program", log.String("file", opts.rom), log.Int("size", len(program)))

	Clock = chip8.NewClock(Logger, opts.speed, opts.policy)
	Clock.SetBreakpoints(breakpoints)
	Clock.Paused = opts.paused

	scale = int32(opts.scale)

	// initialize SDL or panic
	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		panic(err)
	}
	defer sdl.Quit()

	panel := DebugPanel()

	w := 30 + chip8.Width*scale + panel.W
	h := chip8.Height * scale
	if panel.H > h {
		h = panel.H
	}

	// create the main window and renderer or panic
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(w, h+20, sdl.WINDOW_SHOWN); err != nil {
		panic(err)
	}

	Window.SetTitle("CHIP-8")

	// initialize subsystems
	InitScreen()
	InitFont()
	InitAudio()
	defer CloseAudio()

	// instructions are caught up on every clock tick, video at 60Hz
	clock := time.NewTicker(time.Millisecond * 2)
	video := time.NewTicker(time.Second / chip8.FrameRate)
	defer clock.Stop()
	defer video.Stop()

	Clock.Start(time.Now())

	if Clock.Paused {
		DebugStep()
	}

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case now := <-clock.C:
			if err := Clock.Process(VM, now); err != nil {
				Logger.Error("Emulation halted", log.Err(err))
				DebugStep()
			}
		case <-video.C:
			Refresh()
			UpdateAudio()
		}
	}
}

/// Refresh redraws the window.
///
func Refresh() {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	sw, sh := chip8.Width*scale, chip8.Height*scale

	// frame the screen and the register panel
	Frame(9, 9, sw+1, sh+1)

	// redraw the display texture only when the machine drew something
	if VM.Video.ConsumeDirty() {
		RefreshScreen(VM.Frame())
	}

	CopyScreen(10, 10, scale)
	DebugRegisters(sw+20, 10)

	// show the new frame
	Renderer.Present()
}

/// Frame draws a bevel around an area.
///
func Frame(x, y, w, h int32) {
	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
