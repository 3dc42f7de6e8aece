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
	"github.com/massung/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Screen is the render target the CHIP-8 display is drawn into, one texel
/// per CHIP-8 pixel.
///
var Screen *sdl.Texture

/// InitScreen creates the display texture and draws the initial frame.
///
func InitScreen() {
	var err error

	if Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height); err != nil {
		panic(err)
	}

	RefreshScreen(VM.Frame())
}

/// RefreshScreen redraws the display texture from a frame snapshot.
///
func RefreshScreen(frame chip8.Frame) {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		panic(err)
	}

	// the background color for the screen
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// set the pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	for y := range frame {
		for x, on := range frame[y] {
			if on {
				Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the window, scaling each CHIP-8 pixel to scale pixels.
///
func CopyScreen(x, y, scale int32) {
	src := sdl.Rect{
		W: chip8.Width,
		H: chip8.Height,
	}

	// stretch the render target to fit
	Renderer.Copy(Screen, &src, &sdl.Rect{X: x, Y: y, W: chip8.Width * scale, H: chip8.Height * scale})
}
