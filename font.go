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
	"strings"

	"github.com/massung/chip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Font is a texture with one 4x5 glyph per character in Charset.
///
var Font *sdl.Texture

/// Charset is every character DrawText can render. The hex digits come
/// from the CHIP-8 font; the rest are needed by the register panel.
///
const Charset = "0123456789ABCDEFIKPSTV:*"

/// glyphs past the hex digits, in the same format as the CHIP-8 font
///
var extraGlyphs = [][5]byte{
	{0xE0, 0x40, 0x40, 0x40, 0xE0}, // I
	{0x90, 0xA0, 0xC0, 0xA0, 0x90}, // K
	{0xF0, 0x90, 0xF0, 0x80, 0x80}, // P
	{0xF0, 0x80, 0xF0, 0x10, 0xF0}, // S
	{0xF0, 0x40, 0x40, 0x40, 0x40}, // T
	{0x90, 0x90, 0x90, 0x90, 0x60}, // V
	{0x00, 0x40, 0x00, 0x40, 0x00}, // :
	{0x00, 0xA0, 0x40, 0xA0, 0x00}, // *
}

/// InitFont renders every glyph into a white, transparent texture so it
/// can be tinted when drawn.
///
func InitFont() {
	var err error

	w := int32(len(Charset) * 4)
	if Font, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_TARGET, w, 5); err != nil {
		panic(err)
	}

	Font.SetBlendMode(sdl.BLENDMODE_BLEND)

	if err = Renderer.SetRenderTarget(Font); err != nil {
		panic(err)
	}

	Renderer.SetDrawColor(0, 0, 0, 0)
	Renderer.Clear()
	Renderer.SetDrawColor(255, 255, 255, 255)

	for i := range Charset {
		var glyph []byte

		if i < 16 {
			glyph = chip8.Glyph(byte(i))
		} else {
			glyph = extraGlyphs[i-16][:]
		}

		for row, bits := range glyph {
			for col := 0; col < 4; col++ {
				if bits&(0x80>>uint(col)) != 0 {
					Renderer.DrawPoint(int32(i*4+col), int32(row))
				}
			}
		}
	}

	Renderer.SetRenderTarget(nil)
}

/// DrawText at x, y with each glyph pixel scaled to size. Characters not in
/// the charset are drawn as spaces.
///
func DrawText(s string, x, y, size int32) {
	src := sdl.Rect{W: 4, H: 5}
	dst := sdl.Rect{
		X: x,
		Y: y,
		W: 4 * size,
		H: 5 * size,
	}

	for _, c := range strings.ToUpper(s) {
		if i := strings.IndexRune(Charset, c); i >= 0 {
			src.X = int32(i * 4)

			Renderer.Copy(Font, &src, &dst)
		}

		// advance, leaving a column gap
		dst.X += 5 * size
	}
}
