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

/// Display resolution in pixels.
///
const (
	Width  = 64
	Height = 32
)

/// Frame is a copy of the display, indexed [y][x].
///
type Frame [Height][Width]bool

/// Framebuffer is the 64x32 monochrome display. Each row is stored as a
/// 64-bit word with pixel x=0 in the most significant bit.
///
type Framebuffer struct {
	rows  [Height]uint64
	dirty bool
}

/// Clear turns every pixel off.
///
func (fb *Framebuffer) Clear() {
	fb.rows = [Height]uint64{}
	fb.dirty = true
}

/// Draw XORs an 8-pixel-wide sprite onto the display with its top-left
/// corner at x, y. Pixels that fall off an edge wrap around to the opposite
/// edge. It returns true if any pixel was turned off.
///
func (fb *Framebuffer) Draw(x, y byte, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		py := (int(y) + row) % Height

		for col := 0; col < 8; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			px := (int(x) + col) % Width
			mask := uint64(1) << uint(Width-1-px)

			if fb.rows[py]&mask != 0 {
				collision = true
			}

			fb.rows[py] ^= mask
		}
	}

	fb.dirty = true

	return collision
}

/// Pixel reports whether the pixel at x, y is on. Coordinates wrap.
///
func (fb *Framebuffer) Pixel(x, y int) bool {
	x, y = x%Width, y%Height

	return fb.rows[y]&(uint64(1)<<uint(Width-1-x)) != 0
}

/// Snapshot returns a copy of the whole display. It does not touch the
/// dirty flag.
///
func (fb *Framebuffer) Snapshot() Frame {
	var f Frame

	for y, bits := range fb.rows {
		for x := 0; x < Width; x++ {
			f[y][x] = bits&(uint64(1)<<uint(Width-1-x)) != 0
		}
	}

	return f
}

/// Dirty reports whether the display changed since the last ConsumeDirty.
///
func (fb *Framebuffer) Dirty() bool {
	return fb.dirty
}

/// ConsumeDirty is called by the renderer once it has taken a frame. It
/// returns the dirty flag and clears it.
///
func (fb *Framebuffer) ConsumeDirty() bool {
	dirty := fb.dirty
	fb.dirty = false

	return dirty
}
