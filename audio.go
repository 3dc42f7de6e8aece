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
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	toneFreq   = 440

	// samples queued per video frame
	frameSamples = sampleRate / chip8.FrameRate
)

var (
	/// Audio is the output device; zero when no device could be opened.
	///
	Audio sdl.AudioDeviceID

	// position within the square wave, kept across frames
	phase int
)

/// InitAudio opens an 8-bit mono device and starts it. A missing audio
/// device only disables the tone.
///
func InitAudio() {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		Logger.Error("Opening audio device failed", log.Err(err))
		return
	}

	Audio = dev

	// start playing; silence until samples are queued
	sdl.PauseAudioDevice(Audio, false)
}

/// CloseAudio releases the device.
///
func CloseAudio() {
	if Audio != 0 {
		sdl.CloseAudioDevice(Audio)
	}
}

/// UpdateAudio keeps about two frames of tone queued while the sound timer
/// is running and drops whatever is left once it stops.
///
func UpdateAudio() {
	if Audio == 0 {
		return
	}

	if !VM.Tone() {
		sdl.ClearQueuedAudio(Audio)
		return
	}

	if sdl.GetQueuedAudioSize(Audio) < 2*frameSamples {
		if err := sdl.QueueAudio(Audio, squareWave(frameSamples)); err != nil {
			Logger.Error("Queueing audio failed", log.Err(err))
		}
	}
}

/// squareWave returns the next n samples of the tone.
///
func squareWave(n int) []byte {
	period := sampleRate / toneFreq
	buf := make([]byte, n)

	for i := range buf {
		if phase < period/2 {
			buf[i] = 0xA0
		} else {
			buf[i] = 0x60
		}

		phase = (phase + 1) % period
	}

	return buf
}
