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
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// FrameRate is the timer and display refresh rate in Hz.
///
const FrameRate = 60

/// Instruction rate limits and default, in instructions per second.
///
const (
	MinSpeed     = 60
	MaxSpeed     = 5000
	DefaultSpeed = 700
)

/// Policy decides what the clock does with a fault returned by Step.
///
type Policy uint8

const (
	/// Halt pauses the clock and returns the fault to the caller.
	///
	Halt Policy = iota

	/// Skip logs the fault, steps over the faulting instruction and keeps
	/// running.
	///
	Skip
)

/// Clock drives a machine: it executes instructions at a chosen rate and
/// ticks the timers at 60Hz, independently of each other. It holds only
/// cadence state; all machine state stays in the CHIP_8.
///
type Clock struct {
	logger *log.Logger

	/// Policy for faults returned by Step.
	///
	Policy Policy

	/// Paused stops both instruction execution and the timers.
	///
	Paused bool

	speed       int
	breakpoints map[uint16]bool

	// time origins and how much work has been done since them
	stepOrigin  time.Time
	frameOrigin time.Time
	steps       int64
	frames      int64
	last        time.Time
}

/// NewClock returns a clock executing speed instructions per second.
///
func NewClock(logger *log.Logger, speed int, policy Policy) *Clock {
	return &Clock{
		logger:      logger,
		Policy:      policy,
		speed:       clampSpeed(speed),
		breakpoints: make(map[uint16]bool),
	}
}

/// Start sets the time the clock counts from.
///
func (c *Clock) Start(now time.Time) {
	c.stepOrigin, c.frameOrigin, c.last = now, now, now
	c.steps, c.frames = 0, 0
}

/// Speed returns the instruction rate in instructions per second.
///
func (c *Clock) Speed() int {
	return c.speed
}

/// SetSpeed changes the instruction rate. The timers are not affected.
///
func (c *Clock) SetSpeed(speed int) {
	c.speed = clampSpeed(speed)

	// count steps at the new rate from the last time processed
	c.stepOrigin = c.last
	c.steps = 0

	c.logger.Debug("Instruction rate changed", log.Int("speed", c.speed))
}

/// IncSpeed raises the instruction rate by 10%.
///
func (c *Clock) IncSpeed() {
	c.SetSpeed(c.speed + c.speed/10 + 1)
}

/// DecSpeed lowers the instruction rate by 10%.
///
func (c *Clock) DecSpeed() {
	c.SetSpeed(c.speed - c.speed/10 - 1)
}

/// ToggleBreakpoint sets or clears a breakpoint at address and returns
/// whether one is now set.
///
func (c *Clock) ToggleBreakpoint(address uint16) bool {
	if c.breakpoints[address] {
		delete(c.breakpoints, address)
		return false
	}

	c.breakpoints[address] = true

	return true
}

/// Breakpoint reports whether a breakpoint is set at address.
///
func (c *Clock) Breakpoint(address uint16) bool {
	return c.breakpoints[address]
}

/// SetBreakpoints installs the breakpoints of an assembled program.
///
func (c *Clock) SetBreakpoints(bps []Breakpoint) {
	for _, bp := range bps {
		c.breakpoints[bp.Address] = true
	}
}

/// Process catches the machine up to now: the timers are ticked once per
/// elapsed 60th of a second, and as many instructions are executed as the
/// instruction rate says should have run. While the machine waits on a key
/// the owed instructions are dropped, but the timers keep running.
///
func (c *Clock) Process(vm *CHIP_8, now time.Time) error {
	c.last = now

	frames := int64(now.Sub(c.frameOrigin) * FrameRate / time.Second)
	count := int64(now.Sub(c.stepOrigin)/time.Microsecond) * int64(c.speed) / 1e6

	/// if paused, count time without doing anything
	///
	if c.Paused {
		c.frames, c.steps = frames, count
		return nil
	}

	for ; c.frames < frames; c.frames++ {
		vm.TickTimers()
	}

	for c.steps < count {
		if vm.Waiting() {
			break
		}

		c.steps++

		if err := c.Step(vm); err != nil {
			c.steps = count
			return err
		}

		if c.breakpoints[vm.PC] {
			c.Paused = true
			c.logger.Info("Breakpoint", log.Hex("address", vm.PC))
			break
		}
	}

	c.steps = count

	return nil
}

/// Step executes a single instruction, applying the fault policy. It is
/// also used to single-step while paused.
///
func (c *Clock) Step(vm *CHIP_8) error {
	err := vm.Step()
	if err == nil {
		return nil
	}

	var fault *Fault
	if c.Policy == Skip && errors.As(err, &fault) && int(fault.Address)+3 < MemorySize {
		c.logger.Warn("Skipping faulted instruction",
			log.Hex("address", fault.Address),
			log.Hex("opcode", fault.Opcode),
			log.Err(fault.Err))

		vm.PC = fault.Address + 2
		return nil
	}

	c.Paused = true
	return err
}

func clampSpeed(speed int) int {
	switch {
	case speed < MinSpeed:
		return MinSpeed
	case speed > MaxSpeed:
		return MaxSpeed
	}
	return speed
}
