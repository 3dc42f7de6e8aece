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

/// Memory layout and machine limits.
///
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	MaxProgram   = MemorySize - ProgramStart
	StackDepth   = 16
)

/// Random is the source RND draws from. A *rand.Rand satisfies it; tests
/// supply a fixed sequence.
///
type Random interface {
	Intn(n int) int
}

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// ROM holds the font and the loaded program. It is the pristine image
	/// that Memory is restored from on Reset.
	///
	ROM [MemorySize]byte

	/// Memory addressable by CHIP-8. The font occupies 0x000-0x04F and
	/// programs are loaded at 0x200.
	///
	Memory [MemorySize]byte

	/// Video is the 64x32 display.
	///
	Video Framebuffer

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// Stack holds return addresses, SP is the number of active frames.
	///
	Stack [StackDepth]uint16
	SP    uint

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// DT and ST are the delay and sound timers, counted down at 60Hz.
	///
	DT byte
	ST byte

	/// Keys hold the current state for the 16-key pad keys.
	///
	Keys [16]bool

	/// State is Running, or AwaitingKey while blocked on LD Vx, K.
	///
	State State

	/// Cycles is how many instructions have been executed since Reset.
	///
	Cycles int64

	rng Random
}

/// New returns a CHIP-8 virtual machine with the font loaded and no
/// program. RND draws from rng.
///
func New(rng Random) *CHIP_8 {
	vm := &CHIP_8{rng: rng}

	// the font lives at the bottom of memory
	copy(vm.ROM[:], Font[:])

	// reset the VM memory
	vm.Reset()

	return vm
}

/// Load copies a program into memory at 0x200 and resets the machine.
/// Programs that do not fit fail with ErrProgramTooLarge and leave the
/// machine untouched.
///
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > MaxProgram {
		return ErrProgramTooLarge
	}

	// clear out any previous program
	for i := ProgramStart; i < MemorySize; i++ {
		vm.ROM[i] = 0
	}

	copy(vm.ROM[ProgramStart:], program)

	vm.Reset()

	return nil
}

/// Reset the CHIP-8 virtual machine to the state it was in just after the
/// program was loaded.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = vm.ROM

	// reset video memory and keys
	vm.Video.Clear()
	vm.Keys = [16]bool{}

	// reset program counter and stack pointer
	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackDepth]uint16{}

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	vm.State = Running
	vm.Cycles = 0
}

/// Step the CHIP-8 virtual machine a single instruction. While waiting on
/// a key this does nothing. On error the machine is left exactly as it was
/// and the returned error is a *Fault.
///
func (vm *CHIP_8) Step() error {
	if vm.Waiting() {
		return nil
	}

	inst, err := vm.Fetch(vm.PC)
	if err != nil {
		return &Fault{Address: vm.PC, Opcode: inst.Raw, Err: err}
	}

	pc, err := vm.execute(inst)
	if err != nil {
		return &Fault{Address: vm.PC, Opcode: inst.Raw, Err: err}
	}

	vm.PC = pc
	vm.Cycles++

	return nil
}

/// Fetch reads and decodes the instruction at address without executing
/// it.
///
func (vm *CHIP_8) Fetch(address uint16) (Instruction, error) {
	if int(address)+1 >= MemorySize {
		return Instruction{}, ErrMemoryOutOfBounds
	}

	return Decode(uint16(vm.Memory[address])<<8 | uint16(vm.Memory[address+1]))
}

/// Frame returns a copy of the display.
///
func (vm *CHIP_8) Frame() Frame {
	return vm.Video.Snapshot()
}
