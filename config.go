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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/massung/chip8/chip8"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

/// Command line options.
///
type options struct {
	rom    string
	speed  int
	policy chip8.Policy
	scale  int

	paused bool
	debug  bool
	quiet  bool
}

/// Parse the command line. The program to run is the first positional
/// argument; it may be omitted, in which case a file dialog is shown.
///
func parseOptions(args []string, output io.Writer) (options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(output)

	opts := options{}
	policy := ""

	flags.IntVar(&opts.speed, "speed", chip8.DefaultSpeed, "instructions executed per second")
	flags.StringVar(&policy, "policy", "halt", "what to do on a fault: halt or skip")
	flags.IntVar(&opts.scale, "scale", 8, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.paused, "paused", false, "start with emulation paused")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")

	flags.Usage = func() {
		fmt.Fprintf(output, "usage: chip8 [options] [program.ch8 | source.asm]\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	switch policy {
	case "halt":
		opts.policy = chip8.Halt
	case "skip":
		opts.policy = chip8.Skip
	default:
		return opts, fmt.Errorf("invalid fault policy '%s'", policy)
	}

	if opts.scale < 1 || opts.scale > 32 {
		return opts, fmt.Errorf("invalid scale %d", opts.scale)
	}

	if flags.NArg() > 1 {
		return opts, errors.New("only one program can be run")
	}

	opts.rom = flags.Arg(0)

	return opts, nil
}

/// Read a program from disk. Files ending in .asm are assembled first, and
/// any breakpoints in the source are returned with the program.
///
func readProgram(path string) ([]byte, []chip8.Breakpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading file '%s': %w", path, err)
	}

	if !strings.EqualFold(filepath.Ext(path), ".asm") {
		return data, nil, nil
	}

	asm, err := chip8.Assemble(data)
	if err != nil {
		return nil, nil, fmt.Errorf("assembling '%s': %w", path, err)
	}

	return asm.ROM, asm.Breakpoints, nil
}

/// Show the program banner and version.
///
func printBanner(logger *log.Logger, opts options) {
	if opts.quiet {
		return
	}

	fmt.Println("[---------------------------]")
	fmt.Println("[ chip8 - CHIP-8 emulator   ]")
	fmt.Printf("[---------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))

	logger.Debug("Options",
		log.String("program", opts.rom),
		log.Int("speed", opts.speed),
		log.Int("scale", opts.scale))
}
