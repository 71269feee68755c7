package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/disasm"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend/audio"
	"github.com/ezrec/chip8/frontend/terminal"
	"github.com/ezrec/chip8/frontend/window"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

const (
	FRONTEND_TERMINAL = "terminal"
	FRONTEND_WINDOW   = "window"
	FRONTEND_NONE     = "none"
)

// UsageError reports a command line that could not be acted on.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (err *UsageError) Error() string {
	return err.msg
}

// ShowUsage prints the command synopsis, and the flags of the failing
// subcommand if known.
func (err *UsageError) ShowUsage(w io.Writer) {
	if err.flags == nil {
		fmt.Fprintln(w, f("usage: chip8 dasm|run|asm [options] FILE"))
		return
	}

	fmt.Fprintln(w, f("usage: chip8 %v [options] FILE", err.flags.Name()))
	err.flags.SetOutput(w)
	err.flags.PrintDefaults()
}

type command func(ctx context.Context, args []string, out io.Writer) error

var commands = map[string]command{
	"dasm": cmdDasm,
	"run":  cmdRun,
	"asm":  cmdAsm,
}

// Main dispatches a command line to its subcommand.
func Main(ctx context.Context, args []string, out io.Writer) (err error) {
	if len(args) == 0 {
		err = &UsageError{msg: f("missing command")}
		return
	}

	cmd, ok := commands[args[0]]
	if !ok {
		err = &UsageError{msg: f("unknown command '%v'", args[0])}
		return
	}

	err = cmd(ctx, args[1:], out)
	return
}

// parse parses args, requiring a single FILE argument.
func parse(flags *flag.FlagSet, args []string) (file string, err error) {
	flags.SetOutput(io.Discard)
	err = flags.Parse(args)
	if err != nil {
		err = &UsageError{flags: flags, msg: err.Error()}
		return
	}

	if flags.NArg() != 1 {
		err = &UsageError{flags: flags, msg: f("expected one FILE, got %v", flags.Args())}
		return
	}

	file = flags.Arg(0)
	return
}

func toAddress(flags *flag.FlagSet, name string, value uint) (addr cpu.Address, err error) {
	if value > cpu.ADDRESS_MASK {
		err = &UsageError{flags: flags, msg: f("-%v 0x%x out of range", name, value)}
		return
	}

	addr = cpu.Address(value)
	return
}

func cmdDasm(ctx context.Context, args []string, out io.Writer) (err error) {
	flags := flag.NewFlagSet("dasm", flag.ContinueOnError)

	var opts disasm.Options
	var start uint
	flags.BoolVar(&opts.Addresses, "a", false, "Prefix lines with addresses")
	flags.UintVar(&start, "start", cpu.PROGRAM_ORIGIN, "Address of the first program byte")
	flags.BoolVar(&opts.Binary, "b", false, "Prefix lines with instruction bytes")

	file, err := parse(flags, args)
	if err != nil {
		return
	}

	addr, err := toAddress(flags, "start", start)
	if err != nil {
		return
	}
	opts.Start = uint16(addr)

	data, err := os.ReadFile(file)
	if err != nil {
		return
	}

	err = disasm.New(opts).Disassemble(data, out)
	if errors.Is(err, disasm.ErrOddLength) {
		err = &UsageError{flags: flags, msg: f("%v: %v", file, err)}
	}

	return
}

// assemble parses an assembler source file.
func assemble(file string, origin cpu.Address, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(file)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose, Origin: origin}
	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", file, err)
	}

	return
}

func cmdAsm(ctx context.Context, args []string, out io.Writer) (err error) {
	flags := flag.NewFlagSet("asm", flag.ContinueOnError)

	var output string
	var origin uint
	var verbose bool
	flags.StringVar(&output, "o", "", "Output image (default FILE with a .ch8 extension, - for stdout)")
	flags.UintVar(&origin, "origin", cpu.PROGRAM_ORIGIN, "Load address of the program")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	file, err := parse(flags, args)
	if err != nil {
		return
	}

	addr, err := toAddress(flags, "origin", origin)
	if err != nil {
		return
	}

	prog, err := assemble(file, addr, verbose)
	if err != nil {
		return
	}

	switch output {
	case "-":
		_, err = out.Write(prog.Binary())
		return
	case "":
		output = strings.TrimSuffix(file, filepath.Ext(file)) + ".ch8"
	}

	err = os.WriteFile(output, prog.Binary(), 0o644)
	return
}

func cmdRun(ctx context.Context, args []string, out io.Writer) (err error) {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)

	var frontend, wavfile string
	var speed, frames int
	var origin uint
	var seed uint64
	var verbose, mute bool
	flags.StringVar(&frontend, "frontend", FRONTEND_TERMINAL, "Frontend: terminal, window or none")
	flags.IntVar(&speed, "speed", emulator.DEFAULT_SPEED, "Instructions per frame")
	flags.IntVar(&frames, "frames", 0, "Stop after this many frames (0 is unlimited)")
	flags.UintVar(&origin, "origin", cpu.PROGRAM_ORIGIN, "Load address of the program")
	flags.Uint64Var(&seed, "seed", 0, "Random seed")
	flags.BoolVar(&mute, "mute", false, "Disable window audio")
	flags.StringVar(&wavfile, "wav", "", "Record the tone to a WAV file")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")

	file, err := parse(flags, args)
	if err != nil {
		return
	}

	addr, err := toAddress(flags, "origin", origin)
	if err != nil {
		return
	}

	switch frontend {
	case FRONTEND_NONE, FRONTEND_TERMINAL, FRONTEND_WINDOW:
	default:
		err = &UsageError{flags: flags, msg: f("unknown frontend '%v'", frontend)}
		return
	}

	if frontend == FRONTEND_NONE && frames <= 0 {
		err = &UsageError{flags: flags, msg: f("-frontend none requires -frames")}
		return
	}

	emu := emulator.NewEmulator(seed)
	emu.Verbose = verbose
	emu.Speed = speed
	emu.MaxFrames = frames

	if strings.EqualFold(filepath.Ext(file), ".asm") {
		var prog *cpu.Program
		prog, err = assemble(file, addr, verbose)
		if err != nil {
			return
		}
		err = emu.LoadProgram(prog)
	} else {
		var data []byte
		data, err = os.ReadFile(file)
		if err != nil {
			return
		}
		emu.Cpu.Origin = addr
		err = emu.Load(data)
	}
	if err != nil {
		err = fmt.Errorf("%v: %w", file, err)
		return
	}

	if verbose {
		log.Printf("run: %v at %v, frontend %v", file, emu.Cpu.Origin, frontend)
	}

	var rec *audio.Recorder
	if wavfile != "" {
		rec = audio.NewRecorder()
		rec.Verbose = verbose
		defer func() {
			err = errors.Join(err, saveWav(wavfile, rec))
		}()
	}

	switch frontend {
	case FRONTEND_NONE:
		for range frames {
			err = ctx.Err()
			if err != nil {
				break
			}
			err = emu.Frame()
			if rec != nil {
				rec.Refresh(emu)
			}
			if err != nil {
				break
			}
		}
		fmt.Fprint(out, emu.Devices.Screen.String())
	case FRONTEND_TERMINAL:
		tm := terminal.New(os.Stdin, out)
		tm.Verbose = verbose
		err = tm.Start(emu)
		if err != nil {
			return
		}
		var fe emulator.Frontend = tm
		if rec != nil {
			rec.Frontend = tm
			fe = rec
		}
		err = emu.Run(ctx, fe)
		err = errors.Join(err, tm.Stop())
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	case FRONTEND_WINDOW:
		w := window.New(emu)
		w.Verbose = verbose
		w.Title = filepath.Base(file)
		w.Mute = mute
		if rec != nil {
			w.Frontend = rec
		}
		err = w.Run()
	}

	return
}

func saveWav(file string, rec *audio.Recorder) (err error) {
	ouf, err := os.Create(file)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, ouf.Close())
	}()

	err = rec.Save(ouf)
	return
}
