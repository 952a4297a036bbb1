// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Options contains the program options shared by all frontends.
type Options struct {
	Input string

	Speed       int
	Seed        int64
	LegacyShift bool
	WrapSprites bool
	Scale       int

	Debug bool
	Quiet bool

	// headless runner only
	Cycles int
	PNG    string
}

// Program describes the command whose flags are parsed.
type Program struct {
	Name string
	// RomOptional allows starting without a ROM argument.
	RomOptional bool
	// Headless enables the flags of the headless runner.
	Headless bool
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(prog Program, args []string) (Options, error) {
	flags := flag.NewFlagSet(prog.Name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	flags.IntVar(&opts.Speed, "speed", internal.DefaultSpeed, "instructions executed per second")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.BoolVar(&opts.LegacyShift, "legacy-shift", false, "shift instructions copy Vy into Vx before shifting")
	flags.BoolVar(&opts.WrapSprites, "wrap", false, "wrap sprites around the screen edges instead of clipping them")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging with an instruction trace")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	if prog.Headless {
		flags.IntVar(&opts.Cycles, "cycles", 1000, "number of instructions to execute")
		flags.StringVar(&opts.PNG, "png", "", "name of a .png file to write the final screen to")
		flags.IntVar(&opts.Scale, "scale", 8, "size of a pixel in the .png output")
	} else {
		flags.IntVar(&opts.Scale, "scale", 10, "size of a pixel on screen")
	}

	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return opts, &UsageError{flags: flags, name: prog.Name}
	}
	if err != nil {
		return opts, &UsageError{flags: flags, name: prog.Name, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0 && !prog.RomOptional:
		return opts, &UsageError{flags: flags, name: prog.Name}
	case len(rest) > 1:
		return opts, &UsageError{
			flags: flags,
			name:  prog.Name,
			msg:   fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", rest[1]),
		}
	case len(rest) == 1:
		opts.Input = rest[0]
	}

	if err := validate(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func validate(opts Options) error {
	if opts.Speed <= 0 || opts.Speed > internal.MaxSpeed {
		return fmt.Errorf("invalid speed %d, must be between 1 and %d", opts.Speed, internal.MaxSpeed)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	}
	if opts.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d", opts.Cycles)
	}
	return nil
}

// Machine returns the VM options for the program options.
func (o Options) Machine(logger *log.Logger) internal.Options {
	opts := internal.DefaultOptions()
	opts.Speed = o.Speed
	opts.Seed = o.Seed
	opts.LegacyShift = o.LegacyShift
	opts.WrapSprites = o.WrapSprites
	if o.Debug {
		opts.Logger = logger
	}
	return opts
}

// NewVM creates a VM for the options and loads the input ROM into it.
func (o Options) NewVM(logger *log.Logger) (*internal.C8VM, error) {
	vm, err := internal.NewC8VM(o.Machine(logger))
	if err != nil {
		return nil, fmt.Errorf("creating VM: %w", err)
	}
	if err := vm.LoadProgramFile(o.Input); err != nil {
		return nil, err
	}
	logger.Info("ROM loaded", log.String("file", o.Input))
	return vm, nil
}

// PrintBanner logs the program name and version unless running quietly.
func PrintBanner(logger *log.Logger, opts Options, name, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	name  string
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "missing ROM file"
	}
	return e.msg
}

// ShowUsage prints the usage information to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	fmt.Fprintf(w, "usage: %s [options] <CHIP-8 program>\n\n", e.name)
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}
