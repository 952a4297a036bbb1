// Package main implements a headless runner of the chopper CHIP-8 emulator.
// It executes a ROM for a fixed number of instructions and prints the final
// screen, optionally saving it as a PNG file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/cli"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/pkg/screenshot"
	"github.com/mnafees/chopper/v2/pkg/term"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const name = "chopper-trace"

var errWaitingForKey = errors.New("program is waiting for a key press")

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(cli.Program{Name: name, Headless: true}, os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			cli.PrintBanner(logger, opts, name, version, commit, date)
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}
	cli.PrintBanner(logger, opts, name, version, commit, date)

	if err := run(ctx, logger, opts, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Execution failed", log.Err(err))
		os.Exit(1)
	}
}

// run executes the ROM and outputs the final screen. The screen is output
// even if execution failed.
func run(ctx context.Context, logger *log.Logger, opts cli.Options, out io.Writer) error {
	vm, err := opts.NewVM(logger)
	if err != nil {
		return err
	}

	executed, execErr := execute(ctx, vm, opts.Cycles, opts.Speed)
	if errors.Is(execErr, errWaitingForKey) {
		logger.Warn("Stopped early", log.Err(execErr))
		execErr = nil
	}
	logger.Info("Execution finished",
		log.Int("instructions", executed),
		log.String("next", vm.Disassemble(vm.PC())),
	)

	display := term.NewDisplay(out)
	vm.Framebuffer().Render(display)
	if err := display.Err(); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}

	if opts.PNG != "" {
		if err := screenshot.SavePNG(opts.PNG, vm.Framebuffer(), opts.Scale); err != nil {
			return err
		}
		logger.Info("Screen saved", log.String("file", opts.PNG))
	}
	return execErr
}

// execute runs up to cycles instructions, ticking the timers as often as
// they would tick when running at speed instructions per second.
func execute(ctx context.Context, vm *internal.C8VM, cycles, speed int) (int, error) {
	clock := internal.NewClock(speed)
	period := clock.StepPeriod()

	for i := range cycles {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		_, ticks := clock.Advance(period)
		for range ticks {
			vm.Tick()
		}
		if err := vm.Step(); err != nil {
			return i, err
		}
		if vm.WaitingForKey() {
			return i + 1, errWaitingForKey
		}
	}
	return cycles, nil
}
