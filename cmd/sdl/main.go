// Package main implements the SDL frontend of the chopper CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/mnafees/chopper/v2/internal/cli"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const name = "chopper"

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(cli.Program{Name: name, RomOptional: true}, os.Args[1:])
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

	if opts.Input == "" {
		opts.Input, err = dialog.File().Title("Load CHIP-8 ROM").Filter("CHIP-8 ROM", "ch8", "c8").Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Error("Selecting ROM failed", log.Err(err))
				os.Exit(1)
			}
			return
		}
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts cli.Options) error {
	vm, err := opts.NewVM(logger)
	if err != nil {
		return err
	}

	io := sdl.NewIO(vm, logger, opts.Scale)
	defer io.Destroy()
	if err := io.SetupWindow("Chopper | " + filepath.Base(opts.Input)); err != nil {
		return err
	}

	err = io.Loop(ctx, opts.Speed)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
