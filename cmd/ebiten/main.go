// Package main implements the Ebitengine frontend of the chopper CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/mnafees/chopper/v2/internal/cli"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/pkg/ebitengine"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const name = "chopper-ebiten"

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(cli.Program{Name: name}, os.Args[1:])
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

	return ebitengine.Run(ctx, vm, logger, ebitengine.Options{
		Title: "Chopper | " + filepath.Base(opts.Input),
		Scale: opts.Scale,
		Speed: opts.Speed,
	})
}
