// Package ebitengine implements an Ebitengine frontend for the CHIP-8 VM.
package ebitengine

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

var statusColor = color.RGBA{R: 0xFF, G: 0xEB, B: 0x3B, A: 0xFF}

// Options configures the window of the frontend.
type Options struct {
	Title string
	Scale int
	Speed int
}

// Game implements ebiten.Game for a CHIP-8 VM.
type Game struct {
	ctx    context.Context
	vm     *internal.C8VM
	logger *log.Logger
	clock  *internal.Clock
	scale  int

	frame   *ebiten.Image
	display *rgbaDisplay
	beeper  *beeper

	showStatus    bool
	clipboardOnce sync.Once
	clipboardOK   bool
}

// NewGame returns a game running vm. The game terminates when ctx is done.
func NewGame(ctx context.Context, vm *internal.C8VM, logger *log.Logger, opts Options) *Game {
	return &Game{
		ctx:     ctx,
		vm:      vm,
		logger:  logger,
		clock:   internal.NewClock(opts.Speed),
		scale:   opts.Scale,
		display: newRGBADisplay(),
	}
}

// Run opens the window and runs the game loop until the window is closed,
// ctx is done or the VM halts with an error.
func Run(ctx context.Context, vm *internal.C8VM, logger *log.Logger, opts Options) error {
	g := NewGame(ctx, vm, logger, opts)

	b, err := newBeeper()
	if err != nil {
		logger.Warn("Audio unavailable", log.Err(err))
	} else {
		g.beeper = b
		defer b.close()
	}

	ebiten.SetWindowSize(internal.ScreenWidth*opts.Scale, internal.ScreenHeight*opts.Scale)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input and runs the instructions and timer ticks of one
// frame.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.logger.Info("Resetting VM")
		g.vm.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.showStatus = !g.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.copyScreen()
	}

	keypad := g.vm.Keypad()
	for key, hex := range keys {
		keypad.SetPressed(hex, ebiten.IsKeyPressed(key))
	}

	steps, ticks := g.clock.Advance(time.Second / time.Duration(ebiten.TPS()))
	for range ticks {
		g.vm.Tick()
	}
	for range steps {
		if err := g.vm.Step(); err != nil {
			return err
		}
		if g.vm.WaitingForKey() {
			break
		}
	}

	if g.beeper != nil {
		g.beeper.update(g.vm.SoundActive())
	}
	return nil
}

// Draw renders the framebuffer scaled to the window.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(internal.ScreenWidth, internal.ScreenHeight)
	}
	if g.vm.IsDrawFlagSet() || !g.display.valid {
		g.vm.Framebuffer().Render(g.display)
		g.vm.UnsetDrawFlag()
		g.frame.WritePixels(g.display.pix)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.frame, opts)

	if g.showStatus {
		text.Draw(screen, statusLine(g.vm), basicfont.Face7x13, 4, 14, statusColor)
	}
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return internal.ScreenWidth * g.scale, internal.ScreenHeight * g.scale
}

// copyScreen copies a text rendering of the screen to the clipboard.
func (g *Game) copyScreen() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		g.logger.Warn("Clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.vm.Framebuffer().String()))
	g.logger.Info("Screen copied to clipboard")
}

func statusLine(vm *internal.C8VM) string {
	return fmt.Sprintf("PC %03X I %03X DT %02X ST %02X", vm.PC(), vm.I(), vm.DelayTimer(), vm.SoundTimer())
}
