// Package sdl implements an SDL frontend for the CHIP-8 VM.
package sdl

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM. It implements
// internal.Display on top of an SDL window surface.
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	beeper  *beeper

	vm        *internal.C8VM
	logger    *log.Logger
	pixelSize int32
}

var _ internal.Display = (*IO)(nil)

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(vm *internal.C8VM, logger *log.Logger, pixelSize int) *IO {
	return &IO{
		vm:        vm,
		logger:    logger,
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises SDL and sets up the main window and the audio
// device.
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	io.Clear()

	io.beeper, err = newBeeper()
	if err != nil {
		// the emulator is usable without sound
		io.logger.Warn("Audio unavailable", log.Err(err))
	}
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.beeper != nil {
		io.beeper.close()
	}
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop is the main application loop. Every frame it polls input, runs the
// timer ticks and instructions that are due and presents the screen if it
// changed. It returns nil when the window is closed and the VM error if
// execution halted.
func (io *IO) Loop(ctx context.Context, speed int) error {
	clock := internal.NewClock(speed)
	frame := time.NewTicker(time.Second / internal.TimerFrequency)
	defer frame.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frame.C:
		}

		if !io.pollEvents() {
			return nil
		}

		now := time.Now()
		steps, ticks := clock.Advance(now.Sub(last))
		last = now

		for range ticks {
			io.vm.Tick()
		}
		for range steps {
			if err := io.vm.Step(); err != nil {
				return err
			}
			if io.vm.WaitingForKey() {
				break
			}
		}

		if io.beeper != nil {
			io.beeper.update(io.vm.SoundActive())
		}
		if io.vm.IsDrawFlagSet() {
			io.vm.Framebuffer().Render(io)
			io.vm.UnsetDrawFlag()
		}
	}
}

// pollEvents feeds keyboard events to the keypad. It returns false if the
// application should quit.
func (io *IO) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			keycode := t.Keysym.Scancode
			pressed := t.GetType() == sdl.KEYDOWN

			switch {
			case keycode == sdl.SCANCODE_ESCAPE:
				return false
			case keycode == sdl.SCANCODE_BACKSPACE && pressed:
				io.logger.Info("Resetting VM")
				io.vm.Reset()
			default:
				if key, ok := keymap(keycode); ok {
					io.vm.Keypad().SetPressed(key, pressed)
				}
			}

		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

// Clear fills the window with the background color.
func (io *IO) Clear() {
	_ = io.surface.FillRect(nil, screenColor)
}

// SetPixel draws a single scaled CHIP-8 pixel.
func (io *IO) SetPixel(x, y int, on bool) {
	color := uint32(screenColor)
	if on {
		color = spriteColor
	}
	rect := &sdl.Rect{
		X: int32(x) * io.pixelSize,
		Y: int32(y) * io.pixelSize,
		W: io.pixelSize,
		H: io.pixelSize,
	}
	_ = io.surface.FillRect(rect, color)
}

// Present copies the surface to the screen.
func (io *IO) Present() {
	_ = io.window.UpdateSurface()
}
