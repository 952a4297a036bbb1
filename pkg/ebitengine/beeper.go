package ebitengine

import (
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	toneHz     = 440
	amplitude  = 0x1000
)

// squareWave is an io.Reader producing signed 16 bit little endian mono
// samples. It produces silence unless active.
type squareWave struct {
	active atomic.Bool
	phase  int
}

func (w *squareWave) Read(p []byte) (int, error) {
	n := len(p) &^ 1
	active := w.active.Load()
	half := sampleRate / toneHz / 2

	for i := 0; i < n; i += 2 {
		var v int16
		if active {
			v = amplitude
			if (w.phase/half)%2 == 1 {
				v = -amplitude
			}
			w.phase++
		}
		p[i] = byte(v)
		p[i+1] = byte(uint16(v) >> 8)
	}
	return n, nil
}

// beeper plays the square wave through an oto player.
type beeper struct {
	wave   *squareWave
	player *oto.Player
}

func newBeeper() (*beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	wave := &squareWave{}
	player := ctx.NewPlayer(wave)
	player.Play()
	return &beeper{
		wave:   wave,
		player: player,
	}, nil
}

func (b *beeper) update(active bool) {
	b.wave.active.Store(active)
}

func (b *beeper) close() {
	_ = b.player.Close()
}
