package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 22050
	toneHz     = 440
	amplitude  = 32
)

// beeper plays a square wave tone while the sound timer is active by
// queueing samples on an SDL audio device.
type beeper struct {
	dev   sdl.AudioDeviceID
	buf   []byte
	phase int
}

func newBeeper() (*beeper, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)

	return &beeper{
		dev: dev,
		// two frames worth of samples
		buf: make([]byte, 2*sampleRate/60),
	}, nil
}

// update keeps the queue filled while active and silences it otherwise.
func (b *beeper) update(active bool) {
	if !active {
		sdl.ClearQueuedAudio(b.dev)
		return
	}
	if sdl.GetQueuedAudioSize(b.dev) >= uint32(len(b.buf)) {
		return
	}

	half := sampleRate / toneHz / 2
	for i := range b.buf {
		var v int8 = amplitude
		if (b.phase/half)%2 == 1 {
			v = -amplitude
		}
		b.buf[i] = byte(v)
		b.phase++
	}
	_ = sdl.QueueAudio(b.dev, b.buf)
}

func (b *beeper) close() {
	sdl.CloseAudioDevice(b.dev)
}
