package internal

// TimerFrequency is the rate in Hz at which Tick must be called.
const TimerFrequency = 60

// Timers holds the delay and sound timers. Both count down to zero at
// TimerFrequency, independent of the instruction rate.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}
