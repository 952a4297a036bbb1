package internal

import "time"

// maxCatchUp bounds the time a single Advance call accounts for, so that a
// stalled driver does not try to execute a burst of instructions afterwards.
const maxCatchUp = 250 * time.Millisecond

// Clock converts elapsed wall time into the number of instruction steps and
// timer ticks owed. Steps run at the configured speed and ticks at
// TimerFrequency, independent of each other.
type Clock struct {
	stepPeriod time.Duration
	tickPeriod time.Duration

	stepDebt time.Duration
	tickDebt time.Duration
}

// NewClock returns a clock for the given instructions per second. Speeds
// above MaxSpeed run at MaxSpeed.
func NewClock(speed int) *Clock {
	switch {
	case speed <= 0:
		speed = DefaultSpeed
	case speed > MaxSpeed:
		speed = MaxSpeed
	}
	return &Clock{
		stepPeriod: time.Second / time.Duration(speed),
		tickPeriod: time.Second / TimerFrequency,
	}
}

// StepPeriod returns the wall time of a single instruction step.
func (c *Clock) StepPeriod() time.Duration {
	return c.stepPeriod
}

// Advance accounts for elapsed time and returns how many steps and ticks
// are due. Fractions of a period carry over to the next call.
func (c *Clock) Advance(elapsed time.Duration) (steps, ticks int) {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxCatchUp {
		elapsed = maxCatchUp
	}

	c.stepDebt += elapsed
	steps = int(c.stepDebt / c.stepPeriod)
	c.stepDebt -= time.Duration(steps) * c.stepPeriod

	c.tickDebt += elapsed
	ticks = int(c.tickDebt / c.tickPeriod)
	c.tickDebt -= time.Duration(ticks) * c.tickPeriod

	return steps, ticks
}
