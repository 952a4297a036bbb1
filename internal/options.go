package internal

import (
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Instructions executed per second.
const (
	DefaultSpeed = 700
	MaxSpeed     = 1_000_000
)

// Options configures a VM.
type Options struct {
	// Speed is the number of instructions executed per second by drivers
	// that use a Clock.
	Speed int

	// LegacyShift makes 8xy6 and 8xyE copy Vy into Vx before shifting, as
	// the original COSMAC VIP interpreter did. By default Vx is shifted in
	// place.
	LegacyShift bool

	// WrapSprites wraps sprite pixels that fall off one edge of the screen
	// around to the opposite edge instead of clipping them.
	WrapSprites bool

	// Seed seeds the random number generator used by Cxkk. A zero seed
	// uses the current time.
	Seed int64

	// Logger receives an instruction trace at debug level. Optional.
	Logger *log.Logger
}

// DefaultOptions returns the default VM options.
func DefaultOptions() Options {
	return Options{
		Speed: DefaultSpeed,
	}
}

func (o Options) validate() error {
	if o.Speed <= 0 || o.Speed > MaxSpeed {
		return fmt.Errorf("invalid speed %d, must be between 1 and %d", o.Speed, MaxSpeed)
	}
	return nil
}

func (o Options) seed() int64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return time.Now().UnixNano()
}
