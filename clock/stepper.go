package clock

import "time"

// Stepper turns real elapsed time into a whole number of fixed simulation
// ticks. Backlog beyond MaxTicks per call is discarded rather than carried,
// so a long stall costs at most MaxTicks ticks of work.
type Stepper struct {
	Step     time.Duration
	MaxTicks int

	acc     time.Duration
	dropped time.Duration
}

// NewStepper returns a stepper running at tps ticks per second.
func NewStepper(tps, maxTicks int) *Stepper {
	if tps <= 0 {
		tps = 60
	}
	if maxTicks <= 0 {
		maxTicks = 1
	}
	return &Stepper{Step: time.Second / time.Duration(tps), MaxTicks: maxTicks}
}

// Advance adds elapsed to the accumulator and returns how many ticks to run
// now.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if s.Step <= 0 || elapsed <= 0 {
		return 0
	}
	s.acc += elapsed
	n := int(s.acc / s.Step)
	if n > s.MaxTicks {
		n = s.MaxTicks
		s.dropped += s.acc - time.Duration(n)*s.Step
		s.acc = 0
		return n
	}
	s.acc -= time.Duration(n) * s.Step
	return n
}

// Seconds returns the tick length in seconds.
func (s *Stepper) Seconds() float64 {
	return s.Step.Seconds()
}

// Alpha is how far the accumulator is into the next tick, in [0, 1).
func (s *Stepper) Alpha() float64 {
	if s.Step <= 0 {
		return 0
	}
	return float64(s.acc) / float64(s.Step)
}

// Dropped is the total backlog discarded so far.
func (s *Stepper) Dropped() time.Duration {
	return s.dropped
}

// Reset clears the accumulator.
func (s *Stepper) Reset() {
	s.acc = 0
}
