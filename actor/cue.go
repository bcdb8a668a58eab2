package actor

import (
	"fmt"
	"math"
)

// Cue is the cue stick. It is stateless between strikes apart from the
// parameters of the last strike taken.
type Cue struct {
	M float64 // stick mass (kg)

	// Last-used strike parameters
	Last Strike
}

// DefaultCue returns a cue of standard 20 oz mass.
func DefaultCue() *Cue {
	return &Cue{M: 0.567}
}

// Strike describes one cue strike: which ball, how hard, and where the tip
// lands. Offsets A and B are normalized by the ball radius; (0, 0) is a
// dead-center hit.
type Strike struct {
	BallID string

	V0    float64 // impact speed of the cue tip (m/s)
	Phi   float64 // azimuth, degrees, 0 = +x axis
	Theta float64 // cue elevation, degrees, 0 = level with the cloth
	A     float64 // side offset of the tip, units of R, + is right english
	B     float64 // vertical offset of the tip, units of R, + is topspin
}

// Validate checks the strike preconditions. It is called once at the boundary
// before any state mutation; all failures are deterministic caller errors.
func (s Strike) Validate() error {
	if s.BallID == "" {
		return fmt.Errorf("cue strike: no ball selected")
	}
	if !(s.V0 > 0) {
		return fmt.Errorf("cue strike: impact speed %v must be positive", s.V0)
	}
	if s.Theta < 0 || s.Theta >= 90 {
		return fmt.Errorf("cue strike: elevation %v° outside [0, 90)", s.Theta)
	}
	if math.Abs(s.A) >= 1 || math.Abs(s.B) >= 1 {
		return fmt.Errorf("cue strike: tip offset (%v, %v) outside the ball", s.A, s.B)
	}
	if s.A*s.A+s.B*s.B >= 1 {
		return fmt.Errorf("cue strike: tip offset (%v, %v) is a miscue", s.A, s.B)
	}
	return nil
}
