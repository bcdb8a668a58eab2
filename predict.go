package carom

import (
	"math"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/motion"
	"github.com/akmonengine/carom/solve"
	"github.com/go-gl/mathgl/mgl64"
)

// motionCoeffs expresses a ball's trajectory as pos(t) = C + B·t + A·t² in
// the table frame, valid until the ball's next regime transition. During a
// slide the contact-point slip direction is constant, so the deceleration is
// too; rolling decelerates along the velocity line; stationary and spinning
// balls do not move.
func motionCoeffs(b *actor.Ball, g float64) (coeffA, coeffB, coeffC mgl64.Vec3) {
	coeffC = b.K.Pos

	switch b.State {
	case actor.StateSliding:
		uHat := unitOrZero(motion.RelVelocity(b.K, b.Params.R))
		coeffA = uHat.Mul(-0.5 * b.Params.SlidingFriction * g)
		coeffB = b.K.Vel
	case actor.StateRolling:
		vHat := unitOrZero(b.K.Vel)
		coeffA = vHat.Mul(-0.5 * b.Params.RollingFriction * g)
		coeffB = b.K.Vel
	}
	return coeffA, coeffB, coeffC
}

func unitOrZero(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// nextTransition predicts the ball's own regime-boundary event. The returned
// event time is absolute. A stationary ball never transitions.
func (s *System) nextTransition(b *actor.Ball) Event {
	g := s.Cfg.Gravity

	switch b.State {
	case actor.StateSliding:
		return Event{
			Type: EVENT_SLIDING_ROLLING,
			Time: s.T + motion.SlideTime(b.K, b.Params, g),
			Ball: b,
		}
	case actor.StateRolling:
		// The roll ends either into residual spin or straight to rest,
		// depending on which of the two decays outlives the roll
		typ := EVENT_ROLLING_STATIONARY
		if motion.SpinTime(b.K, b.Params, g) > motion.RollTime(b.K, b.Params, g) {
			typ = EVENT_ROLLING_SPINNING
		}
		return Event{
			Type: typ,
			Time: s.T + motion.RollTime(b.K, b.Params, g),
			Ball: b,
		}
	case actor.StateSpinning:
		return Event{
			Type: EVENT_SPINNING_STATIONARY,
			Time: s.T + motion.SpinTime(b.K, b.Params, g),
			Ball: b,
		}
	}
	return NonEvent(math.Inf(1))
}

// ballBallTime returns the time until the two balls' center distance closes
// to the sum of their radii, or +Inf. The squared relative displacement is
// quartic in elapsed time; its roots are found through the companion matrix.
func (s *System) ballBallTime(b1, b2 *actor.Ball) float64 {
	a1, v1, r1 := motionCoeffs(b1, s.Cfg.Gravity)
	a2, v2, r2 := motionCoeffs(b2, s.Cfg.Gravity)

	dA := a1.Sub(a2)
	dB := v1.Sub(v2)
	dC := r1.Sub(r2)

	contact := b1.Params.R + b2.Params.R

	roots := solve.Polynomial(
		dA.Dot(dA),
		2*dA.Dot(dB),
		dB.Dot(dB)+2*dA.Dot(dC),
		2*dB.Dot(dC),
		dC.Dot(dC)-contact*contact,
	)
	return solve.MinPositiveRoot(roots)
}

// ballCushionTime returns the time until the ball center reaches distance R
// from the cushion line, or +Inf. Cushions are linear constraints, so the
// signed distance is quadratic in elapsed time; both sides of the line are
// tried since heavy spin can curve a trajectory back.
func (s *System) ballCushionTime(b *actor.Ball, c *actor.Cushion) float64 {
	coeffA, coeffB, coeffC := motionCoeffs(b, s.Cfg.Gravity)

	qa := c.Lx*coeffA.X() + c.Ly*coeffA.Y()
	qb := c.Lx*coeffB.X() + c.Ly*coeffB.Y()
	base := c.L0 + c.Lx*coeffC.X() + c.Ly*coeffC.Y()

	best := math.Inf(1)
	for _, side := range []float64{b.Params.R, -b.Params.R} {
		for _, t := range solve.Quadratic(qa, qb, base-side) {
			if t > solve.TimeTolerance && t < best {
				best = t
			}
		}
	}
	return best
}

// pairCandidate and cushionCandidate are the units of the parallel scan.
type pairCandidate struct {
	b1, b2 *actor.Ball
	dtau   float64
}

type cushionCandidate struct {
	ball    *actor.Ball
	cushion *actor.Cushion
	dtau    float64
}

// NextEvent returns the earliest event across all pending transitions,
// ball-ball candidates and ball-cushion candidates. Ties resolve to the first
// candidate in scan order: transitions by ball id, then ball pairs, then
// cushions. Deterministic, and harmless since a tie means simultaneous
// independent events. When nothing is pending the NonEvent at +Inf comes
// back, meaning the system is at rest.
func (s *System) NextEvent() Event {
	next := NonEvent(math.Inf(1))

	balls := s.sortedBalls()
	for _, b := range balls {
		if e := s.nextTransition(b); e.Time < next.Time {
			next = e
		}
	}

	// Two balls at rest can never meet: pairs need at least one translating
	// ball, and only translating balls can reach a cushion.
	var pairs []*pairCandidate
	for i, b1 := range balls {
		for _, b2 := range balls[i+1:] {
			if b1.State.Translating() || b2.State.Translating() {
				pairs = append(pairs, &pairCandidate{b1: b1, b2: b2})
			}
		}
	}

	var cushions []*cushionCandidate
	for _, b := range balls {
		if !b.State.Translating() {
			continue
		}
		for i := range s.Table.Cushions {
			cushions = append(cushions, &cushionCandidate{ball: b, cushion: &s.Table.Cushions[i]})
		}
	}

	workers := max(1, s.Workers)
	task(workers, pairs, func(p *pairCandidate) {
		p.dtau = s.ballBallTime(p.b1, p.b2)
	})
	task(workers, cushions, func(c *cushionCandidate) {
		c.dtau = s.ballCushionTime(c.ball, c.cushion)
	})

	for _, p := range pairs {
		if t := s.T + p.dtau; t < next.Time {
			next = Event{Type: EVENT_BALL_BALL, Time: t, Ball: p.b1, Other: p.b2}
		}
	}
	for _, c := range cushions {
		if t := s.T + c.dtau; t < next.Time {
			next = Event{Type: EVENT_BALL_CUSHION, Time: t, Ball: c.ball, Cushion: c.cushion}
		}
	}

	return next
}
