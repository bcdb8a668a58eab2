// Package carom is an event-driven billiards physics engine.
//
// Between events every ball follows an exact closed-form trajectory for its
// motion regime (see the motion package). The System advances by repeatedly
// predicting the earliest of all possible next events (regime transitions,
// ball-ball collisions, ball-cushion collisions), evolving every ball
// analytically to that exact instant, and resolving the event's impulse or
// state change (see the impact package). No numerical integration is involved
// in detection; the uniform-step Continuize pass exists only for playback.
package carom

import (
	"fmt"
	"sort"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/impact"
	"github.com/akmonengine/carom/motion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const DEFAULT_WORKERS = 1

// Config carries the global physical constants. Immutable after construction;
// per-ball parameters live on the balls themselves.
type Config struct {
	// Gravity acceleration (m/s²)
	Gravity float64

	// Tolerance below which lengths and speeds are treated as zero
	Tolerance float64
}

// DefaultConfig returns the standard constants table.
func DefaultConfig() Config {
	return Config{
		Gravity:   9.8,
		Tolerance: 1e-10,
	}
}

// System owns the cue, the table and the balls of one shot, plus the
// chronological event log. The invariant at every point between calls: T
// equals the timestamp of the most recently resolved event, and every ball's
// kinematic state is valid as of T.
type System struct {
	ID  uuid.UUID
	Cfg Config

	Table *actor.Table
	Cue   *actor.Cue
	Balls map[string]*actor.Ball

	// Events is the chronological log of resolved events
	Events []Event
	// T is the current simulation time
	T float64

	Workers int
}

// NewSystem creates an empty system on the given table.
func NewSystem(cfg Config, table *actor.Table, cue *actor.Cue) *System {
	return &System{
		ID:      uuid.New(),
		Cfg:     cfg,
		Table:   table,
		Cue:     cue,
		Balls:   make(map[string]*actor.Ball),
		Workers: DEFAULT_WORKERS,
	}
}

// AddBall adds a ball to the system.
func (s *System) AddBall(b *actor.Ball) {
	s.Balls[b.ID] = b
}

// Ball looks a ball up by id.
func (s *System) Ball(id string) (*actor.Ball, bool) {
	b, ok := s.Balls[id]
	return b, ok
}

func (s *System) sortedBalls() []*actor.Ball {
	ids := make([]string, 0, len(s.Balls))
	for id := range s.Balls {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	balls := make([]*actor.Ball, len(ids))
	for i, id := range ids {
		balls[i] = s.Balls[id]
	}
	return balls
}

// Strike applies a cue strike to the selected ball at the current time and
// logs it as a stick-ball event. Validation happens before any mutation.
func (s *System) Strike(strike actor.Strike) error {
	if err := strike.Validate(); err != nil {
		return err
	}
	ball, ok := s.Balls[strike.BallID]
	if !ok {
		return fmt.Errorf("cue strike: unknown ball %q", strike.BallID)
	}

	s.seedHistory()
	s.Cue.Last = strike

	ball.K, ball.State = impact.Strike(
		ball.K, ball.Params,
		s.Cue.M, strike.V0,
		mgl64.DegToRad(strike.Phi), mgl64.DegToRad(strike.Theta),
		strike.A, strike.B,
	)

	s.record(Event{Type: EVENT_STICK_BALL, Time: s.T, Ball: ball})
	return nil
}

// SimulateOptions bounds a Simulate call. Zero values mean unbounded.
type SimulateOptions struct {
	// MaxTime stops the loop once the next event would pass this simulated
	// time; balls are left mid-motion in a valid state.
	MaxTime float64

	// MaxEvents stops the loop after resolving this many events.
	MaxEvents int

	// Strike, if non-nil, is applied before the loop starts.
	Strike *actor.Strike
}

// Simulate runs the event loop until the system is globally at rest or a
// caller budget is exhausted. It returns the events resolved by this call;
// the full log stays on s.Events. NonEvent sentinels bracket the recorded
// history.
func (s *System) Simulate(opts SimulateOptions) ([]Event, error) {
	if opts.Strike != nil {
		if err := s.Strike(*opts.Strike); err != nil {
			return nil, err
		}
	}
	s.seedHistory()

	start := len(s.Events)
	for resolved := 0; ; resolved++ {
		if opts.MaxEvents > 0 && resolved >= opts.MaxEvents {
			break
		}

		event := s.NextEvent()
		if !event.Pending() {
			// Globally at rest; close the history
			s.record(NonEvent(s.T))
			break
		}
		if opts.MaxTime > 0 && event.Time > opts.MaxTime {
			s.evolve(opts.MaxTime - s.T)
			s.record(NonEvent(s.T))
			break
		}

		s.evolve(event.Time - s.T)
		s.resolve(&event)
		s.record(event)
	}

	return s.Events[start:], nil
}

// evolve advances every ball analytically by dt and moves the clock. Regime
// boundaries inside dt are crossed exactly by the motion composition.
func (s *System) evolve(dt float64) {
	for _, b := range s.Balls {
		b.K, b.State = motion.Evolve(b.State, b.K, b.Params, s.Cfg.Gravity, dt)
	}
	s.T += dt
}

// resolve applies the event's physical effect to the bodies it references.
// Dispatch is an exhaustive switch over the event types; each arm mutates
// exactly its participants.
func (s *System) resolve(e *Event) {
	switch e.Type {
	case EVENT_BALL_BALL:
		e.Ball.K, e.Other.K = impact.BallBall(e.Ball.K, e.Other.K)
		e.Ball.State = actor.StateSliding
		e.Other.State = actor.StateSliding

	case EVENT_BALL_CUSHION:
		e.Ball.K = impact.Cushion(e.Ball.K, e.Ball.Params, *e.Cushion)
		e.Ball.State = actor.StateSliding

	case EVENT_SLIDING_ROLLING:
		e.Ball.State = actor.StateRolling

	case EVENT_ROLLING_SPINNING:
		e.Ball.State = actor.StateSpinning
		e.Ball.K.Vel = mgl64.Vec3{}

	case EVENT_ROLLING_STATIONARY:
		e.Ball.State = actor.StateStationary
		e.Ball.K.Vel = mgl64.Vec3{}
		e.Ball.K.AngVel = mgl64.Vec3{}

	case EVENT_SPINNING_STATIONARY:
		e.Ball.State = actor.StateStationary
		e.Ball.K.AngVel = mgl64.Vec3{}
	}
}

// record appends the event to the log and samples every ball's history at the
// event boundary.
func (s *System) record(e Event) {
	s.Events = append(s.Events, e)
	for _, b := range s.Balls {
		b.RecordHistory(e.Time)
	}
}

// seedHistory opens the history with the t=0 sentinel exactly once.
func (s *System) seedHistory() {
	if len(s.Events) == 0 {
		s.record(NonEvent(s.T))
	}
}

// Energy returns the total kinetic energy of the system. Friction only ever
// dissipates, so across resolved events this is non-increasing. A checkable
// invariant, not an enforced one.
func (s *System) Energy() float64 {
	var total float64
	for _, b := range s.Balls {
		total += b.Energy()
	}
	return total
}

// BallsOverlapping reports whether any two balls interpenetrate beyond
// tolerance. The engine never produces overlap on its own; this is a
// diagnostic for callers and tests.
func (s *System) BallsOverlapping() bool {
	balls := s.sortedBalls()
	for i, b1 := range balls {
		for _, b2 := range balls[i+1:] {
			contact := b1.Params.R + b2.Params.R
			if b1.K.Pos.Sub(b2.K.Pos).Len() < contact-s.Cfg.Tolerance {
				return true
			}
		}
	}
	return false
}

// AtRest reports whether every ball is stationary.
func (s *System) AtRest() bool {
	for _, b := range s.Balls {
		if b.State != actor.StateStationary {
			return false
		}
	}
	return true
}

// ResetHistory clears the event log and all ball histories and rewinds the
// clock to zero. Current ball kinematics are kept.
func (s *System) ResetHistory() {
	s.Events = nil
	s.T = 0
	for _, b := range s.Balls {
		b.ResetHistory()
	}
}
