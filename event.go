package carom

import (
	"fmt"
	"math"

	"github.com/akmonengine/carom/actor"
)

type EventType uint8

const (
	EVENT_NONE EventType = iota
	EVENT_BALL_BALL
	EVENT_BALL_CUSHION
	EVENT_STICK_BALL
	EVENT_SPINNING_STATIONARY
	EVENT_ROLLING_STATIONARY
	EVENT_ROLLING_SPINNING
	EVENT_SLIDING_ROLLING
)

type EventClass uint8

const (
	CLASS_NONE EventClass = iota
	CLASS_COLLISION
	CLASS_TRANSITION
)

// Class groups event types: collisions exchange impulse between bodies,
// transitions switch a single ball's motion regime with no kinematic
// discontinuity, and none is the sentinel.
func (t EventType) Class() EventClass {
	switch t {
	case EVENT_BALL_BALL, EVENT_BALL_CUSHION, EVENT_STICK_BALL:
		return CLASS_COLLISION
	case EVENT_SPINNING_STATIONARY, EVENT_ROLLING_STATIONARY,
		EVENT_ROLLING_SPINNING, EVENT_SLIDING_ROLLING:
		return CLASS_TRANSITION
	}
	return CLASS_NONE
}

func (t EventType) String() string {
	switch t {
	case EVENT_NONE:
		return "none"
	case EVENT_BALL_BALL:
		return "ball-ball"
	case EVENT_BALL_CUSHION:
		return "ball-cushion"
	case EVENT_STICK_BALL:
		return "stick-ball"
	case EVENT_SPINNING_STATIONARY:
		return "spinning->stationary"
	case EVENT_ROLLING_STATIONARY:
		return "rolling->stationary"
	case EVENT_ROLLING_SPINNING:
		return "rolling->spinning"
	case EVENT_SLIDING_ROLLING:
		return "sliding->rolling"
	}
	return "unknown"
}

// Event is one discrete occurrence on the simulated timeline: a collision, a
// regime transition, or the NonEvent sentinel. It carries its timestamp and
// references (not ownership) of the participating bodies. An event is created
// by prediction, resolved exactly once, and then appended to the system log.
type Event struct {
	Type EventType
	Time float64

	// Ball is the first participant; nil for NonEvent
	Ball *actor.Ball
	// Other is the second ball, ball-ball collisions only
	Other *actor.Ball
	// Cushion identifies the rail, ball-cushion collisions only
	Cushion *actor.Cushion
}

// NonEvent returns the no-op sentinel at time t. With t = +Inf it means
// "no event pending"; with a finite t it timestamps the start or end of the
// recorded history.
func NonEvent(t float64) Event {
	return Event{Type: EVENT_NONE, Time: t}
}

// Pending reports whether the event will actually happen.
func (e Event) Pending() bool {
	return !math.IsInf(e.Time, 1)
}

func (e Event) String() string {
	switch {
	case e.Other != nil:
		return fmt.Sprintf("%s(%s, %s) @ %.6fs", e.Type, e.Ball.ID, e.Other.ID, e.Time)
	case e.Cushion != nil:
		return fmt.Sprintf("%s(%s, %s) @ %.6fs", e.Type, e.Ball.ID, e.Cushion.ID, e.Time)
	case e.Ball != nil:
		return fmt.Sprintf("%s(%s) @ %.6fs", e.Type, e.Ball.ID, e.Time)
	}
	return fmt.Sprintf("%s @ %.6fs", e.Type, e.Time)
}
