package carom

import (
	"testing"

	"github.com/akmonengine/carom/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bigSystem returns a system on a table large enough that a moderately struck
// ball comes to rest before reaching any rail.
func bigSystem(t *testing.T) *System {
	t.Helper()
	return testSystem(t, 50, 50)
}

// =============================================================================
// Simulate Tests
// =============================================================================

func TestSimulate_CenterStrikeComesToRest(t *testing.T) {
	s := bigSystem(t)
	b := actor.NewBall("cue", actor.DefaultBallParams(), 25, 25)
	s.AddBall(b)

	start := b.K.Pos
	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: 0.2},
	})
	require.NoError(t, err)

	require.True(t, s.AtRest())
	assert.Equal(t, mgl64.Vec3{}, b.K.Vel)
	assert.Equal(t, mgl64.Vec3{}, b.K.AngVel)

	// phi = 0 sends the ball along +x; it must end up displaced that way
	assert.Greater(t, b.K.Pos.X(), start.X())
	assert.InDelta(t, start.Y(), b.K.Pos.Y(), 1e-9)

	// A center hit slides, rolls, stops: nothing else
	types := make([]EventType, len(s.Events))
	for i, e := range s.Events {
		types[i] = e.Type
	}
	assert.Equal(t, []EventType{
		EVENT_NONE,
		EVENT_STICK_BALL,
		EVENT_SLIDING_ROLLING,
		EVENT_ROLLING_STATIONARY,
		EVENT_NONE,
	}, types)
}

func TestSimulate_HeadOnCollision(t *testing.T) {
	s := bigSystem(t)
	p := actor.DefaultBallParams()
	cue := actor.NewBall("cue", p, 25, 25)
	obj := actor.NewBall("object", p, 25.5, 25)
	s.AddBall(cue)
	s.AddBall(obj)

	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: 0.3},
	})
	require.NoError(t, err)
	require.True(t, s.AtRest())

	var collisions int
	for _, e := range s.Events {
		if e.Type == EVENT_BALL_BALL {
			collisions++
		}
	}
	require.Equal(t, 1, collisions)

	// The object ball carries the shot onward
	assert.Greater(t, obj.K.Pos.X(), 25.5)
	assert.Less(t, cue.K.Pos.X(), obj.K.Pos.X()-2*p.R)
	assert.False(t, s.BallsOverlapping())
}

func TestSimulate_CushionRebound(t *testing.T) {
	// Struck straight at the near rail: the ball must bounce back off it
	s := testSystem(t, 1, 1)
	b := actor.NewBall("cue", actor.DefaultBallParams(), 0.5, 0.5)
	s.AddBall(b)

	_, err := s.Simulate(SimulateOptions{
		Strike:    &actor.Strike{BallID: "cue", V0: 0.3},
		MaxEvents: 20,
	})
	require.NoError(t, err)

	var rebounds int
	for _, e := range s.Events {
		if e.Type == EVENT_BALL_CUSHION {
			rebounds++
		}
	}
	assert.GreaterOrEqual(t, rebounds, 1)
	assert.True(t, s.Table.Contains(b.K.Pos))
}

func TestSimulate_MaxTimeLeavesMidMotion(t *testing.T) {
	s := bigSystem(t)
	s.AddBall(actor.NewBall("cue", actor.DefaultBallParams(), 25, 25))

	_, err := s.Simulate(SimulateOptions{
		Strike:  &actor.Strike{BallID: "cue", V0: 0.2},
		MaxTime: 0.05,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.05, s.T)
	assert.False(t, s.AtRest())
	last := s.Events[len(s.Events)-1]
	assert.Equal(t, EVENT_NONE, last.Type)
	assert.Equal(t, 0.05, last.Time)
}

func TestSimulate_EnergyNonIncreasing(t *testing.T) {
	s := bigSystem(t)
	s.AddBall(actor.NewBall("cue", actor.DefaultBallParams(), 25, 25))

	require.NoError(t, s.Strike(actor.Strike{BallID: "cue", V0: 0.5}))

	prev := s.Energy()
	require.Greater(t, prev, 0.0)

	for i := 0; i < 50 && !s.AtRest(); i++ {
		_, err := s.Simulate(SimulateOptions{MaxEvents: 1})
		require.NoError(t, err)

		e := s.Energy()
		assert.LessOrEqual(t, e, prev+1e-12, "energy grew across event %d", i)
		prev = e
	}
	require.True(t, s.AtRest())
	assert.Equal(t, 0.0, s.Energy())
}

func TestSimulate_InvalidStrike(t *testing.T) {
	s := bigSystem(t)
	s.AddBall(actor.NewBall("cue", actor.DefaultBallParams(), 25, 25))

	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: -1},
	})
	require.Error(t, err)
	assert.Empty(t, s.Events, "failed strike must not mutate the system")

	err = s.Strike(actor.Strike{BallID: "ghost", V0: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

// =============================================================================
// System State Tests
// =============================================================================

func TestSystem_BallsOverlapping(t *testing.T) {
	s := bigSystem(t)
	p := actor.DefaultBallParams()
	s.AddBall(actor.NewBall("a", p, 25, 25))
	s.AddBall(actor.NewBall("b", p, 25+p.R, 25))

	assert.True(t, s.BallsOverlapping())
}

func TestSystem_ResetHistory(t *testing.T) {
	s := bigSystem(t)
	b := actor.NewBall("cue", actor.DefaultBallParams(), 25, 25)
	s.AddBall(b)

	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: 0.2},
	})
	require.NoError(t, err)
	require.NotEmpty(t, s.Events)

	pos := b.K.Pos
	s.ResetHistory()

	assert.Empty(t, s.Events)
	assert.Empty(t, b.History)
	assert.Equal(t, 0.0, s.T)
	assert.Equal(t, pos, b.K.Pos, "reset must keep current kinematics")
}

// =============================================================================
// Event Tests
// =============================================================================

func TestEventType_Class(t *testing.T) {
	collisions := []EventType{EVENT_BALL_BALL, EVENT_BALL_CUSHION, EVENT_STICK_BALL}
	transitions := []EventType{
		EVENT_SPINNING_STATIONARY, EVENT_ROLLING_STATIONARY,
		EVENT_ROLLING_SPINNING, EVENT_SLIDING_ROLLING,
	}

	for _, typ := range collisions {
		assert.Equal(t, CLASS_COLLISION, typ.Class(), typ.String())
	}
	for _, typ := range transitions {
		assert.Equal(t, CLASS_TRANSITION, typ.Class(), typ.String())
	}
	assert.Equal(t, CLASS_NONE, EVENT_NONE.Class())
}

func TestEvent_String(t *testing.T) {
	b := actor.NewBall("cue", actor.DefaultBallParams(), 0, 0)
	o := actor.NewBall("object", actor.DefaultBallParams(), 1, 0)

	e := Event{Type: EVENT_BALL_BALL, Time: 1.5, Ball: b, Other: o}
	assert.Contains(t, e.String(), "cue")
	assert.Contains(t, e.String(), "object")

	assert.Contains(t, NonEvent(0).String(), "none")
}
