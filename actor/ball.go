package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BallState identifies the motion regime a ball is in. Exactly one state holds
// at any instant; it selects which closed-form evolution law applies.
type BallState int

const (
	// StateStationary balls do not move at all
	StateStationary BallState = iota

	// StateSpinning balls are translationally at rest with residual spin about
	// the vertical axis
	StateSpinning

	// StateSliding balls translate while their contact point slips on the cloth
	StateSliding

	// StateRolling balls translate without slipping (contact velocity is zero)
	StateRolling
)

func (s BallState) String() string {
	switch s {
	case StateStationary:
		return "stationary"
	case StateSpinning:
		return "spinning"
	case StateSliding:
		return "sliding"
	case StateRolling:
		return "rolling"
	}
	return "unknown"
}

// Translating reports whether the state moves the ball across the cloth.
// Stationary and spinning balls keep their position and can be skipped by
// collision-time prediction.
func (s BallState) Translating() bool {
	return s == StateSliding || s == StateRolling
}

// Kinematics is the rvw state of a ball: position, linear velocity and angular
// velocity rows, plus an integrated angular displacement kept only for
// rendering. It is a value type: evolution produces a new value, and mutation
// happens only inside a single event resolution.
type Kinematics struct {
	Pos    mgl64.Vec3
	Vel    mgl64.Vec3
	AngVel mgl64.Vec3

	// Orient accumulates the Euler integral of AngVel. Playback layers use it
	// to spin the rendered ball; the physics never reads it back.
	Orient mgl64.Vec3
}

// BallParams are the immutable physical parameters of a ball.
type BallParams struct {
	M float64 // mass (kg)
	R float64 // radius (m)

	SlidingFriction  float64 // u_s, ball-cloth Coulomb friction while slipping
	RollingFriction  float64 // u_r, rolling resistance
	SpinningFriction float64 // u_sp, friction against spin about the vertical axis
}

// DefaultBallParams returns parameters for a standard 2¼-inch pool ball on
// tournament cloth.
func DefaultBallParams() BallParams {
	const r = 0.028575
	return BallParams{
		M:                0.170097,
		R:                r,
		SlidingFriction:  0.2,
		RollingFriction:  0.01,
		SpinningFriction: 10 * 2.0 / 5.0 * r / 9,
	}
}

// Inertia returns the moment of inertia of the solid sphere, I = 2/5·m·R².
func (p BallParams) Inertia() float64 {
	return 2.0 / 5.0 * p.M * p.R * p.R
}

// HistoryEntry is one (time, rvw, state) sample recorded at an event boundary.
type HistoryEntry struct {
	T     float64
	K     Kinematics
	State BallState
}

// Ball is a single billiard ball: identity, parameters, current kinematic
// state and the append-only history of past states.
type Ball struct {
	ID     string
	Params BallParams

	K     Kinematics
	State BallState

	// History holds one sample per resolved event, in non-decreasing time
	// order. Append-only until ResetHistory.
	History []HistoryEntry
}

// NewBall creates a stationary ball resting on the cloth at (x, y). The
// vertical position is pinned to the radius; the engine has no vertical
// degree of freedom.
func NewBall(id string, params BallParams, x, y float64) *Ball {
	return &Ball{
		ID:     id,
		Params: params,
		K: Kinematics{
			Pos: mgl64.Vec3{x, y, params.R},
		},
		State: StateStationary,
	}
}

// RecordHistory appends the current state as a sample at time t.
func (b *Ball) RecordHistory(t float64) {
	b.History = append(b.History, HistoryEntry{T: t, K: b.K, State: b.State})
}

// ResetHistory drops all recorded samples.
func (b *Ball) ResetHistory() {
	b.History = nil
}

// Trajectory returns a copy of the recorded history.
func (b *Ball) Trajectory() []HistoryEntry {
	out := make([]HistoryEntry, len(b.History))
	copy(out, b.History)
	return out
}

// Energy returns the ball's kinetic energy, translational plus rotational.
func (b *Ball) Energy() float64 {
	v2 := b.K.Vel.Dot(b.K.Vel)
	w2 := b.K.AngVel.Dot(b.K.AngVel)
	return 0.5*b.Params.M*v2 + 0.5*b.Params.Inertia()*w2
}
