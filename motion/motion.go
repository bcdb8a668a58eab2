// Package motion implements the closed-form kinematics of a billiard ball.
//
// Between events a ball's trajectory is an exact function of elapsed time,
// selected by its motion regime:
//
//   - sliding: the contact point slips; Coulomb friction u_s decelerates the
//     slip velocity linearly, giving a mixed linear+quadratic law in a frame
//     aligned with the velocity heading
//   - rolling: no slip; rolling resistance u_r decelerates the ball along a
//     straight line, with angular velocity slaved to linear velocity
//   - spinning: the ball is translationally at rest; residual spin about the
//     vertical axis decays linearly under u_sp
//   - stationary: nothing changes
//
// Every regime ends after a computable duration (SlideTime, RollTime,
// SpinTime). Evolve composes the per-regime laws: it never evolves past a
// regime boundary in a single step, instead advancing exactly to the boundary,
// switching regime, and continuing on the remainder.
//
// Spin about the vertical axis decays independently in every moving regime.
//
// References:
//   - Leckie & Greenspan: "An Event-Based Pool Physics Simulator" (2006)
package motion

import (
	"math"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/solve"
	"github.com/go-gl/mathgl/mgl64"
)

var zAxis = mgl64.Vec3{0, 0, 1}

// Heading returns the direction of v in the table plane, in [0, 2π).
func Heading(v mgl64.Vec3) float64 {
	a := math.Atan2(v.Y(), v.X())
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func unit(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// RelVelocity returns the velocity of the ball's cloth-contact point relative
// to the cloth, u = v + R·(ẑ × ω). Zero defines rolling without slipping.
func RelVelocity(k actor.Kinematics, r float64) mgl64.Vec3 {
	return k.Vel.Add(zAxis.Cross(k.AngVel).Mul(r))
}

// SlideTime returns how long the ball keeps sliding before the contact point
// catches up with the cloth, 2|u| / (7·u_s·g). +Inf on a frictionless cloth.
func SlideTime(k actor.Kinematics, p actor.BallParams, g float64) float64 {
	if p.SlidingFriction == 0 {
		return math.Inf(1)
	}
	return 2 * RelVelocity(k, p.R).Len() / (7 * p.SlidingFriction * g)
}

// RollTime returns how long the ball keeps rolling before it stops
// translating, |v| / (u_r·g). +Inf without rolling resistance.
func RollTime(k actor.Kinematics, p actor.BallParams, g float64) float64 {
	if p.RollingFriction == 0 {
		return math.Inf(1)
	}
	return k.Vel.Len() / (p.RollingFriction * g)
}

// SpinTime returns how long residual vertical spin persists,
// |ω_z|·(2/5)·R / (u_sp·g). +Inf without spinning friction.
func SpinTime(k actor.Kinematics, p actor.BallParams, g float64) float64 {
	if p.SpinningFriction == 0 {
		return math.Inf(1)
	}
	return math.Abs(k.AngVel.Z()) * 2.0 / 5.0 * p.R / (p.SpinningFriction * g)
}

// EvolveSpinZ decays a vertical spin component linearly toward zero at rate
// 5·u_sp·g / (2R), clamping so it never overshoots.
func EvolveSpinZ(wz, r, uSp, g, t float64) float64 {
	if wz == 0 || uSp == 0 {
		return wz
	}
	alpha := 5 * uSp * g / (2 * r)
	if t > math.Abs(wz)/alpha {
		t = math.Abs(wz) / alpha
	}
	return wz - math.Copysign(alpha*t, wz)
}

// EvolveSlide advances a sliding ball by t, assuming t does not exceed
// SlideTime. The law is expressed in a frame rotated by the velocity heading,
// where the slip direction is constant, then rotated back.
func EvolveSlide(k actor.Kinematics, p actor.BallParams, g, t float64) actor.Kinematics {
	if t == 0 {
		return k
	}

	phi := Heading(k.Vel)
	toBall := mgl64.Rotate3DZ(-phi)
	toTable := mgl64.Rotate3DZ(phi)

	vB := toBall.Mul3x1(k.Vel)
	wB := toBall.Mul3x1(k.AngVel)
	u0 := toBall.Mul3x1(unit(RelVelocity(k, p.R)))

	usg := p.SlidingFriction * g
	dispB := mgl64.Vec3{
		vB.X()*t - 0.5*usg*t*t*u0.X(),
		-0.5 * usg * t * t * u0.Y(),
		0,
	}
	vB = vB.Sub(u0.Mul(usg * t))
	wB = wB.Sub(u0.Cross(zAxis).Mul(5 / (2 * p.R) * usg * t))

	// Rotation about z leaves the vertical spin untouched; it decays on its own
	wB[2] = EvolveSpinZ(k.AngVel.Z(), p.R, p.SpinningFriction, g, t)

	out := k
	out.Pos = k.Pos.Add(toTable.Mul3x1(dispB))
	out.Vel = toTable.Mul3x1(vB)
	out.AngVel = toTable.Mul3x1(wB)
	out.Orient = integrateOrient(k, out, t)
	return out
}

// EvolveRoll advances a rolling ball by t, assuming t does not exceed
// RollTime. Angular velocity stays slaved to linear velocity,
// ω = R⁻¹·rotate90(v); only the vertical spin evolves independently.
func EvolveRoll(k actor.Kinematics, p actor.BallParams, g, t float64) actor.Kinematics {
	if t == 0 {
		return k
	}

	vHat := unit(k.Vel)
	urg := p.RollingFriction * g

	out := k
	out.Pos = k.Pos.Add(k.Vel.Mul(t)).Sub(vHat.Mul(0.5 * urg * t * t))
	out.Vel = k.Vel.Sub(vHat.Mul(urg * t))

	w := mgl64.Rotate3DZ(math.Pi / 2).Mul3x1(out.Vel.Mul(1 / p.R))
	w[2] = EvolveSpinZ(k.AngVel.Z(), p.R, p.SpinningFriction, g, t)
	out.AngVel = w
	out.Orient = integrateOrient(k, out, t)
	return out
}

// EvolveSpin advances a spinning (translationally at rest) ball by t.
func EvolveSpin(k actor.Kinematics, p actor.BallParams, g, t float64) actor.Kinematics {
	out := k
	out.AngVel[2] = EvolveSpinZ(k.AngVel.Z(), p.R, p.SpinningFriction, g, t)
	out.Orient = integrateOrient(k, out, t)
	return out
}

// integrateOrient accumulates the rendering-only orientation row. Angular
// velocity varies linearly within a regime, so the trapezoid is exact.
func integrateOrient(before, after actor.Kinematics, t float64) mgl64.Vec3 {
	mean := before.AngVel.Add(after.AngVel).Mul(0.5)
	return before.Orient.Add(mean.Mul(t))
}

// Evolve advances a ball in the given regime by t, crossing regime boundaries
// exactly: if t exceeds the remaining duration of the current regime the ball
// is advanced to the boundary, switched, and evolved on the remainder. The
// returned state is the regime holding at the final instant.
func Evolve(state actor.BallState, k actor.Kinematics, p actor.BallParams, g, t float64) (actor.Kinematics, actor.BallState) {
	if state == actor.StateStationary {
		return k, state
	}

	if state == actor.StateSliding {
		dtau := SlideTime(k, p, g)
		if t < dtau {
			return EvolveSlide(k, p, g, t), actor.StateSliding
		}
		k = EvolveSlide(k, p, g, dtau)
		state = actor.StateRolling
		t -= dtau
	}

	if state == actor.StateRolling {
		dtau := RollTime(k, p, g)
		if t < dtau {
			return EvolveRoll(k, p, g, t), actor.StateRolling
		}
		k = EvolveRoll(k, p, g, dtau)
		state = actor.StateSpinning
		t -= dtau
	}

	if state == actor.StateSpinning {
		dtau := SpinTime(k, p, g)
		if t < dtau {
			return EvolveSpin(k, p, g, t), actor.StateSpinning
		}
		k = EvolveSpin(k, p, g, dtau)
		state = actor.StateStationary
	}

	return k, state
}

// AirborneTime returns how long a ball launched with vertical speed vz from
// height z takes to fall back to resting height R under gravity. It is a
// utility for jump-shot analysis; the scheduler does not consult it, as the
// vertical degree of freedom is pinned.
func AirborneTime(z, vz, r, g float64) float64 {
	best := math.Inf(1)
	for _, t := range solve.Quadratic(-0.5*g, vz, z-r) {
		if t > 0 && t < best {
			best = t
		}
	}
	return best
}
