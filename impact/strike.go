package impact

import (
	"math"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/motion"
	"github.com/akmonengine/carom/solve"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactTolerance is the slip speed below which a struck ball is considered
// rolling rather than sliding.
const ContactTolerance = 1e-10

// Strike resolves a cue strike on a ball at rest. v0 is the tip
// speed, phi the azimuth and theta the elevation in radians, and a, b the tip
// offsets in units of the ball radius. The impact force follows Leckie &
// Greenspan; the resulting velocities are computed in a ball-aligned frame
// and rotated into the table frame by phi + 90°.
//
// The returned state is rolling when the post-strike contact-point velocity
// vanishes within tolerance, sliding otherwise.
func Strike(k actor.Kinematics, p actor.BallParams, cueMass, v0, phi, theta, a, b float64) (actor.Kinematics, actor.BallState) {
	a *= p.R
	b *= p.R
	c := math.Sqrt(math.Max(0, p.R*p.R-a*a-b*b))

	sinT, cosT := math.Sincos(theta)
	inertia := p.Inertia()

	numerator := 2 * cueMass * v0
	denominator := 1 + p.M/cueMass +
		5/(2*p.R*p.R)*(a*a+b*b*cosT*cosT+c*c*sinT*sinT-2*b*c*cosT*sinT)
	force := numerator / denominator

	vBall := mgl64.Vec3{0, -force / p.M * cosT, 0}
	wBall := mgl64.Vec3{
		-c*sinT + b*cosT,
		a * sinT,
		-a * cosT,
	}.Mul(force / inertia)

	rot := mgl64.Rotate3DZ(phi + math.Pi/2)
	k.Vel = rot.Mul3x1(vBall)
	k.AngVel = rot.Mul3x1(wBall)

	state := actor.StateSliding
	if motion.RelVelocity(k, p.R).Len() < ContactTolerance {
		state = actor.StateRolling
	}
	return k, state
}

// SweetSpot returns the vertical tip offset b (in units of R) at which a
// center-line strike at the given elevation produces immediate natural roll.
// For a level cue this is the classic b = 2/5·R; elevation shifts it, and the
// no-slip condition becomes transcendental in b, so it is bracketed and
// bisected.
func SweetSpot(p actor.BallParams, cueMass, v0, theta float64) (float64, error) {
	slip := func(b float64) float64 {
		k, _ := Strike(actor.Kinematics{Pos: mgl64.Vec3{0, 0, p.R}}, p, cueMass, v0, 0, theta, 0, b)
		// Signed slip along the direction of travel; positive means the ball
		// drags its contact point, negative means it overspins
		return motion.RelVelocity(k, p.R).X()
	}
	return solve.Bisect(slip, 0, 0.999, 1e-12)
}
