package impact

import (
	"math"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/motion"
	"github.com/go-gl/mathgl/mgl64"
)

// CushionRestitution is the empirical restitution of the cushion nose as a
// function of the incoming normal speed, floored at 0.40 (Han 2005).
func CushionRestitution(normalSpeed float64) float64 {
	return math.Max(0.40, 0.50+0.257*normalSpeed-0.044*normalSpeed*normalSpeed)
}

// CushionFriction is the empirical ball-cushion friction as a function of the
// incidence angle in radians, folded to [0, π] (Han 2005).
func CushionFriction(incidence float64) float64 {
	if incidence > math.Pi {
		incidence = 2*math.Pi - incidence
	}
	return math.Max(0, 0.471-0.241*incidence)
}

// Cushion resolves a ball-cushion collision with Han's impact model. The
// kinematics are rotated into a frame where the rail lies along y and the
// ball approaches along +x; there the cushion applies an impulse whose form
// depends on whether the contact sticks (PzS ≤ PzE) or slides forward, and
// the result is rotated back. The ball leaves the cushion sliding.
//
// The cushion nose touches the ball at height c.Height above the cloth, which
// sits above the ball center for standard rails and gives the impulse its
// downward-pinching character.
func Cushion(k actor.Kinematics, p actor.BallParams, c actor.Cushion) actor.Kinematics {
	// +x toward the rail
	psi := motion.Heading(c.Normal.Mul(-1))
	toRail := mgl64.Rotate3DZ(-psi)
	toTable := mgl64.Rotate3DZ(psi)

	v := toRail.Mul3x1(k.Vel)
	w := toRail.Mul3x1(k.AngVel)

	phi := motion.Heading(v)
	e := CushionRestitution(v.X())
	mu := CushionFriction(phi)

	// Angle of the contact point above the ball center
	sinA := c.Height/p.R - 1
	cosA := math.Sqrt(math.Max(0, 1-sinA*sinA))

	// Surface velocities at the contact point (Han eqs. 14)
	sx := v.X()*sinA + p.R*w.Y()
	sy := -v.Y() - p.R*w.Z()*cosA + p.R*w.X()*sinA
	cN := v.X() * cosA

	inertia := p.Inertia()
	bigA := 7 / (2 * p.M)
	bigB := 1 / p.M

	// Characteristic impulse magnitudes (Han eqs. 16, 17, 20)
	pzE := (1 + e) * cN / bigB
	pzS := math.Hypot(sx, sy) / bigA

	var px, py, pz float64
	if pzS <= pzE {
		// Contact sticks before compression ends
		px = -sx/bigA*sinA - (1+e)*cN/bigB*cosA
		py = sy / bigA
		pz = sx/bigA*cosA - (1+e)*cN/bigB*sinA
	} else {
		// Forward sliding throughout the impact
		px = -mu*(1+e)*cN/bigB*math.Cos(phi)*sinA - (1+e)*cN/bigB*cosA
		py = mu * (1 + e) * cN / bigB * math.Sin(phi)
		pz = mu*(1+e)*cN/bigB*math.Cos(phi)*cosA - (1+e)*cN/bigB*sinA
	}

	v[0] += px / p.M
	v[1] += py / p.M

	w[0] += -p.R / inertia * py * sinA
	w[1] += p.R / inertia * (px*sinA - pz*cosA)
	w[2] += p.R / inertia * py * cosA

	out := k
	out.Vel = toTable.Mul3x1(v)
	out.Vel[2] = 0
	out.AngVel = toTable.Mul3x1(w)
	return out
}
