// Package impact implements the instantaneous impulse models that resolve
// discrete events: ball-ball collision, ball-cushion collision and the cue
// strike. Each function maps pre-impact kinematics to post-impact kinematics;
// none of them advance time.
//
// References:
//   - Han: "Dynamics in carom and three cushion billiards" (2005), cushion model
//   - Leckie & Greenspan: "An Event-Based Pool Physics Simulator" (2006), strike
package impact

import (
	"github.com/akmonengine/carom/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func unit(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// BallBall resolves an idealized elastic equal-mass collision: the normal
// velocity components along the line of centers are exchanged, tangential
// components and spin are untouched. Both balls leave the collision sliding,
// since their contact points no longer match their velocities.
func BallBall(k1, k2 actor.Kinematics) (actor.Kinematics, actor.Kinematics) {
	n := unit(k2.Pos.Sub(k1.Pos))
	vn := k1.Vel.Sub(k2.Vel).Dot(n)

	k1.Vel = k1.Vel.Sub(n.Mul(vn))
	k2.Vel = k2.Vel.Add(n.Mul(vn))
	return k1, k2
}
