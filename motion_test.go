package henhouse

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntegrateMotionClampsToMaxSpeed(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Speed = 0.95
	e.Acceleration = 0.1
	e.MaxSpeed = 1

	integrateMotion(e, false)

	assertNear(t, "speed", e.Speed, 1)
	assertVec(t, "position", e.Position, mgl32.Vec3{0, 0, -1})
}

func TestIntegrateMotionNeverNegative(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Speed = 0.01
	e.Acceleration = -0.025

	integrateMotion(e, false)

	if e.Speed != 0 {
		t.Errorf("Speed = %v, want 0", e.Speed)
	}
	assertVec(t, "position", e.Position, mgl32.Vec3{})
}

func TestIntegrateMotionDragStopsAtZero(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Speed = 0.003
	e.Drag = 0.005

	integrateMotion(e, false)
	if e.Speed != 0 {
		t.Errorf("Speed = %v, want 0", e.Speed)
	}

	e.Speed = 0.5
	integrateMotion(e, false)
	assertNear(t, "speed", e.Speed, 0.495)
}

func TestIntegrateMotionStunned(t *testing.T) {
	e := NewEntity("drone", KindPatrol)
	e.Position = mgl32.Vec3{1, 2, 3}
	e.Speed = 0.5
	e.Acceleration = 0.1

	integrateMotion(e, true)

	assertVec(t, "position", e.Position, mgl32.Vec3{1, 2, 3})
	assertNear(t, "speed kept", e.Speed, 0.5)
}

func TestIntegrateMotionStunnedStillClamped(t *testing.T) {
	e := NewEntity("drone", KindPatrol)
	e.MaxSpeed = 0.2
	e.Speed = 0.5

	integrateMotion(e, true)

	assertVec(t, "position", e.Position, mgl32.Vec3{})
	assertNear(t, "speed", e.Speed, 0.2)
}

func TestIntegrateMotionFollowsOrientation(t *testing.T) {
	e := NewEntity("drone", KindPatrol)
	e.Orientation = mgl32.QuatRotate(-math.Pi/2, AxisY)
	e.MaxSpeed = 2
	e.Speed = 2

	integrateMotion(e, false)

	// Yawing (0,0,-1) by -90° about Y faces +X.
	assertVec(t, "position", e.Position, mgl32.Vec3{2, 0, 0})
}

func TestConfinementFloorDropsVertical(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Position = mgl32.Vec3{0, -23, 0}
	e.Confine = &Confinement{FloorY: -23.5}
	e.Pitch(-math.Pi / 4) // nose down
	e.Speed = 1

	integrateMotion(e, false)

	if e.Position[1] != -23 {
		t.Errorf("y = %v, want -23 (vertical motion suppressed)", e.Position[1])
	}
	assertNear(t, "z", e.Position[2], -float32(math.Sqrt2)/2)
}

func TestConfinementAllowsClimbAboveFloor(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Position = mgl32.Vec3{0, -23, 0}
	e.Confine = &Confinement{FloorY: -23.5}
	e.Pitch(math.Pi / 2) // nose up
	e.Speed = 1

	integrateMotion(e, false)
	assertVec(t, "position", e.Position, mgl32.Vec3{0, -22, 0})
}

func TestConfinementDomeCancelsMotion(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Position = mgl32.Vec3{0, 0, -9.5}
	e.Confine = &Confinement{FloorY: -100, Center: mgl32.Vec3{}, Radius: 10}
	e.Speed = 1

	integrateMotion(e, false)
	assertVec(t, "position", e.Position, mgl32.Vec3{0, 0, -9.5})
	assertNear(t, "speed kept", e.Speed, 1)
}

func TestVelocity(t *testing.T) {
	e := NewEntity("bird", KindPlayer)
	e.Speed = 0.5
	assertVec(t, "velocity", e.Velocity(), mgl32.Vec3{0, 0, -0.5})
}
