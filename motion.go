package henhouse

import "github.com/go-gl/mathgl/mgl32"

// integrateMotion advances speed and position by one tick.
//
// Speed gains Acceleration, is clamped to [0, MaxSpeed], then loses Drag
// without crossing zero. While stunned the entity keeps its clamped speed but
// does not move. Displacement is Speed along ForwardDir, limited by Confine if set.
func integrateMotion(e *Entity, stunned bool) {
	if stunned {
		e.Speed = mgl32.Clamp(e.Speed, 0, e.MaxSpeed)
		return
	}
	e.Speed = mgl32.Clamp(e.Speed+e.Acceleration, 0, e.MaxSpeed)
	if e.Drag > 0 {
		if e.Speed > e.Drag {
			e.Speed -= e.Drag
		} else {
			e.Speed = 0
		}
	}
	if e.Speed == 0 {
		return
	}
	v := e.ForwardDir().Mul(e.Speed)
	if e.Confine != nil {
		v = e.Confine.limit(e.Position, v)
	}
	e.Position = e.Position.Add(v)
}

// limit returns the velocity that keeps pos+v inside the confinement.
func (c *Confinement) limit(pos, v mgl32.Vec3) mgl32.Vec3 {
	next := pos.Add(v)
	if next[1] <= c.FloorY {
		v[1] = 0
	}
	if c.Radius > 0 && next.Sub(c.Center).Len() > c.Radius {
		return mgl32.Vec3{}
	}
	return v
}

// Velocity returns the displacement the entity would make next tick at its
// current speed, ignoring acceleration and confinement.
func (e *Entity) Velocity() mgl32.Vec3 {
	return e.ForwardDir().Mul(e.Speed)
}
