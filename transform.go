package henhouse

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// degenerateEpsilon is the length below which a direction is treated as zero.
const degenerateEpsilon = 1e-6

// localTransform computes the entity's matrix relative to its parent.
//
// Composition order:
//
//	Translate(Position) * Rotate(Orientation) * Translate(-RotationOrigin) * Scale(Scale)
//
// Entities with a fixed transform return it unchanged.
func localTransform(e *Entity) mgl32.Mat4 {
	if e.fixed {
		return e.fixedTransform
	}
	t := mgl32.Translate3D(e.Position[0], e.Position[1], e.Position[2])
	r := e.Orientation.Mat4()
	o := mgl32.Translate3D(-e.RotationOrigin[0], -e.RotationOrigin[1], -e.RotationOrigin[2])
	s := mgl32.Scale3D(e.Scale[0], e.Scale[1], e.Scale[2])
	return t.Mul4(r).Mul4(o).Mul4(s)
}

// composeWorld stores parent * local on e. parent must already hold this
// tick's value; callers guarantee that by composing top-down.
func composeWorld(e *Entity, parent mgl32.Mat4) {
	e.worldTransform = parent.Mul4(localTransform(e))
}

// updateWorldTransforms recomposes e and its whole subtree without advancing
// motion. Used after structural edits and before the first tick.
func updateWorldTransforms(e *Entity, parent mgl32.Mat4) {
	composeWorld(e, parent)
	for _, c := range e.children {
		updateWorldTransforms(c, e.worldTransform)
	}
}

// LocalTransform returns the entity's current parent-relative matrix.
func (e *Entity) LocalTransform() mgl32.Mat4 {
	return localTransform(e)
}

// WorldTransform returns the matrix composed during the most recent tick.
func (e *Entity) WorldTransform() mgl32.Mat4 {
	return e.worldTransform
}

// WorldPosition returns the entity's position in world space. Roots report
// their pose position directly, or the translation of their fixed transform;
// children read the translation column of the last composed world matrix.
func (e *Entity) WorldPosition() mgl32.Vec3 {
	if e.Parent == nil {
		if e.fixed {
			return e.fixedTransform.Col(3).Vec3()
		}
		return e.Position
	}
	return e.worldTransform.Col(3).Vec3()
}

// SetFixedTransform makes the entity use m as its local matrix instead of its
// pose fields. Pose integration is skipped; hierarchy composition still applies.
func (e *Entity) SetFixedTransform(m mgl32.Mat4) {
	e.fixed = true
	e.fixedTransform = m
}

// ClearFixedTransform returns the entity to pose-driven composition.
func (e *Entity) ClearFixedTransform() {
	e.fixed = false
}

// HasFixedTransform reports whether a fixed local matrix is in use.
func (e *Entity) HasFixedTransform() bool {
	return e.fixed
}

// --- Pose operations ---

// SetPosition sets the entity's local position.
func (e *Entity) SetPosition(p mgl32.Vec3) {
	e.Position = p
}

// Translate offsets the entity's local position.
func (e *Entity) Translate(d mgl32.Vec3) {
	e.Position = e.Position.Add(d)
}

// SetOrientation replaces the orientation, normalized.
func (e *Entity) SetOrientation(q mgl32.Quat) {
	e.Orientation = q.Normalize()
}

// Rotate post-multiplies the orientation by q (a rotation in the entity's own
// frame) and re-normalizes.
func (e *Entity) Rotate(q mgl32.Quat) {
	e.Orientation = e.Orientation.Mul(q).Normalize()
}

// RotateWorld pre-multiplies the orientation by q (a rotation in the parent
// frame) and re-normalizes.
func (e *Entity) RotateWorld(q mgl32.Quat) {
	e.Orientation = q.Mul(e.Orientation).Normalize()
}

// SetScale replaces the scale vector.
func (e *Entity) SetScale(s mgl32.Vec3) {
	e.Scale = s
}

// ScaleBy multiplies the scale component-wise.
func (e *Entity) ScaleBy(s mgl32.Vec3) {
	e.Scale = mgl32.Vec3{e.Scale[0] * s[0], e.Scale[1] * s[1], e.Scale[2] * s[2]}
}

// SetOrigin sets the pivot that rotation and scale are applied around.
func (e *Entity) SetOrigin(o mgl32.Vec3) {
	e.RotationOrigin = o
}

// Pitch rotates about the entity's side axis.
func (e *Entity) Pitch(radians float32) {
	e.Rotate(mgl32.QuatRotate(radians, e.Side))
}

// Yaw rotates about the entity's up axis.
func (e *Entity) Yaw(radians float32) {
	e.Rotate(mgl32.QuatRotate(radians, e.Up))
}

// Roll rotates about the entity's forward axis.
func (e *Entity) Roll(radians float32) {
	e.Rotate(mgl32.QuatRotate(radians, e.Forward))
}

// ForwardDir returns Forward rotated by the orientation (parent frame).
func (e *Entity) ForwardDir() mgl32.Vec3 {
	return safeNormalize(e.Orientation.Rotate(e.Forward))
}

// SideDir returns Side rotated by the orientation (parent frame).
func (e *Entity) SideDir() mgl32.Vec3 {
	return safeNormalize(e.Orientation.Rotate(e.Side))
}

// UpDir returns Up rotated by the orientation (parent frame).
func (e *Entity) UpDir() mgl32.Vec3 {
	return safeNormalize(e.Orientation.Rotate(e.Up))
}

// --- Turning ---

// TurnAngle returns the angle in degrees that turns a onto b about +Y. Both
// vectors are projected onto the horizontal plane. The result is the shorter
// rotation; its sign comes from the 2D cross product. Zero-length input yields
// 0 and anti-parallel input yields +180.
func TurnAngle(a, b mgl32.Vec3) float32 {
	a = horizontal(a)
	b = horizontal(b)
	la, lb := a.Len(), b.Len()
	if la < degenerateEpsilon || lb < degenerateEpsilon {
		return 0
	}
	c := mgl32.Clamp(a.Dot(b)/(la*lb), -1, 1)
	deg := mgl32.RadToDeg(float32(math.Acos(float64(c))))
	if a[2]*b[0]-a[0]*b[2] < 0 {
		deg = -deg
	}
	return deg
}

// FaceToward yaws the entity about the world Y axis so its forward direction
// points at target (horizontally). Returns the applied angle in degrees.
func (e *Entity) FaceToward(target mgl32.Vec3) float32 {
	deg := TurnAngle(e.ForwardDir(), target.Sub(e.WorldPosition()))
	if deg != 0 {
		e.RotateWorld(mgl32.QuatRotate(mgl32.DegToRad(deg), AxisY))
	}
	return deg
}

// PointAt sets the orientation so ForwardDir points at target in 3D. A target
// at the entity's own position leaves the orientation unchanged.
func (e *Entity) PointAt(target mgl32.Vec3) {
	dir := safeNormalize(target.Sub(e.WorldPosition()))
	fwd := safeNormalize(e.Forward)
	if dir.Len() == 0 || fwd.Len() == 0 {
		return
	}
	e.SetOrientation(mgl32.QuatBetweenVectors(fwd, dir))
}

// safeNormalize returns v normalized, or the zero vector if v is degenerate.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < degenerateEpsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
