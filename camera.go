package henhouse

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// CameraMode selects how the rig derives its eye and target.
type CameraMode uint8

const (
	CameraFirstPerson CameraMode = iota // eye at the followed entity, looking along its forward
	CameraThirdPerson                   // eye at a fixed offset, looking at the followed entity
	CameraOverlook                      // eye high above a ground point, looking straight down
)

func (m CameraMode) String() string {
	switch m {
	case CameraFirstPerson:
		return "first-person"
	case CameraThirdPerson:
		return "third-person"
	case CameraOverlook:
		return "overlook"
	}
	return "unknown"
}

// CameraState is the read-only view a Renderer receives with every submission.
type CameraState struct {
	Mode       CameraMode
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// ViewProjection returns Projection * View.
func (c CameraState) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// CameraRig follows an entity and produces a CameraState each frame.
type CameraRig struct {
	Mode CameraMode

	FOV    float32 // degrees
	Near   float32
	Far    float32
	Aspect float32

	LookAhead      float32
	ThirdOffset    mgl32.Vec3
	OverlookHeight float32
	GroundY        float32
	GlideSeconds   float32

	follow   *Entity
	overlook mgl32.Vec3 // eye position in overlook mode
	glide    *Vec3Tween
	previous CameraMode
}

// NewCameraRig creates a first-person rig from cfg with a 4:3 aspect ratio.
func NewCameraRig(cfg CameraConfig, groundY float32) *CameraRig {
	return &CameraRig{
		Mode:           CameraFirstPerson,
		FOV:            cfg.FOV,
		Near:           cfg.Near,
		Far:            cfg.Far,
		Aspect:         4.0 / 3.0,
		LookAhead:      cfg.LookAhead,
		ThirdOffset:    cfg.ThirdOffset,
		OverlookHeight: cfg.OverlookHeight,
		GroundY:        groundY,
		GlideSeconds:   cfg.GlideSeconds,
	}
}

// Follow makes the rig track e.
func (c *CameraRig) Follow(e *Entity) {
	c.follow = e
}

// Unfollow stops tracking.
func (c *CameraRig) Unfollow() {
	c.follow = nil
}

// SetViewport updates the aspect ratio from a viewport size in pixels.
func (c *CameraRig) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ToggleThirdPerson switches between first- and third-person. It has no
// effect in overlook mode.
func (c *CameraRig) ToggleThirdPerson() {
	switch c.Mode {
	case CameraFirstPerson:
		c.Mode = CameraThirdPerson
	case CameraThirdPerson:
		c.Mode = CameraFirstPerson
	}
}

// Overlook switches to overlook mode centred above ground, remembering the
// current mode for Restore.
func (c *CameraRig) Overlook(ground mgl32.Vec3) {
	if c.Mode != CameraOverlook {
		c.previous = c.Mode
	}
	c.Mode = CameraOverlook
	c.overlook = mgl32.Vec3{ground[0], ground[1] + c.OverlookHeight, ground[2]}
	c.glide = nil
}

// GlideTo moves the overlook eye above ground over GlideSeconds.
func (c *CameraRig) GlideTo(ground mgl32.Vec3) {
	to := mgl32.Vec3{ground[0], c.overlook[1], ground[2]}
	if c.GlideSeconds <= 0 {
		c.overlook = to
		c.glide = nil
		return
	}
	c.glide = TweenVec3(&c.overlook, to, c.GlideSeconds, ease.OutQuad)
}

// Restore leaves overlook mode for the mode that was active before it.
func (c *CameraRig) Restore() {
	if c.Mode == CameraOverlook {
		c.Mode = c.previous
	}
	c.glide = nil
}

// Update advances any running glide by dt seconds.
func (c *CameraRig) Update(dt float32) {
	if c.glide != nil {
		c.glide.Update(dt)
		if c.glide.Done {
			c.glide = nil
		}
	}
	if c.follow != nil && c.follow.IsDisposed() {
		c.follow = nil
	}
}

// State computes the camera for the current mode.
func (c *CameraRig) State() CameraState {
	st := CameraState{Mode: c.Mode, Up: AxisY}
	var pos, fwd, up mgl32.Vec3
	if c.follow != nil {
		pos = c.follow.WorldPosition()
		fwd = c.follow.ForwardDir()
		up = c.follow.UpDir()
	} else {
		fwd = mgl32.Vec3{0, 0, -1}
		up = AxisY
	}

	switch c.Mode {
	case CameraFirstPerson:
		st.Position = pos
		st.Target = pos.Add(fwd.Mul(c.LookAhead))
		if up.Len() > 0 {
			st.Up = up
		}
	case CameraThirdPerson:
		st.Position = pos.Add(c.ThirdOffset)
		st.Target = pos
	case CameraOverlook:
		st.Position = c.overlook
		st.Target = mgl32.Vec3{c.overlook[0], c.GroundY, c.overlook[2]}
		st.Up = mgl32.Vec3{0, 0, -1}
	}
	if st.Target.Sub(st.Position).Len() < degenerateEpsilon {
		st.Target = st.Position.Add(fwd)
	}

	st.View = mgl32.LookAtV(st.Position, st.Target, st.Up)
	st.Projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	return st
}
