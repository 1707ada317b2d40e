package preview

import "github.com/go-gl/mathgl/mgl32"

// Project maps world point p to pixel coordinates on a width x height screen
// through the view-projection vp. w is the clip-space depth, used to scale
// sprites with distance. ok is false for points behind the camera or outside
// the near/far range.
func Project(vp mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y, w float32, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	w = clip.W()
	if w <= 0 {
		return 0, 0, w, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, w, false
	}
	x = (ndc.X() + 1) / 2 * float32(width)
	y = (1 - ndc.Y()) / 2 * float32(height)
	return x, y, w, true
}
