// Package camera reduces a full render camera to the pos/dir/fov
// surface the core needs to build a frustum.Frustum and a view-
// projection matrix, grounded on the teacher's internal/graphics/
// camera.go with the player-movement concerns that file pulls in via
// internal/player stripped out — free-cam, friction, and max-speed
// logic stay the embedding program's responsibility.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled/internal/frustum"
)

// Camera is the minimal external-facing camera state spec.md §6
// requires: a position, a facing direction, an up vector, and the
// projection parameters needed to build a view-projection matrix.
type Camera struct {
	Pos mgl32.Vec3
	Dir mgl32.Vec3
	Up  mgl32.Vec3
	Fov float32 // radians
}

// NewCamera builds a Camera looking down -Z with a 70 degree field of
// view, matching the teacher's NewCamera default construction idiom.
func NewCamera() Camera {
	return Camera{
		Pos: mgl32.Vec3{0, 0, 0},
		Dir: mgl32.Vec3{0, 0, -1},
		Up:  mgl32.Vec3{0, 1, 0},
		Fov: mgl32.DegToRad(70),
	}
}

// Frustum builds the policy-tagged frustum.Frustum this camera sees
// this frame, given the aspect ratio and the caller's render/LOD/chunk
// cap policy.
func (c Camera) Frustum(aspect, renderDistance, fullDetailRange float32, maxChunks int) frustum.Frustum {
	return frustum.Frustum{
		CamPos:          c.Pos,
		Dir:             c.Dir,
		Up:              c.Up,
		Fov:             c.Fov,
		Aspect:          aspect,
		RenderDistance:  renderDistance,
		FullDetailRange: fullDetailRange,
		MaxChunks:       maxChunks,
	}
}

// ViewProj returns the camera's view-projection matrix, the surface
// spec.md §6 names as the core's sole external render-facing output.
func (c Camera) ViewProj(aspect, renderDistance float32) mgl32.Mat4 {
	proj := mgl32.Perspective(c.Fov, aspect, 0.05, renderDistance+32)
	view := mgl32.LookAtV(c.Pos, c.Pos.Add(c.Dir), c.Up)
	return proj.Mul4(view)
}
