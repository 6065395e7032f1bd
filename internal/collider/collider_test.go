package collider

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// solidFloor is solid for every voxel with y >= 10, air elsewhere: a
// flat ground plane below the mover, under the +Y-is-down convention
// (increasing Y is "down", so the ground sits at large Y).
func solidFloor(_, y, _ int32) bool {
	return y >= 10
}

func solidNone(_, _, _ int32) bool {
	return false
}

func TestSweepNoObstacleMovesFullDelta(t *testing.T) {
	pos := mgl32.Vec3{0, 10, 0}
	delta := mgl32.Vec3{1, 0, 0}
	newPos, _, hit := Sweep(solidNone, pos, PlayerHalfExtents, delta)
	if hit {
		t.Error("expected no contact in an empty world")
	}
	want := pos.Add(delta)
	if newPos.Sub(want).Len() > 1e-3 {
		t.Errorf("Sweep() = %v, want %v", newPos, want)
	}
}

func TestSweepStopsAtGround(t *testing.T) {
	// Standing just above the ground surface (y=10), falling toward it
	// by moving +Y, per the +Y-is-down convention.
	pos := mgl32.Vec3{0.5, 10 - PlayerHalfExtents.Y() - 0.01, 0.5}
	delta := mgl32.Vec3{0, 2, 0}

	newPos, normal, hit := Sweep(solidFloor, pos, PlayerHalfExtents, delta)
	if !hit {
		t.Fatal("expected a ground contact")
	}
	if !IsGround(normal) {
		t.Errorf("expected IsGround(normal) to be true, normal=%v", normal)
	}
	// The AABB's leading (+Y) face should not have penetrated the ground.
	if newPos.Y()+PlayerHalfExtents.Y() > 10+1e-2 {
		t.Errorf("resolved position %v penetrates the ground at y=10", newPos)
	}
}

func TestSweepSubstepsLargeDelta(t *testing.T) {
	pos := mgl32.Vec3{0, 10, 0}
	delta := mgl32.Vec3{5, 0, 0} // exceeds one voxel width; must subdivide internally
	newPos, _, hit := Sweep(solidNone, pos, PlayerHalfExtents, delta)
	if hit {
		t.Error("expected no contact in an empty world")
	}
	want := pos.Add(delta)
	if newPos.Sub(want).Len() > 1e-2 {
		t.Errorf("Sweep() with large delta = %v, want close to %v", newPos, want)
	}
}

func TestResolvePenetrationPushesOut(t *testing.T) {
	// Positioned so the AABB already overlaps the ground.
	pos := mgl32.Vec3{0.5, 10.5, 0.5}
	resolved, normal, penetrating := resolvePenetration(solidFloor, pos, PlayerHalfExtents)
	if !penetrating {
		t.Fatal("expected resolvePenetration to report an initial overlap")
	}
	if overlapsSolid(solidFloor, resolved, PlayerHalfExtents) {
		t.Error("expected resolvePenetration to find a non-overlapping position")
	}
	if normal == (mgl32.Vec3{}) {
		t.Error("expected a non-zero separation normal")
	}
}

func TestSweepReportsTimeZeroSeparationWhenAlreadyOverlapping(t *testing.T) {
	// Already overlapping the ground at the start of the sweep.
	pos := mgl32.Vec3{0.5, 10.5, 0.5}
	newPos, normal, hit := Sweep(solidFloor, pos, PlayerHalfExtents, mgl32.Vec3{1, 0, 0})
	if !hit {
		t.Fatal("expected Sweep to report a contact for an already-overlapping AABB")
	}
	if overlapsSolid(solidFloor, newPos, PlayerHalfExtents) {
		t.Error("expected Sweep to resolve the overlap before reporting")
	}
	if normal == (mgl32.Vec3{}) {
		t.Error("expected a non-zero separation normal")
	}
}

func TestIsGround(t *testing.T) {
	if !IsGround(mgl32.Vec3{0, -1, 0}) {
		t.Error("normal pointing in -Y should count as ground")
	}
	if IsGround(mgl32.Vec3{0, 1, 0}) {
		t.Error("normal pointing in +Y should not count as ground")
	}
	if IsGround(mgl32.Vec3{1, 0, 0}) {
		t.Error("a side normal should not count as ground")
	}
}
