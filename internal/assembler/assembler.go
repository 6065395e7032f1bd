// Package assembler turns a frame's frustum-selected chunk ids into the
// six direction-keyed face streams a renderer consumes, substituting a
// coarser ancestor's mesh when a selected id's own mesh isn't Done yet.
// Grounded on the teacher's internal/graphics/renderables/blocks/
// meshing.go per-chunk-buffer assembly loop, generalized to the spec's
// LOD-substitution rule (original_source's server/frustum.rs walks the
// same ParentLOD chain when a requested region has no ready chunk).
package assembler

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/level"
	"github.com/mikatschuh/voxeled/internal/mesher"
)

// Streams holds the six direction-keyed face lists assembled for one
// frame, ready for a renderer to turn into per-direction instance
// buffers.
type Streams [int(mesher.NumDirections)][]mesher.Face

// outwardNormal is the unit outward normal of a chunk's face in the
// given direction, indexed the same way mesher.Direction is.
var outwardNormal = [int(mesher.NumDirections)]mgl32.Vec3{
	mesher.NegX: {-1, 0, 0},
	mesher.PosX: {1, 0, 0},
	mesher.NegY: {0, -1, 0},
	mesher.PosY: {0, 1, 0},
	mesher.NegZ: {0, 0, -1},
	mesher.PosZ: {0, 0, 1},
}

// Assemble walks ids in order and appends each one's Done mesh into the
// returned Streams, at chunk granularity culling directions whose
// outward normal points toward camPos (back-face culling, per spec: only
// directions oriented away from or tangent to the camera are emitted).
// When a selected id's mesh isn't Done, it walks ParentLOD ancestors (up
// to chunkid.MaxLOD) looking for a Done substitute, so a frame never
// shows a hole while finer detail streams in. An id with no Done mesh
// anywhere up its ancestor chain contributes nothing this frame.
func Assemble(lvl *level.Level, ids []chunkid.ID, camPos mgl32.Vec3) Streams {
	var out Streams
	seen := make(map[chunkid.ID]bool, len(ids))

	for _, id := range ids {
		chunk, faces, ok := readyMesh(lvl, id)
		if !ok {
			continue
		}
		if seen[chunk] {
			continue
		}
		seen[chunk] = true

		toCamera := camPos.Sub(chunkCenter(chunk))
		for dir := range out {
			if outwardNormal[dir].Dot(toCamera) > 0 {
				continue
			}
			out[dir] = append(out[dir], faces[dir]...)
		}
	}
	return out
}

// chunkCenter returns id's region center in world units.
func chunkCenter(id chunkid.ID) mgl32.Vec3 {
	min := id.WorldMin()
	half := float32(id.WorldSize()) / 2
	return mgl32.Vec3{float32(min[0]) + half, float32(min[1]) + half, float32(min[2]) + half}
}

// readyMesh returns the nearest ancestor of id (id itself included)
// whose mesh has been published, walking coarser LODs until one is
// Done or chunkid.MaxLOD is reached.
func readyMesh(lvl *level.Level, id chunkid.ID) (chunkid.ID, [int(mesher.NumDirections)][]mesher.Face, bool) {
	cur := id
	for {
		if c, ok := lvl.Get(cur); ok && c.MeshState() == level.Done {
			return cur, c.Mesh(), true
		}
		if cur.LOD >= chunkid.MaxLOD {
			return cur, [int(mesher.NumDirections)][]mesher.Face{}, false
		}
		cur = cur.ParentLOD()
	}
}
