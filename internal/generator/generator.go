// Package generator provides deterministic, pure functions from a
// chunkid.ID to a voxel.Block. Every variant here is a plain value
// implementing the same narrow Generator capability — no polymorphic
// class hierarchy, per the composable-generator design the teacher's
// internal/world/generator.go and bio_generator.go, and
// original_source's server/world_gen.rs (MountainsAndValleys, WhiteNoise,
// RainDrops, OpenCaves), both converge on.
package generator

import (
	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// Generator is the capability every world-generation strategy implements:
// sample a chunk deterministically, and report the seed it was built from.
type Generator interface {
	Sample(id chunkid.ID) voxel.Block
	Seed() uint64
}

// worldCoords returns the world-voxel origin of id and the coarse-cell
// stride to sample at (1 at lod 0; 2^lod above that). At lod>0 a
// generator samples one representative value per coarse cell; air at a
// coarse cell implies air for every native cell beneath it.
func worldCoords(id chunkid.ID) (origin [3]int64, stride int64) {
	origin = id.WorldMin()
	stride = int64(1) << id.LOD
	return
}
