package generator

import (
	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// Caves is a dual-noise generator: one noise field carves solid/air, a
// second chooses between Stone and CrackedStone once a voxel is solid.
// Grounded on original_source's server/world_gen.rs OpenCaves variant.
type Caves struct {
	seed      uint64
	shape     simplexOctaves
	material  simplexOctaves
	scale     float64
	threshold float64
}

// NewCaves builds a cave-carving generator seeded from seed.
func NewCaves(seed uint64) Caves {
	return Caves{
		seed:      seed,
		shape:     newSimplexOctaves(int64(seed), 3, 0.5, 2.0),
		material:  newSimplexOctaves(int64(seed)+7919, 1, 0.5, 2.0),
		scale:     1.0 / 48.0,
		threshold: 0.55,
	}
}

func (c Caves) Seed() uint64 { return c.seed }

func (c Caves) Sample(id chunkid.ID) voxel.Block {
	origin, stride := worldCoords(id)
	var b voxel.Block
	for x := 0; x < voxel.Size; x++ {
		wx := origin[0] + int64(x)*stride
		for y := 0; y < voxel.Size; y++ {
			wy := origin[1] + int64(y)*stride
			for z := 0; z < voxel.Size; z++ {
				wz := origin[2] + int64(z)*stride

				v := c.shape.eval3(float64(wx)*c.scale, float64(wy)*c.scale, float64(wz)*c.scale)
				if v < c.threshold {
					b.Set(x, y, z, voxel.Air)
					continue
				}

				m := c.material.eval3(float64(wx)*c.scale*4, float64(wy)*c.scale*4, float64(wz)*c.scale*4)
				if m > 0.7 {
					b.Set(x, y, z, voxel.CrackedStone)
				} else {
					b.Set(x, y, z, voxel.Stone)
				}
			}
		}
	}
	return b
}
