package generator

import (
	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// Noise is the single-noise height-field generator: one octave-summed
// lattice noise drives a height value per (x, z) column, matching the
// teacher's internal/world/generator.go HeightAt/PopulateChunk shape.
type Noise struct {
	seed        uint64
	scale       float64
	baseHeight  float64
	amplitude   float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewNoise builds a single-noise Generator seeded from seed, matching the
// teacher's terse seeded-constructor convention.
func NewNoise(seed uint64) Noise {
	return Noise{
		seed:        seed,
		scale:       1.0 / 96.0,
		baseHeight:  64,
		amplitude:   40,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

func (n Noise) Seed() uint64 { return n.seed }

func (n Noise) heightAt(worldX, worldZ int64) int64 {
	h := octaveNoise3D(float64(worldX)*n.scale, 0, float64(worldZ)*n.scale, int64(n.seed), n.octaves, n.persistence, n.lacunarity)
	return int64(n.baseHeight + (h*2-1)*n.amplitude)
}

func (n Noise) Sample(id chunkid.ID) voxel.Block {
	origin, stride := worldCoords(id)
	var b voxel.Block

	for x := 0; x < voxel.Size; x++ {
		worldX := origin[0] + int64(x)*stride
		for z := 0; z < voxel.Size; z++ {
			worldZ := origin[2] + int64(z)*stride
			height := n.heightAt(worldX, worldZ)

			for y := 0; y < voxel.Size; y++ {
				worldY := origin[1] + int64(y)*stride

				var t voxel.Type
				switch {
				case worldY > height:
					t = voxel.Air
				case worldY == height:
					t = voxel.Grass
				case worldY > height-4:
					t = voxel.Dirt
				case worldY <= 0:
					t = voxel.Bedrock
				default:
					t = voxel.Stone
				}
				b.Set(x, y, z, t)
			}
		}
	}
	return b
}
