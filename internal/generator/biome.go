package generator

import (
	"math"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// biomeParams mirrors the teacher's Biome struct (internal/world/
// biome.go), stripped of block-type fields the Biome generator below
// decides for itself from height rather than per-biome top/filler
// blocks.
type biomeParams struct {
	minHeight, maxHeight float64
}

var (
	biomeOcean     = biomeParams{minHeight: -1.0, maxHeight: 0.1}
	biomePlains    = biomeParams{minHeight: 0.1, maxHeight: 0.2}
	biomeHills     = biomeParams{minHeight: 0.3, maxHeight: 1.5}
	biomeMountains = biomeParams{minHeight: 1.0, maxHeight: 1.0}
)

// Biome is the biome-mixing generator: it blends neighboring biomes'
// height/scale parameters with a parabolic kernel before thresholding a
// density field, grounded on the teacher's internal/world/
// bio_generator.go BioGenerator and internal/world/biome.go
// GetBiomeForCoords.
type Biome struct {
	seed        uint64
	biomeNoise  simplexOctaves
	fieldNoise  simplexOctaves
	baseSize    float64
	stretchY    float64
	parabolic   [25]float64
}

// NewBiome builds a biome-mixing generator seeded from seed.
func NewBiome(seed uint64) Biome {
	g := Biome{
		seed:       seed,
		biomeNoise: newSimplexOctaves(int64(seed), 2, 0.5, 2.0),
		fieldNoise: newSimplexOctaves(int64(seed)+1, 4, 0.5, 2.0),
		baseSize:   8.5,
		stretchY:   12.0,
	}
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			g.parabolic[(i+2)+(j+2)*5] = 10.0 / math.Sqrt(float64(i*i+j*j)+0.2)
		}
	}
	return g
}

func (g Biome) Seed() uint64 { return g.seed }

func (g Biome) biomeAt(x, z float64) biomeParams {
	val := g.biomeNoise.eval3(x/400.0, z/400.0, 0)
	switch {
	case val < 0.35:
		return biomeOcean
	case val < 0.6:
		return biomePlains
	case val < 0.8:
		return biomeHills
	default:
		return biomeMountains
	}
}

func (g Biome) density(worldX, worldY, worldZ int64) float64 {
	x, y, z := float64(worldX), float64(worldY), float64(worldZ)

	var avgScale, avgDepth, totalWeight float64
	center := g.biomeAt(x, z)

	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			b := g.biomeAt(x+float64(i*16), z+float64(j*16))
			depth := b.minHeight
			scale := b.maxHeight

			weight := g.parabolic[(i+2)+(j+2)*5] / (depth + 2.0)
			if b.minHeight > center.minHeight {
				weight /= 2.0
			}

			avgScale += scale * weight
			avgDepth += depth * weight
			totalWeight += weight
		}
	}
	avgScale /= totalWeight
	avgDepth /= totalWeight
	avgScale = avgScale*0.9 + 0.1
	avgDepth = (avgDepth*4.0 - 1.0) / 8.0

	densityOffset := g.baseSize + avgDepth*4.0
	scaleFactor := (g.stretchY * 128.0 / 256.0) / avgScale
	heightDensity := (y/8.0 - densityOffset) * scaleFactor

	field := g.fieldNoise.eval3(x*0.01, y*0.01, z*0.01)*2 - 1

	if y > 250 {
		return -1.0
	}
	if y < 1 {
		return 10.0
	}
	return field - heightDensity
}

func (g Biome) Sample(id chunkid.ID) voxel.Block {
	origin, stride := worldCoords(id)
	var b voxel.Block
	for x := 0; x < voxel.Size; x++ {
		wx := origin[0] + int64(x)*stride
		for z := 0; z < voxel.Size; z++ {
			wz := origin[2] + int64(z)*stride
			fillerRemaining := -1
			for y := voxel.Size - 1; y >= 0; y-- {
				wy := origin[1] + int64(y)*stride
				d := g.density(wx, wy, wz)
				if d > 0 {
					if wy <= 0 {
						b.Set(x, y, z, voxel.Bedrock)
						continue
					}
					if fillerRemaining == -1 {
						fillerRemaining = 3
						b.Set(x, y, z, voxel.Grass)
					} else if fillerRemaining > 0 {
						fillerRemaining--
						b.Set(x, y, z, voxel.Dirt)
					} else {
						b.Set(x, y, z, voxel.Stone)
					}
				} else {
					fillerRemaining = -1
					b.Set(x, y, z, voxel.Air)
				}
			}
		}
	}
	return b
}
