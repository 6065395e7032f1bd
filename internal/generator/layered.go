package generator

import (
	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// densityField is the narrow capability Layered composes over: a pure
// density function in world-voxel space, positive meaning solid. This is
// how original_source's WhiteNoise/RainDrops variants (server/
// world_gen.rs) and the layered-generator design note in spec.md §4.A
// and §9 compose without a class hierarchy — each weighted term is a
// plain value holding its own noise field.
type densityField interface {
	density(worldX, worldY, worldZ int64) float64
}

// weightedField is one (field, weight) term in a Layered sum.
type weightedField struct {
	field  densityField
	weight float64
}

// Layered sums several weighted density fields and thresholds at zero,
// grounding spec.md's "layered (composed generators summed with
// weights)" variant.
type Layered struct {
	seed   uint64
	terms  []weightedField
	solid  voxel.Type
	filler voxel.Type
}

// NewLayered builds a Layered generator from weighted terms.
func NewLayered(seed uint64, solid, filler voxel.Type, terms ...weightedField) Layered {
	return Layered{seed: seed, terms: terms, solid: solid, filler: filler}
}

func (l Layered) Seed() uint64 { return l.seed }

func (l Layered) density(worldX, worldY, worldZ int64) float64 {
	sum := 0.0
	for _, term := range l.terms {
		sum += term.field.density(worldX, worldY, worldZ) * term.weight
	}
	return sum
}

func (l Layered) Sample(id chunkid.ID) voxel.Block {
	origin, stride := worldCoords(id)
	var b voxel.Block
	for x := 0; x < voxel.Size; x++ {
		wx := origin[0] + int64(x)*stride
		for y := 0; y < voxel.Size; y++ {
			wy := origin[1] + int64(y)*stride
			for z := 0; z < voxel.Size; z++ {
				wz := origin[2] + int64(z)*stride
				if l.density(wx, wy, wz) > 0 {
					if wy <= 0 {
						b.Set(x, y, z, voxel.Bedrock)
					} else {
						b.Set(x, y, z, l.solid)
					}
				} else {
					b.Set(x, y, z, voxel.Air)
				}
			}
		}
	}
	return b
}

// heightGradientField is a densityField whose value falls off linearly
// with altitude above a base height, matching the teacher's
// internal/world/density.go heightGradient term.
type heightGradientField struct {
	baseHeight float64
	strength   float64
}

func (f heightGradientField) density(_, worldY, _ int64) float64 {
	return (f.baseHeight - float64(worldY)) / f.strength
}

// noiseField is a densityField backed by octave-summed opensimplex noise,
// remapped to [-1,1], matching other_examples/edw0rd21's multi-scale
// weighted combination.
type noiseField struct {
	octaves simplexOctaves
	scale   float64
}

func newNoiseField(seed int64, scale float64, octaves int, persistence, lacunarity float64) noiseField {
	return noiseField{octaves: newSimplexOctaves(seed, octaves, persistence, lacunarity), scale: scale}
}

func (f noiseField) density(worldX, worldY, worldZ int64) float64 {
	v := f.octaves.eval3(float64(worldX)*f.scale, float64(worldY)*f.scale, float64(worldZ)*f.scale)
	return v*2 - 1
}
