package generator

import (
	"testing"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

func sampleIsDeterministic(t *testing.T, g Generator, id chunkid.ID) {
	t.Helper()
	a := g.Sample(id)
	b := g.Sample(id)
	if a != b {
		t.Errorf("%T.Sample(%v) is not deterministic across calls", g, id)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	g := NewNoise(42)
	sampleIsDeterministic(t, g, chunkid.New(0, [3]int32{3, -1, 7}))
}

func TestNoiseBedrockFloor(t *testing.T) {
	g := NewNoise(1)
	b := g.Sample(chunkid.New(0, [3]int32{0, -1, 0})) // chunk spanning worldY in [-32,0)
	if b.At(0, 0, 0) != voxel.Bedrock {
		t.Errorf("expected Bedrock at worldY=-32, got %v", b.At(0, 0, 0))
	}
}

func TestNoiseDifferentSeedsDiffer(t *testing.T) {
	id := chunkid.New(0, [3]int32{0, 0, 0})
	a := NewNoise(1).Sample(id)
	b := NewNoise(2).Sample(id)
	if a == b {
		t.Error("expected different seeds to produce different terrain (overwhelmingly likely)")
	}
}

func TestLayeredDeterministic(t *testing.T) {
	g := NewLayered(7, voxel.Stone, voxel.Dirt, weightedField{field: heightGradientField{baseHeight: 64, strength: 32}, weight: 1})
	sampleIsDeterministic(t, g, chunkid.New(1, [3]int32{2, 2, 2}))
}

func TestLayeredThresholdsAroundBaseHeight(t *testing.T) {
	g := NewLayered(7, voxel.Stone, voxel.Dirt, weightedField{field: heightGradientField{baseHeight: 16, strength: 32}, weight: 1})
	b := g.Sample(chunkid.New(0, [3]int32{0, 0, 0})) // worldY in [0,32)
	if b.At(0, 0, 0) == voxel.Air {
		t.Error("expected solid material well below base height")
	}
	if b.At(0, voxel.Size-1, 0) != voxel.Air {
		t.Error("expected air well above base height")
	}
}

func TestBiomeDeterministic(t *testing.T) {
	g := NewBiome(99)
	sampleIsDeterministic(t, g, chunkid.New(0, [3]int32{1, 1, 1}))
}

func TestCavesDeterministic(t *testing.T) {
	g := NewCaves(5)
	sampleIsDeterministic(t, g, chunkid.New(0, [3]int32{0, -2, 0}))
}

func TestAllVariantsImplementGenerator(t *testing.T) {
	var _ Generator = NewNoise(0)
	var _ Generator = NewLayered(0, voxel.Stone, voxel.Dirt)
	var _ Generator = NewBiome(0)
	var _ Generator = NewCaves(0)
}
