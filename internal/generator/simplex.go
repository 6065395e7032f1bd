package generator

import opensimplex "github.com/ojrac/opensimplex-go"

// simplexOctaves sums octaves of a normalized opensimplex noise field,
// matching the weighted-multi-scale pattern other_examples'
// edw0rd21/voxel-game-go uses opensimplex-go for (continentalness/erosion/
// detail scales combined additively).
type simplexOctaves struct {
	noise       opensimplex.Noise
	octaves     int
	persistence float64
	lacunarity  float64
}

func newSimplexOctaves(seed int64, octaves int, persistence, lacunarity float64) simplexOctaves {
	return simplexOctaves{
		noise:       opensimplex.NewNormalized(seed),
		octaves:     octaves,
		persistence: persistence,
		lacunarity:  lacunarity,
	}
}

func (s simplexOctaves) eval3(x, y, z float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < s.octaves; i++ {
		sum += s.noise.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= s.persistence
		frequency *= s.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
