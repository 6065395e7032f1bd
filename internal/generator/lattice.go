package generator

import "math"

// Deterministic value noise over an integer lattice, hashed rather than
// table-permuted. Ported from the teacher's internal/world/noise.go,
// extended to three dimensions for density-field sampling; kept as the
// Noise variant's internal strategy so the teacher's own hand-rolled
// approach survives as one concrete generator rather than being replaced
// wholesale by opensimplex-go.

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func hash3(x, y, z int64, seed int64) uint64 {
	v := uint64(x) + uint64(y)<<1 + uint64(z)<<2 + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue3D(x, y, z int64, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise3D returns a value in [0,1], trilinearly interpolated between
// the 8 lattice corners surrounding (x, y, z).
func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1

	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)

	v000 := latticeValue3D(int64(x0), int64(y0), int64(z0), seed)
	v100 := latticeValue3D(int64(x1), int64(y0), int64(z0), seed)
	v010 := latticeValue3D(int64(x0), int64(y1), int64(z0), seed)
	v110 := latticeValue3D(int64(x1), int64(y1), int64(z0), seed)
	v001 := latticeValue3D(int64(x0), int64(y0), int64(z1), seed)
	v101 := latticeValue3D(int64(x1), int64(y0), int64(z1), seed)
	v011 := latticeValue3D(int64(x0), int64(y1), int64(z1), seed)
	v111 := latticeValue3D(int64(x1), int64(y1), int64(z1), seed)

	x00 := lerp(v000, v100, fx)
	x10 := lerp(v010, v110, fx)
	x01 := lerp(v001, v101, fx)
	x11 := lerp(v011, v111, fx)

	y0i := lerp(x00, x10, fy)
	y1i := lerp(x01, x11, fy)

	return lerp(y0i, y1i, fz)
}

// octaveNoise3D sums octaves of valueNoise3D, normalized back to [0,1].
func octaveNoise3D(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		v := valueNoise3D(x*frequency, y*frequency, z*frequency, seed+int64(i*131))
		sum += v * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
