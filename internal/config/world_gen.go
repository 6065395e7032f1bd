package config

import "sync"

// GeneratorKind selects which internal/generator.Generator variant
// cmd/voxeled builds, adapted from the teacher's authentic-vs-standard
// generator toggle (internal/config/world_gen.go) to this module's four
// Generator variants instead of a single bool.
type GeneratorKind int

const (
	GeneratorNoise GeneratorKind = iota
	GeneratorLayered
	GeneratorBiome
	GeneratorCaves
)

// WorldGenSettings holds the world-generation policy knobs, narrowed
// from the teacher's useAuthenticGen/seaLevel/caves trio to the
// generator kind cmd/voxeled selects plus an advisory sea level.
type WorldGenSettings struct {
	mu       sync.RWMutex
	kind     GeneratorKind
	seaLevel int64
}

var globalWorldGen = &WorldGenSettings{
	kind:     GeneratorBiome,
	seaLevel: 63,
}

// WorldGen returns the process-wide world-generation settings singleton.
func WorldGen() *WorldGenSettings { return globalWorldGen }

func (w *WorldGenSettings) Kind() GeneratorKind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.kind
}

func (w *WorldGenSettings) SetKind(k GeneratorKind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.kind = k
}

// SeaLevel is advisory world-voxel Y; no generator variant in this
// module reads it directly yet, since none model standing water. Kept
// as a policy knob rather than dropped, so an embedding program adding
// a fluid layer later has a place to read it from.
func (w *WorldGenSettings) SeaLevel() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.seaLevel
}

func (w *WorldGenSettings) SetSeaLevel(level int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seaLevel = level
}
