// Package config holds the core's tunable policy constants behind an
// RWMutex-guarded settings struct, the same package-level-singleton
// pattern as the teacher's internal/config/config.go RenderSettings,
// narrowed to the policy knobs the spec's modules actually consume
// (LOD banding, chunk caps, worker count) rather than render-facing
// toggles like wireframe mode or view bobbing, which stay out of core
// scope.
package config

import "sync"

// Settings holds the policy constants frustum.Select, executor.Pool,
// and level.Level are parameterized by.
type Settings struct {
	mu sync.RWMutex

	renderDistance  float32 // world units
	fullDetailRange float32 // world units; LOD band 0's outer radius
	maxChunks       int
	workerCount     int
	evictionWindow  int // 0 disables eviction
}

var global = &Settings{
	renderDistance:  768,
	fullDetailRange: 64,
	maxChunks:       4096,
	workerCount:     4,
	evictionWindow:  0,
}

// Global returns the process-wide settings singleton, matching the
// teacher's global-RenderSettings convention.
func Global() *Settings { return global }

func (s *Settings) RenderDistance() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renderDistance
}

// SetRenderDistance sets the world-unit radius frustum.Select considers,
// clamped to a sane range the way the teacher clamps render distance in
// chunks.
func (s *Settings) SetRenderDistance(d float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 64 {
		d = 64
	}
	if d > 4096 {
		d = 4096
	}
	s.renderDistance = d
}

func (s *Settings) FullDetailRange() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fullDetailRange
}

func (s *Settings) SetFullDetailRange(r float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r < 32 {
		r = 32
	}
	s.fullDetailRange = r
}

func (s *Settings) MaxChunks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxChunks
}

func (s *Settings) SetMaxChunks(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.maxChunks = n
}

func (s *Settings) WorkerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workerCount
}

func (s *Settings) SetWorkerCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.workerCount = n
}

// EvictionWindow returns the LRU touched-set size level.New takes; 0
// means eviction stays disabled, per the Open Question decision that
// the embedding program must opt in explicitly.
func (s *Settings) EvictionWindow() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evictionWindow
}

func (s *Settings) SetEvictionWindow(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.evictionWindow = n
}
