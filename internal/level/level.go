// Package level owns the chunk registry: a concurrent map from
// chunkid.ID to chunk slots, mediating the Missing->InFlight->Done state
// machine each slot's voxel and mesh data move through. Generalizes the
// teacher's internal/world/chunk_store.go (single RWMutex + map) and
// internal/world/chunk_streamer.go (pending-set coalescing) toward the
// spec's per-entry CAS-based publication model, which the teacher never
// implements anywhere.
package level

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/mesher"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// State is a chunk payload's lifecycle stage. Transitions run
// Missing -> InFlight -> Done, and Done never regresses; the one step
// back is Reset's InFlight -> Missing.
type State uint32

const (
	Missing State = iota
	InFlight
	Done
)

// Which selects one of a Chunk's two independent state machines.
type Which int

const (
	VoxelState Which = iota
	MeshState
)

// Chunk is the slot value the registry owns. Payload fields are written
// only by the single worker that won the InFlight transition, and are
// safe to read by any goroutine only after observing the corresponding
// state as Done — the atomic Store/Load pair below is the release/
// acquire edge spec.md §5 requires.
type Chunk struct {
	voxelState atomic.Uint32
	meshState  atomic.Uint32

	mu    sync.RWMutex
	voxel voxel.Block
	mesh  [int(mesher.NumDirections)][]mesher.Face
}

// VoxelState returns the chunk's current voxel lifecycle stage.
func (c *Chunk) VoxelState() State { return State(c.voxelState.Load()) }

// MeshState returns the chunk's current mesh lifecycle stage.
func (c *Chunk) MeshState() State { return State(c.meshState.Load()) }

// Voxel returns the published voxel block. Callers must only call this
// after observing VoxelState() == Done.
func (c *Chunk) Voxel() voxel.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voxel
}

// Mesh returns the six published direction-keyed face lists. Callers
// must only call this after observing MeshState() == Done.
func (c *Chunk) Mesh() [int(mesher.NumDirections)][]mesher.Face {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mesh
}

const shardCount = 64

type shard struct {
	mu     sync.RWMutex
	chunks map[chunkid.ID]*Chunk
}

// Level is the chunk registry: a sharded concurrent map with an optional
// LRU-backed eviction policy.
type Level struct {
	shards [shardCount]*shard

	evictEnabled bool
	touched      *lru.Cache[chunkid.ID, struct{}]
}

// New builds an empty Level. evictionWindow is the number of recently
// touched chunks the optional eviction cache remembers; pass 0 to
// disable eviction entirely and retain chunks indefinitely (spec.md §9
// permits either policy; this module defaults to disabled and lets the
// embedding program opt in, per the Open Question decision in
// SPEC_FULL.md).
func New(evictionWindow int) *Level {
	l := &Level{}
	for i := range l.shards {
		l.shards[i] = &shard{chunks: make(map[chunkid.ID]*Chunk)}
	}
	if evictionWindow > 0 {
		cache, _ := lru.New[chunkid.ID, struct{}](evictionWindow)
		l.touched = cache
		l.evictEnabled = true
	}
	return l
}

func (l *Level) shardFor(id chunkid.ID) *shard {
	h := fnv1a(id)
	return l.shards[h&(shardCount-1)]
}

func fnv1a(id chunkid.ID) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	mix := func(v uint32) {
		for i := 0; i < 4; i++ {
			h ^= uint64(byte(v >> (8 * i)))
			h *= prime
		}
	}
	h ^= uint64(id.LOD)
	h *= prime
	mix(uint32(id.Pos[0]))
	mix(uint32(id.Pos[1]))
	mix(uint32(id.Pos[2]))
	return h
}

// chunkOp looks up id, creating an empty Missing slot if absent, and
// applies f to it after the shard lock has been released. No lock is
// held while f runs; f does its own synchronization (a CAS on a state
// field, or the chunk's mutex for payload writes). TryBegin and the
// Publish operations are built on it; Get, Reset, NeighborSolidity and
// EvictOutsideRadius read the shard maps directly and never create a
// slot.
func (l *Level) chunkOp(id chunkid.ID, f func(*Chunk)) *Chunk {
	s := l.shardFor(id)

	s.mu.RLock()
	c, ok := s.chunks[id]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		c, ok = s.chunks[id]
		if !ok {
			c = &Chunk{}
			s.chunks[id] = c
		}
		s.mu.Unlock()
	}

	if l.evictEnabled {
		l.touched.Add(id, struct{}{})
	}

	if f != nil {
		f(c)
	}
	return c
}

// Get returns the chunk at id without creating a slot, and whether it
// exists.
func (l *Level) Get(id chunkid.ID) (*Chunk, bool) {
	s := l.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[id]
	return c, ok
}

// TryBegin compare-and-swaps which's state from Missing to InFlight,
// creating the slot if needed. Returns true only for the one caller that
// won the race.
func (l *Level) TryBegin(id chunkid.ID, which Which) bool {
	var won bool
	l.chunkOp(id, func(c *Chunk) {
		state := c.stateField(which)
		won = state.CompareAndSwap(uint32(Missing), uint32(InFlight))
	})
	return won
}

// Reset drops an InFlight slot back to Missing. Used by the executor's
// worker-panic recovery path so a panicking task never leaves a slot
// permanently stuck InFlight, and by a mesh job that finds its chunk's
// voxel payload not Done.
func (l *Level) Reset(id chunkid.ID, which Which) {
	if c, ok := l.Get(id); ok {
		c.stateField(which).CompareAndSwap(uint32(InFlight), uint32(Missing))
	}
}

func (c *Chunk) stateField(which Which) *atomic.Uint32 {
	if which == VoxelState {
		return &c.voxelState
	}
	return &c.meshState
}

// PublishVoxel writes the voxel payload and transitions VoxelState
// InFlight->Done. Must be called only by the goroutine that won
// TryBegin(id, VoxelState).
func (l *Level) PublishVoxel(id chunkid.ID, block voxel.Block) {
	l.chunkOp(id, func(c *Chunk) {
		c.mu.Lock()
		c.voxel = block
		c.mu.Unlock()
		c.voxelState.Store(uint32(Done))
	})
}

// PublishMesh writes the six direction-keyed face lists and transitions
// MeshState InFlight->Done. Must be called only by the goroutine that
// won TryBegin(id, MeshState).
func (l *Level) PublishMesh(id chunkid.ID, faces [int(mesher.NumDirections)][]mesher.Face) {
	l.chunkOp(id, func(c *Chunk) {
		c.mu.Lock()
		c.mesh = faces
		c.mu.Unlock()
		c.meshState.Store(uint32(Done))
	})
}

// NeighborSolidity reads the boundary-solidity plane of the neighbor at
// axis/sign relative to id, at id's own LOD. Returns an all-air plane if
// that neighbor slot doesn't exist or hasn't published its voxel yet.
func (l *Level) NeighborSolidity(id chunkid.ID, axis int, sign int) [voxel.Size]uint32 {
	offset := [3]int32{0, 0, 0}
	offset[axis] = int32(sign)
	neighborID := chunkid.ID{LOD: id.LOD, Pos: [3]int32{id.Pos[0] + offset[0], id.Pos[1] + offset[1], id.Pos[2] + offset[2]}}

	c, ok := l.Get(neighborID)
	if !ok || c.VoxelState() != Done {
		return [voxel.Size]uint32{}
	}
	block := c.Voxel()
	// The neighbor's plane facing us is the one on its opposite side.
	return block.BoundarySolid(axis, -sign)
}

// EvictOutsideRadius removes shard entries that are both outside the
// eviction cache's recently-touched window and farther than radius
// (measured in lod-0 chunk widths) from center. No-op when eviction is
// disabled. This implements the optional cache policy spec.md §3 and §9
// permit but do not mandate.
func (l *Level) EvictOutsideRadius(center chunkid.ID, radius int32) {
	if !l.evictEnabled {
		return
	}
	// chunkDistanceSq works in world voxels; radius is in chunk widths.
	limit := int64(radius) * chunkid.NativeSize
	for _, s := range l.shards {
		s.mu.Lock()
		for id := range s.chunks {
			if l.touched.Contains(id) {
				continue
			}
			if chunkDistanceSq(center, id) > limit*limit {
				delete(s.chunks, id)
			}
		}
		s.mu.Unlock()
	}
}

func chunkDistanceSq(a, b chunkid.ID) int64 {
	aMin, bMin := a.WorldMin(), b.WorldMin()
	dx := aMin[0] - bMin[0]
	dy := aMin[1] - bMin[1]
	dz := aMin[2] - bMin[2]
	return dx*dx + dy*dy + dz*dz
}
