// Command voxeled is the composition root wiring the core's modules
// together once per frame, standing in for the embedding program
// spec.md §6 describes. It owns no window or GPU context — that stays
// the caller's job, per spec §1 — and exists so the core's pieces are
// exercised end-to-end the way the teacher's cmd/mini-mc/game_loop.go
// ties renderer/player/world/input together each tick.
package main

import (
	"context"
	"log"
	"time"

	"github.com/mikatschuh/voxeled/internal/assembler"
	"github.com/mikatschuh/voxeled/internal/camera"
	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/config"
	"github.com/mikatschuh/voxeled/internal/executor"
	"github.com/mikatschuh/voxeled/internal/frustum"
	"github.com/mikatschuh/voxeled/internal/generator"
	"github.com/mikatschuh/voxeled/internal/inputs"
	"github.com/mikatschuh/voxeled/internal/level"
	"github.com/mikatschuh/voxeled/internal/mesher"
	"github.com/mikatschuh/voxeled/internal/profiling"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// Engine owns a frame's worth of core state: the chunk registry, the
// job pool producing its payloads, the camera driving selection, and
// the generator jobs sample from.
type Engine struct {
	settings *config.Settings
	level    *level.Level
	pool     *executor.Pool
	cam      camera.Camera
	gen      generator.Generator

	lastFrame time.Time
}

// NewEngine builds an Engine around gen, wiring the executor's Run
// callback to sample voxels or build meshes and publish them to the
// registry, matching spec.md §4.F/§4.B's producer contract.
func NewEngine(gen generator.Generator) *Engine {
	settings := config.Global()
	lvl := level.New(settings.EvictionWindow())

	e := &Engine{
		settings:  settings,
		level:     lvl,
		cam:       camera.NewCamera(),
		gen:       gen,
		lastFrame: time.Now(),
	}

	e.pool = executor.New(settings.WorkerCount(), e.run, lvl)
	return e
}

// run is the executor.Run callback: it produces one chunk's voxel
// and/or mesh payload and publishes it. Neighbors that are absent or not
// yet Done are read as all-air planes (transient data absence, not an
// error, per spec §7's taxonomy); a mesh job whose own voxel payload is
// not Done hands MeshState back to Missing so a later Tick resubmits it.
func (e *Engine) run(_ context.Context, job executor.Job) {
	switch job.Kind {
	case executor.KindVoxel:
		e.generateVoxel(job.ID)

	case executor.KindMesh:
		e.meshChunk(job.ID)

	case executor.KindBoth:
		e.generateVoxel(job.ID)
		e.meshChunk(job.ID)
	}
}

func (e *Engine) generateVoxel(id chunkid.ID) {
	block := e.gen.Sample(id)
	e.level.PublishVoxel(id, block)
}

func (e *Engine) meshChunk(id chunkid.ID) {
	chunk, ok := e.level.Get(id)
	if !ok || chunk.VoxelState() != level.Done {
		e.level.Reset(id, level.MeshState)
		return
	}
	block := chunk.Voxel()

	var neighbors mesher.Planes
	for dir := 0; dir < int(mesher.NumDirections); dir++ {
		axis, sign := axisSign(mesher.Direction(dir))
		neighbors[dir] = e.level.NeighborSolidity(id, axis, sign)
	}

	worldMin := id.WorldMin()
	faces := mesher.Build(&block, neighbors, [3]int32{int32(worldMin[0]), int32(worldMin[1]), int32(worldMin[2])}, id.LOD)
	e.level.PublishMesh(id, faces)
}

func axisSign(dir mesher.Direction) (axis, sign int) {
	switch dir {
	case mesher.NegX:
		return 0, -1
	case mesher.PosX:
		return 0, 1
	case mesher.NegY:
		return 1, -1
	case mesher.PosY:
		return 1, 1
	case mesher.NegZ:
		return 2, -1
	default:
		return 2, 1
	}
}

// Tick advances the engine by one frame: select the visible id set,
// submit any not-yet-Done chunks for generation/meshing, assemble the
// Done meshes into render streams, and optionally evict stale chunks.
func (e *Engine) Tick(in inputs.Inputs, aspect float32) assembler.Streams {
	profiling.ResetFrame()
	defer profiling.Track("engine.Tick")()

	now := time.Now()
	dt := now.Sub(e.lastFrame).Seconds()
	e.lastFrame = now
	applyMovement(&e.cam, in, dt)

	f := e.cam.Frustum(aspect, e.settings.RenderDistance(), e.settings.FullDetailRange(), e.settings.MaxChunks())
	ids := frustum.Select(f)

	for _, id := range ids {
		if e.level.TryBegin(id, level.VoxelState) {
			// A brand-new slot's MeshState is still Missing too, so the
			// voxel and mesh steps can run back to back on one worker
			// instead of round-tripping through the lane queue twice.
			if e.level.TryBegin(id, level.MeshState) {
				e.pool.Submit(executor.LaneFirst, executor.Job{Kind: executor.KindBoth, ID: id})
			} else {
				e.pool.Submit(executor.LaneFirst, executor.Job{Kind: executor.KindVoxel, ID: id})
			}
		} else if chunk, ok := e.level.Get(id); ok && chunk.VoxelState() == level.Done && chunk.MeshState() == level.Missing {
			if e.level.TryBegin(id, level.MeshState) {
				e.pool.Submit(executor.LaneSecond, executor.Job{Kind: executor.KindMesh, ID: id})
			}
		}
	}

	streams := assembler.Assemble(e.level, ids, e.cam.Pos)

	if len(ids) > 0 {
		e.level.EvictOutsideRadius(ids[0], int32(e.settings.RenderDistance()/float32(chunkid.NativeSize))+4)
	}

	return streams
}

// Shutdown stops the engine's worker pool, blocking until every
// in-flight job has been recovered or completed.
func (e *Engine) Shutdown() {
	e.pool.Shutdown()
}

func applyMovement(cam *camera.Camera, in inputs.Inputs, dt float64) {
	const speed = 6.0
	move := speed * dt
	forward := cam.Dir
	right := forward.Cross(cam.Up).Normalize()

	if in.Forward {
		cam.Pos = cam.Pos.Add(forward.Mul(float32(move)))
	}
	if in.Back {
		cam.Pos = cam.Pos.Sub(forward.Mul(float32(move)))
	}
	if in.Right {
		cam.Pos = cam.Pos.Add(right.Mul(float32(move)))
	}
	if in.Left {
		cam.Pos = cam.Pos.Sub(right.Mul(float32(move)))
	}
	if in.Up {
		cam.Pos = cam.Pos.Add(cam.Up.Mul(float32(move)))
	}
	if in.Down {
		cam.Pos = cam.Pos.Sub(cam.Up.Mul(float32(move)))
	}
}

func newGenerator(seed uint64) generator.Generator {
	switch config.WorldGen().Kind() {
	case config.GeneratorNoise:
		return generator.NewNoise(seed)
	case config.GeneratorLayered:
		return generator.NewLayered(seed, voxel.Stone, voxel.Dirt)
	case config.GeneratorCaves:
		return generator.NewCaves(seed)
	default:
		return generator.NewBiome(seed)
	}
}

func main() {
	gen := newGenerator(1)
	engine := NewEngine(gen)
	defer engine.Shutdown()

	log.Printf("voxeled engine started, worker count %d", config.Global().WorkerCount())

	in := inputs.Inputs{Forward: true}
	for i := 0; i < 3; i++ {
		streams := engine.Tick(in, 16.0/9.0)
		total := 0
		for _, faces := range streams {
			total += len(faces)
		}
		log.Printf("frame %d: %d faces assembled, top spans: %s", i, total, profiling.TopN(3))
		time.Sleep(16 * time.Millisecond)
	}
}
