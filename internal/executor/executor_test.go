package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/level"
)

func TestSubmitRunsJob(t *testing.T) {
	lvl := level.New(0)
	var ran atomic.Int32

	p := New(2, func(_ context.Context, job Job) {
		ran.Add(1)
	}, lvl)
	defer p.Shutdown()

	p.Submit(LaneFirst, Job{Kind: KindVoxel, ID: chunkid.New(0, [3]int32{0, 0, 0})})

	deadline := time.Now().Add(time.Second)
	for ran.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ran.Load() != 1 {
		t.Fatalf("expected job to run exactly once, ran=%d", ran.Load())
	}
}

func TestPriorityLaneRunsBeforeNormalLanes(t *testing.T) {
	lvl := level.New(0)
	var mu sync.Mutex
	var order []string

	// Single worker so lane ordering is observable. The first job holds
	// the worker until gate is closed, so every later submission is
	// queued before the worker picks its next job.
	started := make(chan struct{})
	gate := make(chan struct{})
	var hold sync.Once
	p := New(1, func(_ context.Context, job Job) {
		hold.Do(func() {
			close(started)
			<-gate
		})
		mu.Lock()
		order = append(order, fmt.Sprintf("%v", job.ID))
		mu.Unlock()
	}, lvl)
	defer p.Shutdown()

	// Occupy the worker with one normal-lane job, queue more normal-lane
	// jobs behind it, then push the priority job and confirm it jumps
	// the queued normal-lane jobs.
	p.Submit(LaneFirst, Job{Kind: KindVoxel, ID: chunkid.New(0, [3]int32{0, 0, 0})})
	<-started
	for i := 1; i < 5; i++ {
		p.Submit(LaneFirst, Job{Kind: KindVoxel, ID: chunkid.New(0, [3]int32{int32(i), 0, 0})})
	}
	priorityID := chunkid.New(0, [3]int32{99, 0, 0})
	p.Submit(LanePriority, Job{Kind: KindVoxel, ID: priorityID})
	close(gate)

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(order)
		mu.Unlock()
		if n >= 6 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) < 6 {
		t.Fatalf("expected 6 jobs to run, ran %d", len(order))
	}
	if order[1] != fmt.Sprintf("%v", priorityID) {
		t.Errorf("expected the priority job to run right after the in-progress job, got order %v", order)
	}
}

func TestWorkerPanicResetsSlot(t *testing.T) {
	lvl := level.New(0)
	id := chunkid.New(0, [3]int32{1, 1, 1})
	lvl.TryBegin(id, level.VoxelState)

	var ran atomic.Int32
	p := New(1, func(_ context.Context, job Job) {
		ran.Add(1)
		panic("boom")
	}, lvl)
	defer p.Shutdown()

	p.Submit(LanePriority, Job{Kind: KindVoxel, ID: id})

	deadline := time.Now().Add(time.Second)
	for ran.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	c, ok := lvl.Get(id)
	if !ok {
		t.Fatal("expected slot to still exist after panic recovery")
	}

	resetDeadline := time.Now().Add(time.Second)
	for c.VoxelState() != level.Missing && time.Now().Before(resetDeadline) {
		time.Sleep(time.Millisecond)
	}
	if c.VoxelState() != level.Missing {
		t.Errorf("expected VoxelState() == Missing after worker panic, got %v", c.VoxelState())
	}
}

func TestShutdownJoinsWorkers(t *testing.T) {
	lvl := level.New(0)
	p := New(3, func(_ context.Context, job Job) {}, lvl)
	p.Shutdown() // must return promptly, not deadlock
}

func TestWorkerPanicOnCompositeJobResetsBothStates(t *testing.T) {
	lvl := level.New(0)
	id := chunkid.New(0, [3]int32{2, 2, 2})
	lvl.TryBegin(id, level.VoxelState)
	lvl.TryBegin(id, level.MeshState)

	var ran atomic.Int32
	p := New(1, func(_ context.Context, job Job) {
		ran.Add(1)
		panic("boom")
	}, lvl)
	defer p.Shutdown()

	p.Submit(LanePriority, Job{Kind: KindBoth, ID: id})

	deadline := time.Now().Add(time.Second)
	for ran.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	c, ok := lvl.Get(id)
	if !ok {
		t.Fatal("expected slot to still exist after panic recovery")
	}

	resetDeadline := time.Now().Add(time.Second)
	for (c.VoxelState() != level.Missing || c.MeshState() != level.Missing) && time.Now().Before(resetDeadline) {
		time.Sleep(time.Millisecond)
	}
	if c.VoxelState() != level.Missing || c.MeshState() != level.Missing {
		t.Errorf("expected both states reset to Missing after a composite-job panic, got voxel=%v mesh=%v", c.VoxelState(), c.MeshState())
	}
}
