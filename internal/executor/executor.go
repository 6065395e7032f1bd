// Package executor runs voxel and mesh generation jobs on a bounded
// worker pool. The queue discipline — a priority lane drained to empty
// before two "casual" lanes are serviced with a 3:1 fairness ratio — is
// ported from original_source's threader/mod.rs Threadpool. Goroutine
// lifecycle (context cancellation + sync.WaitGroup join) follows the
// teacher's internal/meshing/pool.go WorkerPool.
package executor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/level"
)

// Kind distinguishes what a Job asks a worker to produce. KindBoth is the
// common composite job that runs voxel generation and meshing back to
// back on the same worker, saving a round trip through a lane queue for
// the frequent case where a chunk's mesh can be built immediately after
// its voxels land.
type Kind int

const (
	KindVoxel Kind = iota
	KindMesh
	KindBoth
)

// shutdownDeadline bounds how long Shutdown waits for workers to join
// before treating the pool as stuck and terminating the process.
const shutdownDeadline = 10 * time.Second

// Job is a tagged unit of work: which chunk, and which of its payloads
// to produce (voxel, mesh, or both). Workers dispatch on Kind rather
// than invoking a per-job closure, matching original_source's task.rs
// Task enum design (a single Benchmark variant there; Voxel/Mesh/Both
// here).
type Job struct {
	Kind Kind
	ID   chunkid.ID
}

// Lane selects which of the pool's three injector-style queues a job is
// pushed onto. Priority jobs are drained to empty before any normal
// lane is serviced at all.
type Lane int

const (
	LanePriority Lane = iota
	LaneFirst
	LaneSecond
)

// Run is supplied by the caller and actually produces a chunk's voxel
// or mesh payload, publishing it to the level registry.
type Run func(ctx context.Context, job Job)

// queue is a mutex-guarded FIFO slice deque, standing in for
// crossbeam::deque::Injector, which Go has no equivalent of.
type queue struct {
	mu    sync.Mutex
	items []Job
}

func (q *queue) push(j Job) {
	q.mu.Lock()
	q.items = append(q.items, j)
	q.mu.Unlock()
}

func (q *queue) pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Job{}, false
	}
	j := q.items[0]
	q.items = q.items[1:]
	return j, true
}

// Pool is a fixed-discipline worker pool: one priority queue serviced
// exhaustively first, then two normal queues serviced at a 3:1 ratio
// favoring the first.
type Pool struct {
	priority *queue
	first    *queue
	second   *queue

	wake chan struct{}

	run Run
	lvl *level.Level

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a pool with workers goroutines that execute jobs via run;
// lvl is used only to reset a job's slot state when run panics. Workers
// are started immediately.
func New(workers int, run Run, lvl *level.Level) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		priority: &queue{},
		first:    &queue{},
		second:   &queue{},
		wake:     make(chan struct{}, 1),
		run:      run,
		lvl:      lvl,
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *Pool) notify() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Submit pushes a job onto the given lane and wakes a sleeping worker.
func (p *Pool) Submit(lane Lane, job Job) {
	switch lane {
	case LanePriority:
		p.priority.push(job)
	case LaneFirst:
		p.first.push(job)
	case LaneSecond:
		p.second.push(job)
	}
	p.notify()
}

// worker is the single goroutine body every pool thread runs: drain
// priority exhaustively, then service the two normal lanes at a 3:1
// ratio, then block on the wake channel once both run dry.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	firstStreak := 0
	for {
		for {
			job, ok := p.priority.pop()
			if !ok {
				break
			}
			p.execute(job)
		}

		ranNormal := false
		if job, ok := p.nextNormal(&firstStreak); ok {
			p.execute(job)
			ranNormal = true
		}
		if ranNormal {
			continue
		}

		select {
		case <-p.ctx.Done():
			return
		case _, ok := <-p.wake:
			if !ok {
				return
			}
		}
	}
}

// nextNormal implements the 3:1 fairness split between the first and
// second normal lanes: three jobs from first for every one from second,
// falling back to whichever lane is non-empty.
func (p *Pool) nextNormal(streak *int) (Job, bool) {
	if *streak < 3 {
		if job, ok := p.first.pop(); ok {
			*streak++
			return job, true
		}
		*streak = 0
		if job, ok := p.second.pop(); ok {
			return job, true
		}
		return Job{}, false
	}
	if job, ok := p.second.pop(); ok {
		*streak = 0
		return job, true
	}
	if job, ok := p.first.pop(); ok {
		*streak++
		return job, true
	}
	return Job{}, false
}

// execute runs a job, recovering a worker panic by logging it and
// resetting the chunk's in-flight state back to Missing so no slot is
// left stuck InFlight and a later Tick can submit the id again. No
// per-id panic count is kept: a job that panics on every run is
// retried each time it is resubmitted.
func (p *Pool) execute(job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker panic: id=%v kind=%v: %v", job.ID, job.Kind, r)
			switch job.Kind {
			case KindMesh:
				p.lvl.Reset(job.ID, level.MeshState)
			case KindBoth:
				p.lvl.Reset(job.ID, level.VoxelState)
				p.lvl.Reset(job.ID, level.MeshState)
			default:
				p.lvl.Reset(job.ID, level.VoxelState)
			}
		}
	}()
	p.run(p.ctx, job)
}

// Shutdown cancels outstanding work and joins every worker goroutine,
// bounded by shutdownDeadline. A pool that fails to join in time is a
// catastrophic condition per spec.md §7: rather than leak goroutines
// silently, Shutdown logs and terminates the process.
func (p *Pool) Shutdown() {
	p.cancel()
	close(p.wake)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownDeadline):
		log.Fatalf("executor: pool join deadline of %v exceeded, workers did not shut down", shutdownDeadline)
	}
}
