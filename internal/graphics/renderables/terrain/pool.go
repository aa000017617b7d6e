package terrain

import (
	"context"
	"sync"

	"windswept/internal/world"
)

// MeshJob asks for the mesh of radius columns around Center.
type MeshJob struct {
	Grid   Grid
	Center world.BlockPos
	Radius int
	// ResultChan receives the mesh when it is done
	ResultChan chan MeshResult
}

// MeshResult is a finished terrain mesh.
type MeshResult struct {
	Center   world.BlockPos
	Vertices []float32
}

// WorkerPool builds terrain meshes off the render thread. The world guards its own reads,
// so a job can run while the session keeps ticking.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts workers goroutines behind a queue of queueSize jobs.
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool
}

// SubmitJob queues a job. It returns false if the queue is full.
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := MeshResult{
				Center:   job.Center,
				Vertices: BuildMesh(job.Grid, job.Center, job.Radius),
			}
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them. Queued jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the number of jobs waiting for a worker.
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
