package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool fans a batch of independent jobs out over numWorkers goroutines.
// Jobs must not mutate shared state; the per-tick decision batch satisfies
// this because every vehicle computation only reads the frozen graph snapshot.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		// checked between jobs, never mid-job: a canceled tick stops
		// scheduling new vehicles but finishes the one in flight.
		if ctx.Err() != nil {
			continue
		}
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	wp.StartWithContext(context.Background(), jobFunc)
}

func (wp *WorkerPool[T, G]) StartWithContext(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

// Close marks the job queue complete. Call after the last AddJob and before
// Wait, otherwise workers never exit.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}
