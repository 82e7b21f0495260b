// Package worker runs short backend queries off the event loop goroutine.
package worker

import (
	"context"
	"log"
	"sync"
)

// Task is a unit of work run on a pool goroutine. It must post its result
// back to the event loop through a channel; it never mutates loop state.
type Task func(ctx context.Context)

// Pool is a fixed-size worker pool with one queue slot per worker. Submit
// never blocks the event loop: when the queue is full the task is dropped
// and the caller decides how to degrade.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx  context.Context
	task Task
}

// New creates a pool. Size defaults to 2 when size <= 0, enough for the
// pointer and focused-window queries of one invocation to run in parallel.
func New(size int) *Pool {
	if size <= 0 {
		size = 2
	}
	p := &Pool{jobs: make(chan job, size)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				if err := j.ctx.Err(); err != nil {
					log.Printf("worker: dropping task, context done: %v", err)
					continue
				}
				j.task(j.ctx)
			}
		}()
	}
}

// Submit enqueues a task if a queue slot is free. Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	select {
	case p.jobs <- job{ctx: ctx, task: task}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining queued work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
