package worker

import (
	"context"
	"log"
	"sync"
)

// ResultCallback is invoked when a task finishes (from the worker
// goroutine). The event loop passes a closure that posts back into the loop
// safely.
type ResultCallback func(summary string, err error)

// Task is one pipeline pass. It returns a short human-readable summary.
type Task func(ctx context.Context) (string, error)

// Pool runs answer tasks with a 1-slot input queue (strict back-pressure).
// The pool is sized 1: a pass owns the virtual input device exclusively, so
// two passes must never overlap.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx  context.Context
	task Task
	cb   ResultCallback
}

// New creates the pool and starts its worker.
func New() *Pool {
	p := &Pool{jobs: make(chan job, 1)}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for j := range p.jobs {
			summary, err := runWithContext(j.ctx, j.task)
			log.Printf("Worker: task completed, err=%v", err)
			j.cb(summary, err)
		}
	}()
	return p
}

// Submit enqueues a task if the single-slot queue is free. Returns false if
// dropped.
func (p *Pool) Submit(ctx context.Context, task Task, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, task: task, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

// runWithContext honors the ctx deadline even when the task is stuck in an
// external call. The task keeps running in the background on timeout; only
// the result is abandoned.
func runWithContext(ctx context.Context, task Task) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		return task(ctx)
	}
	resCh := make(chan struct {
		summary string
		err     error
	}, 1)
	go func() {
		summary, err := task(ctx)
		resCh <- struct {
			summary string
			err     error
		}{summary, err}
	}()
	select {
	case r := <-resCh:
		return r.summary, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
