// Package eventloop coordinates trigger keys, the worker pool and result
// handling on a single goroutine.
package eventloop

import (
	"context"
	"log"
	"time"

	"screen-answer-clicker/src/worker"
)

// Trigger identifies which pipeline a key press requested.
type Trigger int

const (
	// TriggerAnswer runs the full find-and-click pass.
	TriggerAnswer Trigger = iota
	// TriggerCopy copies the model's answer to the clipboard.
	TriggerCopy
)

// Tasks supplies the two pipeline passes the loop can run.
type Tasks struct {
	Answer worker.Task
	Copy   worker.Task
}

// Loop is the single-threaded coordinator. Triggers arriving while a pass is
// in flight are dropped (the virtual input device is exclusively owned for
// the duration of a pass).
type Loop struct {
	tasks     Tasks
	pool      *worker.Pool
	busy      bool
	triggerCh chan Trigger
	results   chan result
	deadline  time.Duration
}

type result struct {
	summary string
	err     error
}

// New creates the loop. deadline bounds one pipeline pass; <= 0 means 60s.
func New(tasks Tasks, deadline time.Duration) *Loop {
	if deadline <= 0 {
		deadline = 60 * time.Second
	}
	return &Loop{
		tasks:     tasks,
		pool:      worker.New(),
		triggerCh: make(chan Trigger, 4),
		results:   make(chan result, 1),
		deadline:  deadline,
	}
}

// Post enqueues a trigger from any goroutine (the hotkey hook). Never
// blocks; excess triggers are dropped.
func (l *Loop) Post(t Trigger) {
	select {
	case l.triggerCh <- t:
	default:
	}
}

// Run processes triggers and results until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.pool.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-l.triggerCh:
			l.handleTrigger(ctx, t)
		case res := <-l.results:
			l.handleResult(res)
		}
	}
}

func (l *Loop) handleTrigger(ctx context.Context, t Trigger) {
	if l.busy {
		log.Printf("eventloop: busy, dropping trigger")
		return
	}

	task := l.tasks.Answer
	if t == TriggerCopy {
		task = l.tasks.Copy
	}
	if task == nil {
		log.Printf("eventloop: no task configured for trigger %d", t)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, l.deadline)
	l.busy = true
	submitted := l.pool.Submit(jobCtx, task, func(summary string, err error) {
		defer cancel()
		l.results <- result{summary: summary, err: err}
	})
	if !submitted {
		cancel()
		l.busy = false
		log.Printf("eventloop: pool full, dropping trigger")
	}
}

func (l *Loop) handleResult(res result) {
	l.busy = false
	if res.err != nil {
		log.Printf("eventloop: pass failed: %v", res.err)
		return
	}
	log.Printf("eventloop: pass completed: %s", res.summary)
}

// Deadline returns the per-pass deadline.
func (l *Loop) Deadline() time.Duration { return l.deadline }
