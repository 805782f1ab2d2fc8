package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPoolRunsTask(t *testing.T) {
	p := New()
	defer p.Close()

	done := make(chan struct{})
	ok := p.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "done", nil
	}, func(summary string, err error) {
		if summary != "done" || err != nil {
			t.Errorf("callback got (%q, %v)", summary, err)
		}
		close(done)
	})
	if !ok {
		t.Fatal("submit rejected on empty pool")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never completed")
	}
}

func TestPoolBackPressure(t *testing.T) {
	p := New()
	defer p.Close()

	block := make(chan struct{})
	var wg sync.WaitGroup

	// Occupy the worker, then fill the single queue slot.
	wg.Add(1)
	p.Submit(context.Background(), func(ctx context.Context) (string, error) {
		<-block
		return "", nil
	}, func(string, error) { wg.Done() })

	// Give the worker time to pick up the first job.
	time.Sleep(50 * time.Millisecond)

	wg.Add(1)
	if !p.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "", nil
	}, func(string, error) { wg.Done() }) {
		t.Fatal("queue slot should accept one pending job")
	}

	// Worker busy and slot full: further submissions are dropped.
	if p.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "", nil
	}, func(string, error) {}) {
		t.Fatal("overfull pool should reject the submission")
	}

	close(block)
	wg.Wait()
}

func TestPoolHonorsDeadline(t *testing.T) {
	p := New()
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	errCh := make(chan error, 1)
	p.Submit(ctx, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		time.Sleep(5 * time.Second)
		return "too late", nil
	}, func(summary string, err error) {
		errCh <- err
	})

	select {
	case err := <-errCh:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deadline not enforced")
	}
}

func TestRunWithContextNoDeadline(t *testing.T) {
	summary, err := runWithContext(context.Background(), func(ctx context.Context) (string, error) {
		return "inline", nil
	})
	if summary != "inline" || err != nil {
		t.Fatalf("got (%q, %v)", summary, err)
	}
}
