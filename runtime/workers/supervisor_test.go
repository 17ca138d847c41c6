package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// flakyWorker panics a fixed number of times before finishing cleanly.
type flakyWorker struct {
	panicsLeft int32
	runs       int32
}

func (w *flakyWorker) Run(_ context.Context) error {
	atomic.AddInt32(&w.runs, 1)
	if atomic.AddInt32(&w.panicsLeft, -1) >= 0 {
		panic("boom")
	}
	return nil
}

type blockingWorker struct {
	started chan struct{}
}

func (w *blockingWorker) Run(ctx context.Context) error {
	close(w.started)
	<-ctx.Done()
	return nil
}

func TestSupervisor_Restarts_A_Panicking_Worker(t *testing.T) {
	req := require.New(t)
	worker := &flakyWorker{panicsLeft: 2}
	supervisor := NewSupervisor(slog.Default(), time.Millisecond)
	supervisor.Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	// Two panics, then a clean finish lets Run return
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not drain")
	}
	req.Equal(int32(3), atomic.LoadInt32(&worker.runs))
}

func TestSupervisor_Stop_Drains_A_Blocking_Worker(t *testing.T) {
	req := require.New(t)
	worker := &blockingWorker{started: make(chan struct{})}
	supervisor := NewSupervisor(slog.Default(), time.Second)
	supervisor.Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	<-worker.started
	supervisor.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	req.NotNil(supervisor.Cancel)
}
