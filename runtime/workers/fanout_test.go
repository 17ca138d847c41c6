package workers

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chat-sync/domain"
	"chat-sync/domain/event"

	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu   sync.Mutex
	seen []string
}

func (d *recordingDispatcher) Dispatch(evt event.DomainEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	inserted := evt.(event.MessageInserted)
	d.seen = append(d.seen, inserted.Row.ID)
}

func (d *recordingDispatcher) ids() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.seen...)
}

func TestFanoutWorker_Forwards_Events_In_Order(t *testing.T) {
	req := require.New(t)
	events := make(chan event.DomainEvent, 4)
	dispatcher := &recordingDispatcher{}
	worker := NewFanoutWorker(slog.Default(), events, dispatcher)

	events <- event.MessageInserted{Row: domain.RawMessageRow{ID: "m1", ConversationID: "c1"}}
	events <- event.MessageInserted{Row: domain.RawMessageRow{ID: "m2", ConversationID: "c1"}}
	close(events)

	req.NoError(worker.Run(context.Background()))
	req.Equal([]string{"m1", "m2"}, dispatcher.ids())
}

func TestFanoutWorker_Stops_On_Context_Cancel(t *testing.T) {
	req := require.New(t)
	events := make(chan event.DomainEvent)
	worker := NewFanoutWorker(slog.Default(), events, &recordingDispatcher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
