package workers

import (
	"context"
	"log/slog"

	"chat-sync/contract"
	"chat-sync/domain/event"
)

// Ensure *FanoutWorker implements the contract.Worker interface at
// compile time.
var _ contract.Worker = (*FanoutWorker)(nil)

// Dispatcher routes an event to the live subscribers of its target.
type Dispatcher interface {
	Dispatch(evt event.DomainEvent)
}

// FanoutWorker drains the insert event channel and hands each event to
// the broker. Best-effort delivery: no ordering or durability
// guarantees beyond what the channel provides.
type FanoutWorker struct {
	log        *slog.Logger
	events     chan event.DomainEvent
	dispatcher Dispatcher
}

func NewFanoutWorker(log *slog.Logger, events chan event.DomainEvent, dispatcher Dispatcher) *FanoutWorker {
	return &FanoutWorker{log: log, events: events, dispatcher: dispatcher}
}

func (w *FanoutWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed")
				return nil
			}
			w.dispatcher.Dispatch(evt)
		}
	}
}
