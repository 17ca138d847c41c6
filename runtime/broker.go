// Package runtime owns the synchronization engine: the live insert
// broker, the single-subscription state machine and the session engine
// gluing resolution, sends and recording together.
// It orchestrates the system without containing domain rules.
package runtime

import (
	"log/slog"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
)

// Broker is the in-process live channel. It keeps one subscriber set
// per target and delivers inserted rows to whoever is bound to that
// exact target. Handles are owned by the SubscriptionManager; nothing
// else opens or closes them.
//
// Broker is safe for concurrent use by multiple goroutines.
type Broker struct {
	mu   sync.RWMutex
	log  *slog.Logger
	subs map[domain.Target]map[uint64]func(domain.RawMessageRow)
	next uint64
}

func NewBroker(log *slog.Logger) *Broker {
	return &Broker{
		log:  log,
		subs: make(map[domain.Target]map[uint64]func(domain.RawMessageRow)),
	}
}

// SubscribeInserts registers a handler for rows inserted into target.
func (b *Broker) SubscribeInserts(target domain.Target, onInsert func(domain.RawMessageRow)) (contract.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[target]; !ok {
		b.subs[target] = make(map[uint64]func(domain.RawMessageRow))
	}
	b.next++
	id := b.next
	b.subs[target][id] = onInsert
	return &brokerSubscription{broker: b, target: target, id: id}, nil
}

// Dispatch delivers an event to the subscribers of its target.
// Called by the fanout worker, never by senders directly.
func (b *Broker) Dispatch(evt event.DomainEvent) {
	inserted, ok := evt.(event.MessageInserted)
	if !ok {
		b.log.Debug("Not implemented event", "event", evt)
		return
	}

	// Handlers are copied out and invoked without the lock: a handler
	// may call back into the subscription layer, and holding the lock
	// here would order locks against Subscribe/Cancel. A handler whose
	// subscription was just cancelled must tolerate one late delivery.
	b.mu.RLock()
	handlers := make([]func(domain.RawMessageRow), 0, len(b.subs[evt.Target()]))
	for _, h := range b.subs[evt.Target()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(inserted.Row)
	}
}

type brokerSubscription struct {
	broker *Broker
	target domain.Target
	id     uint64
	once   sync.Once
}

// Cancel removes the handler. Empty subscriber sets are pruned so
// switching conversations doesn't leak entries. A dispatch already in
// flight may still invoke the handler once; consumers guard against
// that with their own staleness check.
func (s *brokerSubscription) Cancel() {
	s.once.Do(func() {
		s.broker.mu.Lock()
		defer s.broker.mu.Unlock()

		if members, ok := s.broker.subs[s.target]; ok {
			delete(members, s.id)
			if len(members) == 0 {
				delete(s.broker.subs, s.target)
			}
		}
	})
}
