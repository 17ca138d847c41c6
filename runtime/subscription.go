package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"
	apperrors "chat-sync/errors"
	"chat-sync/projection"
)

// SubscriptionManager owns the single live subscription of the session.
// It is either Unbound or Bound to exactly one target; rebinding tears
// the previous handle down before the new one is established, so there
// is no window where two handles deliver events.
//
// Every bind is tagged with an epoch. Results of in-flight operations
// (history fetches, live inserts) are applied only if their epoch is
// still current, so switching conversations while a fetch is
// outstanding can never populate the timeline for a target that is no
// longer displayed.
type SubscriptionManager struct {
	mu      sync.Mutex
	log     *slog.Logger
	history contract.HistorySource
	feed    contract.LiveFeed
	store   *projection.Timeline

	current contract.Subscription
	target  domain.Target
	bound   bool
	epoch   uint64
}

func NewSubscriptionManager(log *slog.Logger, history contract.HistorySource,
	feed contract.LiveFeed, store *projection.Timeline) *SubscriptionManager {
	return &SubscriptionManager{log: log, history: history, feed: feed, store: store}
}

// Bind points the manager at a new target: teardown of the previous
// channel, synchronous history fetch into the timeline, then a live
// subscription whose handler goes through the timeline's dedup path.
//
// A failed fetch or subscribe leaves the timeline empty and the manager
// Unbound; the error surfaces once and there is no automatic retry.
func (m *SubscriptionManager) Bind(ctx context.Context, target domain.Target) error {
	m.mu.Lock()
	m.teardownLocked()
	m.epoch++
	epoch := m.epoch
	m.store.Reset()
	m.mu.Unlock()

	// History is fetched outside the lock; the epoch decides later
	// whether the result still matters.
	rows, err := m.history.FetchHistory(ctx, target)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		// A newer bind superseded this one; discard the result.
		m.log.Debug("Discarding stale history fetch", "target", target.ID)
		return nil
	}
	if err != nil {
		return err
	}
	for _, row := range rows {
		m.store.AppendFromServer(row)
	}

	sub, err := m.feed.SubscribeInserts(target, func(row domain.RawMessageRow) {
		m.onInsert(epoch, row)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSubscription, err)
	}
	m.current = sub
	m.target = target
	m.bound = true
	m.log.Info("Subscription bound", "target", target.ID, "history", len(rows))
	return nil
}

// Unbind clears the selection and releases the live handle.
func (m *SubscriptionManager) Unbind() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.teardownLocked()
	m.store.Reset()
}

// Target returns the currently bound target, if any.
func (m *SubscriptionManager) Target() (domain.Target, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target, m.bound
}

func (m *SubscriptionManager) onInsert(epoch uint64, row domain.RawMessageRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return
	}
	m.store.AppendFromServer(row)
}

func (m *SubscriptionManager) teardownLocked() {
	if m.current != nil {
		m.current.Cancel()
		m.current = nil
	}
	m.bound = false
	m.target = domain.Target{}
}
