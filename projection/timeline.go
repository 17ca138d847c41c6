package projection

import (
	"chat-sync/domain"
	"fmt"
	"sync"
)

// Timeline is the ordered, deduplicated message sequence of the
// currently displayed conversation. Server-confirmed rows are keyed by
// their server id; optimistic local entries live in a distinct
// "local-<n>" namespace so the two can never collide.
//
// Timeline is safe for concurrent use: the live feed handler, the send
// path and readers may interleave freely.
type Timeline struct {
	mu       sync.Mutex
	selfID   string
	messages []domain.Message
	byServer map[string]int // server id -> position
	localSeq uint64
}

func NewTimeline(selfID string) *Timeline {
	return &Timeline{
		selfID:   selfID,
		byServer: make(map[string]int),
	}
}

// AppendFromServer maps the row and appends it, preserving insertion
// order. A row whose server id is already present is ignored, which
// makes the echo of an already reconciled send a no-op.
// Reports whether the row was actually appended.
func (t *Timeline) AppendFromServer(row domain.RawMessageRow) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byServer[row.ID]; ok {
		return false
	}
	t.byServer[row.ID] = len(t.messages)
	t.messages = append(t.messages, MapRow(row, t.selfID))
	return true
}

// AppendOptimistic appends a locally originated message immediately,
// with status Pending and a locally generated id. The id is returned so
// the sender can reconcile once the insert response arrives.
func (t *Timeline) AppendOptimistic(msg domain.Message) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.localSeq++
	msg.ID = fmt.Sprintf("local-%d", t.localSeq)
	msg.Mine = true
	msg.SenderID = t.selfID
	msg.Status = domain.Pending
	t.messages = append(t.messages, msg)
	return msg.ID
}

// Reconcile replaces the Pending entry matching localID with the mapped
// server row, preserving its position. If the server echo already
// arrived through the live channel the local entry is dropped instead,
// so one logical send never yields two entries.
// Reports whether the local entry was found.
func (t *Timeline) Reconcile(localID string, row domain.RawMessageRow) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos := -1
	for i, msg := range t.messages {
		if msg.ID == localID && msg.Status == domain.Pending {
			pos = i
			break
		}
	}
	if pos == -1 {
		return false
	}

	if _, ok := t.byServer[row.ID]; ok {
		// Echo won the race: the confirmed entry is already in place.
		t.removeAt(pos)
		return true
	}

	t.messages[pos] = MapRow(row, t.selfID)
	t.byServer[row.ID] = pos
	return true
}

func (t *Timeline) removeAt(pos int) {
	t.messages = append(t.messages[:pos], t.messages[pos+1:]...)
	for id, i := range t.byServer {
		if i > pos {
			t.byServer[id] = i - 1
		}
	}
}

// Messages returns a snapshot copy of the sequence.
func (t *Timeline) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make([]domain.Message, len(t.messages))
	copy(snapshot, t.messages)
	return snapshot
}

func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Reset clears the sequence; called when the subscription rebinds to a
// different conversation.
func (t *Timeline) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
	t.byServer = make(map[string]int)
}
