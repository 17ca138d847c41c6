package projection

import (
	"chat-sync/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func row(id, sender, content string, at time.Time) domain.RawMessageRow {
	return domain.RawMessageRow{
		ID:             id,
		ConversationID: "c1",
		SenderID:       sender,
		Transcription:  content,
		CreatedAt:      at,
	}
}

func TestTimeline_AppendFromServer_Preserves_Order(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")
	at := time.Now().UTC()

	req.True(timeline.AppendFromServer(row("m1", "a1", "hello", at)))
	req.True(timeline.AppendFromServer(row("m2", "b1", "hi", at.Add(time.Second))))

	messages := timeline.Messages()
	req.Len(messages, 2)
	req.Equal("hello", messages[0].Content)
	req.Equal("hi", messages[1].Content)
	req.True(messages[0].Mine)
	req.False(messages[1].Mine)
}

func TestTimeline_AppendFromServer_Same_Id_Twice_Is_Noop(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")
	at := time.Now().UTC()

	// Given a row already appended
	req.True(timeline.AppendFromServer(row("m1", "b1", "hello", at)))

	// When the same server id arrives again
	req.False(timeline.AppendFromServer(row("m1", "b1", "hello", at)))

	// Then exactly one entry holds that id
	req.Equal(1, timeline.Len())
}

func TestTimeline_Optimistic_Then_Reconcile(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")
	at := time.Now().UTC()

	// Given an optimistic send
	localID := timeline.AppendOptimistic(domain.Message{Body: domain.TextBody, Content: "hello", CreatedAt: at})
	req.Equal("local-1", localID)

	pending := timeline.Messages()[0]
	req.Equal(domain.Pending, pending.Status)
	req.True(pending.Mine)

	// When the insert response arrives
	req.True(timeline.Reconcile(localID, row("m1", "a1", "hello", at)))

	// Then the entry is promoted in place, not duplicated
	messages := timeline.Messages()
	req.Len(messages, 1)
	req.Equal("m1", messages[0].ID)
	req.Equal(domain.Sent, messages[0].Status)
}

func TestTimeline_Reconcile_After_Echo_Drops_Local_Entry(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")
	at := time.Now().UTC()

	localID := timeline.AppendOptimistic(domain.Message{Body: domain.TextBody, Content: "hello", CreatedAt: at})

	// Given the server echo arrived first through the live channel
	req.True(timeline.AppendFromServer(row("m1", "a1", "hello", at)))
	req.Equal(2, timeline.Len())

	// When the insert response reconciles the same logical message
	req.True(timeline.Reconcile(localID, row("m1", "a1", "hello", at)))

	// Then one entry remains and the echo is still deduplicated
	req.Equal(1, timeline.Len())
	req.False(timeline.AppendFromServer(row("m1", "a1", "hello", at)))
	req.Equal(1, timeline.Len())
}

func TestTimeline_Echo_After_Reconcile_Is_Deduplicated(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")
	at := time.Now().UTC()

	localID := timeline.AppendOptimistic(domain.Message{Body: domain.TextBody, Content: "hello", CreatedAt: at})
	req.True(timeline.Reconcile(localID, row("m1", "a1", "hello", at)))

	// The live channel delivers the echo of the reconciled send
	req.False(timeline.AppendFromServer(row("m1", "a1", "hello", at)))

	// One optimistic send plus its echo still yields exactly one entry
	req.Equal(1, timeline.Len())
}

func TestTimeline_Reconcile_Unknown_Local_Id(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")

	req.False(timeline.Reconcile("local-99", row("m1", "a1", "hello", time.Now())))
	req.Equal(0, timeline.Len())
}

func TestTimeline_Local_Ids_Are_Monotonic(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")

	first := timeline.AppendOptimistic(domain.Message{Body: domain.TextBody, Content: "one"})
	second := timeline.AppendOptimistic(domain.Message{Body: domain.TextBody, Content: "two"})

	req.Equal("local-1", first)
	req.Equal("local-2", second)

	messages := timeline.Messages()
	req.Equal("one", messages[0].Content)
	req.Equal("two", messages[1].Content)
}

func TestTimeline_Reset_Clears_Sequence_And_Dedup_Index(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("a1")
	at := time.Now().UTC()

	timeline.AppendFromServer(row("m1", "b1", "hello", at))
	timeline.Reset()

	req.Equal(0, timeline.Len())
	// The same id is appendable again after a rebind.
	req.True(timeline.AppendFromServer(row("m1", "b1", "hello", at)))
}
