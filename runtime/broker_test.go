package runtime

import (
	"log/slog"
	"testing"

	"chat-sync/domain"
	"chat-sync/domain/event"

	"github.com/stretchr/testify/require"
)

func insertedInto(target domain.Target, id string) event.MessageInserted {
	row := domain.RawMessageRow{ID: id, SenderID: "a1"}
	if target.Kind == domain.GroupTarget {
		row.GroupID = target.ID
	} else {
		row.ConversationID = target.ID
	}
	return event.MessageInserted{Row: row}
}

func TestBroker_Delivers_Only_To_The_Events_Target(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())

	var c1Rows, g1Rows []string
	_, err := broker.SubscribeInserts(domain.ConversationTarget("c1"), func(row domain.RawMessageRow) {
		c1Rows = append(c1Rows, row.ID)
	})
	req.NoError(err)
	_, err = broker.SubscribeInserts(domain.GroupChatTarget("g1"), func(row domain.RawMessageRow) {
		g1Rows = append(g1Rows, row.ID)
	})
	req.NoError(err)

	broker.Dispatch(insertedInto(domain.ConversationTarget("c1"), "m1"))
	broker.Dispatch(insertedInto(domain.GroupChatTarget("g1"), "m2"))
	broker.Dispatch(insertedInto(domain.ConversationTarget("c2"), "m3"))

	req.Equal([]string{"m1"}, c1Rows)
	req.Equal([]string{"m2"}, g1Rows)
}

func TestBroker_Cancel_Stops_Delivery(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())

	var rows []string
	sub, err := broker.SubscribeInserts(domain.ConversationTarget("c1"), func(row domain.RawMessageRow) {
		rows = append(rows, row.ID)
	})
	req.NoError(err)

	broker.Dispatch(insertedInto(domain.ConversationTarget("c1"), "m1"))
	sub.Cancel()
	broker.Dispatch(insertedInto(domain.ConversationTarget("c1"), "m2"))

	req.Equal([]string{"m1"}, rows)
}

func TestBroker_Cancel_Twice_Is_Harmless(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())

	sub, err := broker.SubscribeInserts(domain.ConversationTarget("c1"), func(domain.RawMessageRow) {})
	req.NoError(err)

	sub.Cancel()
	sub.Cancel()

	// A fresh subscription on the same target still works after pruning
	var rows []string
	_, err = broker.SubscribeInserts(domain.ConversationTarget("c1"), func(row domain.RawMessageRow) {
		rows = append(rows, row.ID)
	})
	req.NoError(err)
	broker.Dispatch(insertedInto(domain.ConversationTarget("c1"), "m1"))
	req.Equal([]string{"m1"}, rows)
}
