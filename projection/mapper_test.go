package projection

import (
	"chat-sync/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMapRow_Text_Message(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC()

	row := domain.RawMessageRow{
		ID:             "m1",
		ConversationID: "c1",
		SenderID:       "b1",
		Transcription:  "hello",
		CreatedAt:      at,
	}

	msg := MapRow(row, "a1")

	req.Equal("m1", msg.ID)
	req.False(msg.Mine)
	req.Equal(domain.TextBody, msg.Body)
	req.Equal("hello", msg.Content)
	req.Empty(msg.Duration)
	req.Equal(at, msg.CreatedAt)
	req.Equal(domain.Sent, msg.Status)
}

func TestMapRow_Voice_Iff_FileURL_Present(t *testing.T) {
	req := require.New(t)

	row := domain.RawMessageRow{
		ID:         "m2",
		SenderID:   "a1",
		FileURL:    "voice:1234",
		DurationMS: 75000,
	}

	msg := MapRow(row, "a1")

	req.True(msg.Mine)
	req.Equal(domain.VoiceBody, msg.Body)
	req.Equal("voice:1234", msg.FileURL)
	req.Equal("1:15", msg.Duration)
	req.Empty(msg.Content)
}

func TestMapRow_Empty_Transcription_Defaults_To_Empty_String(t *testing.T) {
	req := require.New(t)

	msg := MapRow(domain.RawMessageRow{ID: "m3", SenderID: "x"}, "a1")

	req.Equal(domain.TextBody, msg.Body)
	req.Equal("", msg.Content)
}

func TestMapRows_Preserves_Order(t *testing.T) {
	req := require.New(t)

	rows := []domain.RawMessageRow{
		{ID: "m1", SenderID: "a1", Transcription: "first"},
		{ID: "m2", SenderID: "b1", Transcription: "second"},
	}

	messages := MapRows(rows, "a1")

	req.Len(messages, 2)
	req.Equal("first", messages[0].Content)
	req.True(messages[0].Mine)
	req.Equal("second", messages[1].Content)
	req.False(messages[1].Mine)
}

func TestFormatDuration(t *testing.T) {
	req := require.New(t)

	req.Equal("0:00", FormatDuration(0))
	req.Equal("0:05", FormatDuration(5000))
	req.Equal("1:15", FormatDuration(75000))
	req.Equal("10:00", FormatDuration(600000))
	// Sub-second remainders are truncated, not rounded up.
	req.Equal("0:01", FormatDuration(1999))
}
