// Package projection builds local timelines from stored rows and observed
// events. Handles mapping, ordering and deduplication.
// Does not emit events or interact with UI directly.
package projection

import (
	"fmt"

	"chat-sync/domain"

	"github.com/samber/lo"
)

// MapRow translates a stored record into a display-ready message.
// Origin is decided by comparing the sender to selfID; a row is a voice
// message iff it carries a non-empty audio payload reference.
// Pure function, no I/O.
func MapRow(row domain.RawMessageRow, selfID string) domain.Message {
	msg := domain.Message{
		ID:        row.ID,
		Mine:      row.SenderID == selfID,
		SenderID:  row.SenderID,
		CreatedAt: row.CreatedAt,
		Status:    domain.Sent,
	}
	if row.FileURL != "" {
		msg.Body = domain.VoiceBody
		msg.FileURL = row.FileURL
		msg.Duration = FormatDuration(row.DurationMS)
	} else {
		msg.Body = domain.TextBody
		msg.Content = row.Transcription
	}
	return msg
}

// MapRows translates a history batch in storage order.
func MapRows(rows []domain.RawMessageRow, selfID string) []domain.Message {
	return lo.Map(rows, func(item domain.RawMessageRow, _ int) domain.Message {
		return MapRow(item, selfID)
	})
}

// FormatDuration renders stored milliseconds as "minutes:seconds",
// seconds zero-padded. 75000 -> "1:15".
func FormatDuration(durationMS int64) string {
	totalSeconds := durationMS / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
