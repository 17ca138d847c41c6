package domain

import "time"

type MessageBody int

const (
	TextBody MessageBody = iota
	VoiceBody
)

type DeliveryStatus int

const (
	Pending DeliveryStatus = iota
	Sent
)

// Message is a display-ready chat entry.
// ID is server-assigned once persisted; before that it carries a
// "local-" placeholder and status Pending.
type Message struct {
	ID        string
	Mine      bool
	SenderID  string
	Body      MessageBody
	Content   string
	FileURL   string
	Duration  string
	CreatedAt time.Time
	Status    DeliveryStatus
}

// RawMessageRow is the stored record shape shared with the persistence
// layer. A row is a voice message iff FileURL is a non-empty reference.
type RawMessageRow struct {
	ID             string
	ConversationID string
	GroupID        string
	SenderID       string
	Transcription  string
	FileURL        string
	DurationMS     int64
	CreatedAt      time.Time
}

// Target returns the channel the row belongs to.
func (r RawMessageRow) Target() Target {
	if r.GroupID != "" {
		return GroupChatTarget(r.GroupID)
	}
	return ConversationTarget(r.ConversationID)
}
