package domain

import "time"

// Conversation is the durable channel backing a direct contact.
// Participants are stored in canonical order (lower id first) so an
// unordered pair maps to at most one row.
type Conversation struct {
	ID              string
	ParticipantLow  string
	ParticipantHigh string
	CreatedAt       time.Time
}

// OrderedPair canonicalizes two user ids lexicographically.
func OrderedPair(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}
