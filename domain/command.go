package domain

// SendTextCommand is a user intent to send a typed message to the
// currently selected target.
type SendTextCommand struct {
	Content string `validate:"required,max=4000"`
}

// SendVoiceCommand is a user intent to send a finalized voice note.
type SendVoiceCommand struct {
	Data            []byte `validate:"required"`
	DurationSeconds int    `validate:"gte=0"`
}
