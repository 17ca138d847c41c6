package errors

import "fmt"

var (
	ErrInvalidTarget        = fmt.Errorf("invalid target")
	ErrNoTarget             = fmt.Errorf("no conversation selected")
	ErrResolutionFailed     = fmt.Errorf("conversation resolution failed")
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrHistoryFetch         = fmt.Errorf("history fetch failed")
	ErrSubscription         = fmt.Errorf("live subscription failed")
	ErrSend                 = fmt.Errorf("message send failed")
	ErrPermissionDenied     = fmt.Errorf("audio device unavailable")
	ErrRecorderBusy         = fmt.Errorf("a recording session is already active")
	ErrNotRecording         = fmt.Errorf("no active recording session")
	ErrNotVoiceMessage      = fmt.Errorf("message carries no audio payload")
	ErrUnsupportedPayload   = fmt.Errorf("payload is not audio")
	ErrPayloadNotFound      = fmt.Errorf("audio payload not found")
	ErrWorkerPanic          = fmt.Errorf("worker panic")
)
