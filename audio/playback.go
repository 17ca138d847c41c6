package audio

import (
	"fmt"
	"log/slog"
	"sync"

	apperrors "chat-sync/errors"
)

// Player renders a single audio payload. Start must invoke onDone from
// its own goroutine when the audio reaches its natural end; Stop
// interrupts without invoking onDone.
type Player interface {
	Start(data []byte, onDone func()) error
	Stop()
}

// PlaybackController guarantees at most one voice message is audible at
// a time. Requests toggle per message id: the active message stops,
// any other message preempts the active one.
type PlaybackController struct {
	mu       sync.Mutex
	log      *slog.Logger
	player   Player
	activeID string
}

func NewPlaybackController(log *slog.Logger, player Player) *PlaybackController {
	return &PlaybackController{log: log, player: player}
}

// Toggle requests playback for messageID. Reports whether the message
// is playing after the call.
func (c *PlaybackController) Toggle(messageID string, data []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeID == messageID {
		c.player.Stop()
		c.activeID = ""
		return false, nil
	}
	if c.activeID != "" {
		c.player.Stop()
		c.activeID = ""
	}

	if err := c.player.Start(data, func() { c.clear(messageID) }); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrPermissionDenied, err)
	}
	c.activeID = messageID
	return true, nil
}

// clear releases the handle on natural end-of-audio. The id guard keeps
// a late callback from a preempted playback from clearing its successor.
func (c *PlaybackController) clear(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeID == messageID {
		c.activeID = ""
	}
}

// ActiveID returns the id of the currently audible message, or "".
func (c *PlaybackController) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}
