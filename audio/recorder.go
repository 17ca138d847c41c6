// Package audio holds the voice note capture state machine and the
// playback controller. Device access goes through narrow interfaces so
// the engine never touches hardware directly.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "chat-sync/errors"
)

// CaptureDevice produces raw audio frames while open. Open returns a
// channel that is closed when the device stops producing.
type CaptureDevice interface {
	Open(ctx context.Context) (<-chan []byte, error)
	Close() error
}

type RecorderState int

const (
	Idle RecorderState = iota
	Recording
	Finalizing
)

// VoiceNote is the finalized product of a recording session: the
// accumulated payload plus the elapsed seconds at the moment of stop.
type VoiceNote struct {
	Data            []byte
	DurationSeconds int
}

func (n VoiceNote) DurationMS() int64 {
	return int64(n.DurationSeconds) * 1000
}

// Recorder captures audio into a buffer and tracks elapsed time.
// States: Idle -> Recording -> Finalizing -> Idle. Only one session can
// be active at a time; Finalizing always returns to Idle whether the
// session produced a payload or was discarded.
type Recorder struct {
	mu      sync.Mutex
	log     *slog.Logger
	device  CaptureDevice
	state   RecorderState
	buf     bytes.Buffer
	elapsed int
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewRecorder(log *slog.Logger, device CaptureDevice) *Recorder {
	return &Recorder{log: log, device: device}
}

// Start opens the capture device and begins accumulating frames.
// The elapsed counter ticks once per second for the whole session.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Idle {
		return apperrors.ErrRecorderBusy
	}

	frames, err := r.device.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPermissionDenied, err)
	}

	captureCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.state = Recording
	r.buf.Reset()
	r.elapsed = 0

	go r.capture(captureCtx, frames, r.done)
	r.log.Debug("Recording started")
	return nil
}

func (r *Recorder) capture(ctx context.Context, frames <-chan []byte, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			r.elapsed++
			r.mu.Unlock()
		case frame, ok := <-frames:
			if !ok {
				// Device stopped producing; whatever is buffered
				// is still usable at stop time.
				return
			}
			r.mu.Lock()
			r.buf.Write(frame)
			r.mu.Unlock()
		}
	}
}

// Stop finalizes the session and returns the packaged voice note.
// The elapsed seconds at the moment of stop become the duration.
func (r *Recorder) Stop() (VoiceNote, error) {
	r.mu.Lock()
	if r.state != Recording {
		r.mu.Unlock()
		return VoiceNote{}, apperrors.ErrNotRecording
	}
	r.state = Finalizing
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done
	_ = r.device.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	note := VoiceNote{
		Data:            append([]byte(nil), r.buf.Bytes()...),
		DurationSeconds: r.elapsed,
	}
	r.buf.Reset()
	r.elapsed = 0
	r.state = Idle
	r.log.Debug("Recording finalized", "bytes", len(note.Data), "seconds", note.DurationSeconds)
	return note, nil
}

// Discard aborts the session without producing a note, e.g. when the
// selection was cleared while recording.
func (r *Recorder) Discard() {
	r.mu.Lock()
	if r.state != Recording {
		r.mu.Unlock()
		return
	}
	r.state = Finalizing
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done
	_ = r.device.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Reset()
	r.elapsed = 0
	r.state = Idle
	r.log.Debug("Recording discarded")
}

func (r *Recorder) State() RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Elapsed reports the current elapsed-seconds counter.
func (r *Recorder) Elapsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed
}
