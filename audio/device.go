package audio

import "context"

// NullCaptureDevice produces no audio frames. Real microphone
// integration belongs to the presentation layer; this keeps the engine
// wirable without one.
type NullCaptureDevice struct {
	frames chan []byte
}

func (d *NullCaptureDevice) Open(_ context.Context) (<-chan []byte, error) {
	d.frames = make(chan []byte)
	return d.frames, nil
}

func (d *NullCaptureDevice) Close() error {
	if d.frames != nil {
		close(d.frames)
		d.frames = nil
	}
	return nil
}

// NullPlayer discards audio and reports completion immediately.
type NullPlayer struct{}

func (NullPlayer) Start(_ []byte, onDone func()) error {
	go onDone()
	return nil
}

func (NullPlayer) Stop() {}
