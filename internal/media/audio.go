package media

import (
	"errors"
	"fmt"
)

// MaxRecording is the hard recording ceiling in seconds.
const MaxRecording = 30

var (
	ErrRecording    = errors.New("recording in progress")
	ErrNotRecording = errors.New("not recording")
	ErrNoDevice     = errors.New("no audio input device")
)

type AudioState int

const (
	Idle AudioState = iota
	Recording
	RecordedReady
	UploadedReady
)

func (s AudioState) String() string {
	switch s {
	case Recording:
		return "recording"
	case RecordedReady:
		return "recorded"
	case UploadedReady:
		return "uploaded"
	default:
		return "idle"
	}
}

// Device opens an exclusive capture stream on an audio input.
type Device interface {
	Open() (Stream, error)
}

// Stream is a live capture. Finish and Abort both release the device.
type Stream interface {
	Finish() (Blob, error)
	Abort() error
}

// AudioCapture owns the single current audio source of a FastR draft: a
// recording in progress, a recorded clip or an uploaded file.
type AudioCapture struct {
	device   Device
	previews PreviewStore

	state      AudioState
	stream     Stream
	elapsed    int
	current    Blob
	preview    string
	generation int
}

func NewAudioCapture(device Device, previews PreviewStore) *AudioCapture {
	return &AudioCapture{device: device, previews: previews}
}

func (a *AudioCapture) State() AudioState { return a.state }

// Elapsed is the recording time in whole seconds, capped at MaxRecording.
func (a *AudioCapture) Elapsed() int { return a.elapsed }

// Current returns the ready audio source, if any.
func (a *AudioCapture) Current() (Blob, bool) {
	if a.state != RecordedReady && a.state != UploadedReady {
		return Blob{}, false
	}
	return a.current, true
}

func (a *AudioCapture) PreviewURL() string { return a.preview }

// InputGeneration changes whenever the audio file input must be cleared so
// picking the same path again registers as a new selection.
func (a *AudioCapture) InputGeneration() int { return a.generation }

// Start opens the device and begins recording. A ready source is replaced
// only once the device has opened.
func (a *AudioCapture) Start() error {
	if a.state == Recording {
		return ErrRecording
	}
	if a.device == nil {
		return ErrNoDevice
	}
	stream, err := a.device.Open()
	if err != nil {
		return fmt.Errorf("open audio input: %w", err)
	}
	a.release()
	a.stream = stream
	a.elapsed = 0
	a.state = Recording
	return nil
}

// Tick advances the recording clock by one second and reports whether the
// ceiling forced a stop.
func (a *AudioCapture) Tick() (bool, error) {
	if a.state != Recording {
		return false, nil
	}
	a.elapsed++
	if a.elapsed < MaxRecording {
		return false, nil
	}
	a.elapsed = MaxRecording
	return true, a.finish()
}

func (a *AudioCapture) Stop() error {
	if a.state != Recording {
		return ErrNotRecording
	}
	return a.finish()
}

// Upload adopts a file as the current audio. Oversized files are rejected
// without touching the current state.
func (a *AudioCapture) Upload(b Blob) error {
	if a.state == Recording {
		return ErrRecording
	}
	if err := AudioLimit.Check(b.Len()); err != nil {
		return err
	}
	a.release()
	b.Size = b.Len()
	return a.adopt(b, UploadedReady)
}

// Discard drops the ready source and clears the file input.
func (a *AudioCapture) Discard() {
	if a.state == Recording {
		return
	}
	a.release()
	a.state = Idle
	a.generation++
}

// Close tears the capture down, releasing the device and any preview.
func (a *AudioCapture) Close() error {
	var err error
	if a.stream != nil {
		err = a.stream.Abort()
		a.stream = nil
	}
	a.release()
	a.state = Idle
	a.elapsed = 0
	if err != nil {
		return fmt.Errorf("release audio input: %w", err)
	}
	return nil
}

func (a *AudioCapture) finish() error {
	stream := a.stream
	a.stream = nil
	a.state = Idle
	clip, err := stream.Finish()
	if err != nil {
		_ = stream.Abort()
		return fmt.Errorf("finish recording: %w", err)
	}
	clip.Size = clip.Len()
	return a.adopt(clip, RecordedReady)
}

func (a *AudioCapture) adopt(b Blob, state AudioState) error {
	a.current = b
	a.state = state
	if a.previews == nil {
		return nil
	}
	handle, err := a.previews.Create(b)
	if err != nil {
		return fmt.Errorf("create audio preview: %w", err)
	}
	a.preview = handle
	return nil
}

func (a *AudioCapture) release() {
	if a.previews != nil {
		a.previews.Revoke(a.preview)
	}
	a.preview = ""
	a.current = Blob{}
}
