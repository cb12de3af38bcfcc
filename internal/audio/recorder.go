// Package audio captures microphone input and encodes it for the
// transcription backend.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// Recorder captures audio from the default microphone into a float32
// buffer suitable for speech-to-text.
type Recorder struct {
	ctx        *malgo.AllocatedContext
	sampleRate uint32
	channels   uint32

	mu        sync.Mutex
	device    *malgo.Device
	samples   []float32
	recording bool
}

// NewRecorder creates a new audio recorder. Call Close when done.
func NewRecorder(sampleRate, channels uint32) (*Recorder, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}

	return &Recorder{
		ctx:        ctx,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// SampleRate returns the configured capture rate.
func (r *Recorder) SampleRate() uint32 {
	return r.sampleRate
}

// Start begins capturing from the default microphone. Captured frames
// accumulate in an internal buffer until Stop.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return fmt.Errorf("already recording")
	}
	r.samples = r.samples[:0]
	r.recording = true
	r.mu.Unlock()

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = r.channels
	cfg.SampleRate = r.sampleRate

	device, err := malgo.InitDevice(r.ctx.Context, cfg, malgo.DeviceCallbacks{Data: r.onData})
	if err != nil {
		r.abort()
		return fmt.Errorf("initializing capture device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		r.abort()
		return fmt.Errorf("starting capture device: %w", err)
	}

	r.mu.Lock()
	r.device = device
	r.mu.Unlock()

	return nil
}

// Stop ends the capture and returns a copy of the recorded samples.
// Returns nil if the recorder was not recording.
func (r *Recorder) Stop() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}

	if r.device != nil {
		r.device.Uninit()
		r.device = nil
	}
	r.recording = false

	out := make([]float32, len(r.samples))
	copy(out, r.samples)
	return out
}

// IsRecording reports whether a capture is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Duration converts a sample count at the recorder's rate into wall time.
func (r *Recorder) Duration(sampleCount int) time.Duration {
	frames := sampleCount / int(r.channels)
	return time.Duration(frames) * time.Second / time.Duration(r.sampleRate)
}

// Close releases all audio resources.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.device != nil {
		r.device.Uninit()
		r.device = nil
	}
	r.recording = false
	r.mu.Unlock()

	if r.ctx != nil {
		if err := r.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninitializing audio context: %w", err)
		}
		r.ctx.Free()
	}

	return nil
}

// abort clears the recording flag after a failed Start.
func (r *Recorder) abort() {
	r.mu.Lock()
	r.recording = false
	r.mu.Unlock()
}

// onData is the malgo callback for captured frames, delivered as raw
// little-endian float32 bytes.
func (r *Recorder) onData(_, pSample []byte, frameCount uint32) {
	want := int(frameCount*r.channels) * 4
	if want > len(pSample) {
		want = len(pSample) &^ 3
	}

	r.mu.Lock()
	for off := 0; off+4 <= want; off += 4 {
		bits := binary.LittleEndian.Uint32(pSample[off : off+4])
		r.samples = append(r.samples, math.Float32frombits(bits))
	}
	r.mu.Unlock()
}
