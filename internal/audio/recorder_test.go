package audio

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	r := &Recorder{sampleRate: 16000, channels: 1}

	tests := []struct {
		samples int
		want    time.Duration
	}{
		{0, 0},
		{16000, time.Second},
		{8000, 500 * time.Millisecond},
		{4800, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := r.Duration(tt.samples); got != tt.want {
			t.Errorf("Duration(%d) = %v, want %v", tt.samples, got, tt.want)
		}
	}
}

func TestDurationStereo(t *testing.T) {
	r := &Recorder{sampleRate: 16000, channels: 2}
	if got := r.Duration(32000); got != time.Second {
		t.Errorf("Duration(32000) = %v, want 1s for 2 channels", got)
	}
}

func TestNewRecorderAndClose(t *testing.T) {
	r, err := NewRecorder(16000, 1)
	if err != nil {
		t.Skipf("no audio backend available: %v", err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if r.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", r.SampleRate())
	}
	if r.IsRecording() {
		t.Error("IsRecording() = true before Start")
	}
	if got := r.Stop(); got != nil {
		t.Errorf("Stop() without Start = %v, want nil", got)
	}
}
