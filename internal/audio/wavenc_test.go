package audio

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/go-audio/wav"
)

func TestEncodeWAVRoundTrip(t *testing.T) {
	// 100ms of a 440Hz tone at 16kHz.
	const sampleRate = 16000
	samples := make([]float32, sampleRate/10)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}

	data, err := EncodeWAV(samples, sampleRate)
	if err != nil {
		t.Fatalf("EncodeWAV() error = %v", err)
	}

	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Fatalf("output does not start with RIFF header")
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	dec.ReadInfo()
	if !dec.IsValidFile() {
		t.Fatal("decoder rejected encoded file")
	}
	if dec.SampleRate != sampleRate {
		t.Errorf("SampleRate = %d, want %d", dec.SampleRate, sampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("NumChans = %d, want 1", dec.NumChans)
	}
	if dec.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if len(buf.Data) != len(samples) {
		t.Errorf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
}

func TestEncodeWAVClampsOutOfRange(t *testing.T) {
	data, err := EncodeWAV([]float32{2.0, -2.0, 0}, 16000)
	if err != nil {
		t.Fatalf("EncodeWAV() error = %v", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if len(buf.Data) != 3 {
		t.Fatalf("decoded %d samples, want 3", len(buf.Data))
	}
	if buf.Data[0] != 32767 || buf.Data[1] != -32767 {
		t.Errorf("clamped samples = %d, %d, want 32767, -32767", buf.Data[0], buf.Data[1])
	}
}

func TestEncodeWAVEmpty(t *testing.T) {
	data, err := EncodeWAV(nil, 16000)
	if err != nil {
		t.Fatalf("EncodeWAV(nil) error = %v", err)
	}
	if len(data) == 0 {
		t.Error("empty input should still produce a valid header")
	}
}

func TestSeekBuffer(t *testing.T) {
	b := &seekBuffer{}
	if _, err := b.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Seek back and patch, the way the wav encoder fixes up sizes.
	if _, err := b.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if _, err := b.Write([]byte("HELLO")); err != nil {
		t.Fatalf("Write() after seek error = %v", err)
	}
	if got := string(b.data); got != "HELLO world" {
		t.Errorf("data = %q, want %q", got, "HELLO world")
	}

	if pos, _ := b.Seek(2, io.SeekCurrent); pos != 7 {
		t.Errorf("SeekCurrent pos = %d, want 7", pos)
	}
	if pos, _ := b.Seek(-1, io.SeekEnd); pos != 10 {
		t.Errorf("SeekEnd pos = %d, want 10", pos)
	}
	if _, err := b.Seek(-20, io.SeekStart); err == nil {
		t.Error("negative seek should error")
	}
}
