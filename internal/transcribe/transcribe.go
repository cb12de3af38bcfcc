// Package transcribe turns captured audio into text.
//
// Transcription is an external collaborator of the injection engine: the
// daemon hands the engine a finished string and nothing more. The only
// backend is the hosted Whisper API.
package transcribe

import (
	"fmt"

	"github.com/voxtype/voxtype/internal/config"
)

// Transcriber converts audio samples to text.
type Transcriber interface {
	// Process transcribes mono float32 audio samples to text.
	Process(samples []float32) (string, error)
	// Close releases backend resources.
	Close() error
}

// New creates a Transcriber based on the config backend setting.
func New(cfg *config.STTConfig, sampleRate int) (Transcriber, error) {
	switch cfg.Backend {
	case "whisper-api", "":
		return NewWhisperAPI(cfg, sampleRate), nil
	default:
		return nil, fmt.Errorf("transcribe: unknown backend %q (supported: whisper-api)", cfg.Backend)
	}
}
