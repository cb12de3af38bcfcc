package transcribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/voxtype/voxtype/internal/audio"
	"github.com/voxtype/voxtype/internal/config"
)

const defaultWhisperAPIURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperAPI transcribes audio through an OpenAI-compatible
// /v1/audio/transcriptions endpoint.
type WhisperAPI struct {
	apiKey     string
	baseURL    string
	model      string
	language   string
	sampleRate int
	client     *http.Client
}

var _ Transcriber = (*WhisperAPI)(nil)

// NewWhisperAPI creates a Whisper API transcriber. sampleRate is the rate
// of the samples that will be passed to Process.
func NewWhisperAPI(cfg *config.STTConfig, sampleRate int) *WhisperAPI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultWhisperAPIURL
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}

	return &WhisperAPI{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		language:   cfg.Language,
		sampleRate: sampleRate,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Process uploads the samples as WAV and returns the transcribed text,
// trimmed of surrounding whitespace.
func (w *WhisperAPI) Process(samples []float32) (string, error) {
	if w.apiKey == "" {
		return "", fmt.Errorf("transcribe: API key required")
	}

	wavData, err := audio.EncodeWAV(samples, w.sampleRate)
	if err != nil {
		return "", fmt.Errorf("transcribe: encode wav: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("transcribe: create form file: %w", err)
	}
	if _, err := part.Write(wavData); err != nil {
		return "", fmt.Errorf("transcribe: write audio data: %w", err)
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("transcribe: write model field: %w", err)
	}
	// The API rejects "auto"; an absent field means auto-detect.
	if w.language != "" && w.language != "auto" {
		if err := mw.WriteField("language", w.language); err != nil {
			return "", fmt.Errorf("transcribe: write language field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("transcribe: close multipart writer: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.baseURL, &body)
	if err != nil {
		return "", fmt.Errorf("transcribe: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("transcribe: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcribe: API returned %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("transcribe: parse response: %w", err)
	}

	return strings.TrimSpace(result.Text), nil
}

// Close is a no-op; the API backend holds no local resources.
func (w *WhisperAPI) Close() error {
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
