package transcribe

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voxtype/voxtype/internal/config"
)

func TestWhisperAPIProcess(t *testing.T) {
	var gotAuth, gotModel, gotLanguage string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")

		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
		} else {
			gotFile, _ = io.ReadAll(f)
			f.Close()
		}

		json.NewEncoder(w).Encode(map[string]string{"text": "  hello there \n"})
	}))
	defer srv.Close()

	w := NewWhisperAPI(&config.STTConfig{
		APIKey:   "sk-test",
		BaseURL:  srv.URL,
		Model:    "whisper-1",
		Language: "en",
	}, 16000)

	text, err := w.Process(make([]float32, 1600))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if text != "hello there" {
		t.Errorf("text = %q, want %q (trimmed)", text, "hello there")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model field = %q, want whisper-1", gotModel)
	}
	if gotLanguage != "en" {
		t.Errorf("language field = %q, want en", gotLanguage)
	}
	if !bytes.HasPrefix(gotFile, []byte("RIFF")) {
		t.Error("uploaded file is not a WAV")
	}
}

func TestWhisperAPIAutoLanguageOmitted(t *testing.T) {
	var hasLanguage bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(10 << 20)
		_, hasLanguage = r.MultipartForm.Value["language"]
		json.NewEncoder(w).Encode(map[string]string{"text": "ok"})
	}))
	defer srv.Close()

	w := NewWhisperAPI(&config.STTConfig{APIKey: "sk-test", BaseURL: srv.URL, Language: "auto"}, 16000)
	if _, err := w.Process(make([]float32, 160)); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if hasLanguage {
		t.Error("language field sent for auto-detect")
	}
}

func TestWhisperAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	w := NewWhisperAPI(&config.STTConfig{APIKey: "sk-bad", BaseURL: srv.URL}, 16000)
	_, err := w.Process(make([]float32, 160))
	if err == nil {
		t.Fatal("Process() should fail on 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want mention of status 401", err)
	}
}

func TestWhisperAPIMissingKey(t *testing.T) {
	w := NewWhisperAPI(&config.STTConfig{}, 16000)
	if _, err := w.Process(make([]float32, 160)); err == nil {
		t.Fatal("Process() without API key should fail")
	}
}

func TestNewBackendSelection(t *testing.T) {
	if _, err := New(&config.STTConfig{Backend: "whisper-api", APIKey: "k"}, 16000); err != nil {
		t.Errorf("New(whisper-api) error = %v", err)
	}
	if _, err := New(&config.STTConfig{Backend: ""}, 16000); err != nil {
		t.Errorf("New(empty backend) error = %v", err)
	}
	if _, err := New(&config.STTConfig{Backend: "parakeet"}, 16000); err == nil {
		t.Error("New(parakeet) should fail")
	}
}
