// Command voxtype is a push-to-talk voice-typing daemon: hold the hotkey,
// speak, release, and the transcription is typed into whatever application
// has focus (or pasted via the clipboard when typing fails).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/voxtype/voxtype/internal/audio"
	"github.com/voxtype/voxtype/internal/config"
	"github.com/voxtype/voxtype/internal/hotkey"
	"github.com/voxtype/voxtype/internal/inject"
	"github.com/voxtype/voxtype/internal/transcribe"
)

// minDictation filters out accidental hotkey taps.
const minDictation = 300 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/voxtype/config.yaml)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	printBanner(cfg)

	recorder, err := audio.NewRecorder(cfg.Audio.SampleRate, cfg.Audio.Channels)
	if err != nil {
		log.Fatalf("Failed to initialize audio recorder: %v\n\nEnsure microphone access is granted in your system privacy settings.", err)
	}
	log.Println("Audio recorder ready")

	transcriber, err := transcribe.New(&cfg.STT, int(cfg.Audio.SampleRate))
	if err != nil {
		recorder.Close()
		log.Fatalf("transcriber: %v", err)
	}

	engine := inject.NewOrchestrator(inject.RobotTypist{}, inject.RobotClipboard{}, inject.Options{
		FocusSettle:   time.Duration(cfg.Inject.FocusSettleMS) * time.Millisecond,
		PasteSettle:   time.Duration(cfg.Inject.PasteSettleMS) * time.Millisecond,
		PasteModifier: cfg.Inject.PasteModifier,
		ForcePaste:    cfg.Inject.Method == "paste",
		NoFallback:    cfg.Inject.Method == "type",
		Logger:        log.Default(),
	})
	log.Printf("Injection engine ready (method: %s)", cfg.Inject.Method)

	// Slots are reserved in dictation order; even when a later, shorter
	// dictation transcribes first, its text waits its turn.
	dispatch := newDispatcher(16, func(text string) {
		out := <-engine.Submit(inject.NewRequest(text), nil)
		switch out.Status {
		case inject.StatusTyped:
			log.Println("Text typed")
		case inject.StatusPasted:
			log.Println("Text pasted via clipboard")
		case inject.StatusFailed:
			log.Printf("ERROR: could not insert transcription: %v", out.Err)
		}
	})

	listener := hotkey.NewListener(cfg.Hotkey.Keys, cfg.Hotkey.Mode)
	log.Printf("Hotkey listener ready (%s, mode: %s)", strings.Join(cfg.Hotkey.Keys, "+"), cfg.Hotkey.Mode)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go listener.Start()

	log.Println("Ready! Press", strings.Join(cfg.Hotkey.Keys, "+"), "to dictate. Ctrl+C to quit.")

	events := listener.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				log.Println("Hotkey listener stopped")
				shutdown(dispatch, engine, recorder, transcriber)
				return
			}

			switch ev.Type {
			case hotkey.EventStart:
				if err := recorder.Start(); err != nil {
					log.Printf("ERROR: failed to start recording: %v", err)
					continue
				}
				log.Println("Recording...")

			case hotkey.EventStop:
				samples := recorder.Stop()
				if samples == nil {
					continue
				}

				duration := recorder.Duration(len(samples))
				if duration < minDictation {
					log.Printf("Recording too short (%s), skipping", duration.Round(time.Millisecond))
					continue
				}

				log.Printf("Captured %s of audio, transcribing...", duration.Round(100*time.Millisecond))

				// Transcription runs async, but its injection slot is
				// reserved now, so results land in dictation order.
				// The daemon is headless: no host window to release.
				slot := dispatch.reserve()
				go func(samples []float32) {
					start := time.Now()
					text, err := transcriber.Process(samples)
					if err != nil {
						log.Printf("ERROR: transcription failed: %v", err)
						slot <- ""
						return
					}

					elapsed := time.Since(start).Round(time.Millisecond)
					if text == "" {
						log.Printf("No speech detected (%s)", elapsed)
						slot <- ""
						return
					}
					log.Printf("Transcribed in %s: %q", elapsed, text)
					slot <- text
				}(samples)
			}

		case sig := <-sigCh:
			log.Printf("Received %s, shutting down...", sig)
			if recorder.IsRecording() {
				recorder.Stop()
			}
			shutdown(dispatch, engine, recorder, transcriber)
			log.Println("Goodbye!")
			// Exit directly to avoid gohook's C cleanup crash.
			// The OS reclaims the event hook on process exit.
			os.Exit(0)
		}
	}
}

// shutdown lets in-flight dictations finish injecting, then releases
// everything.
func shutdown(dispatch *dispatcher, engine *inject.Orchestrator, recorder *audio.Recorder, transcriber transcribe.Transcriber) {
	dispatch.close()
	engine.Close()
	recorder.Close()
	transcriber.Close()
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	log.Println("No config file found, using defaults")
	return config.Default(), nil
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config) {
	fmt.Println("===== voxtype =====")
	fmt.Printf("  Hotkey:  %s (%s mode)\n", strings.Join(cfg.Hotkey.Keys, "+"), cfg.Hotkey.Mode)
	fmt.Printf("  Audio:   %dHz, %dch\n", cfg.Audio.SampleRate, cfg.Audio.Channels)
	fmt.Printf("  Inject:  %s (settle %dms/%dms)\n", cfg.Inject.Method, cfg.Inject.FocusSettleMS, cfg.Inject.PasteSettleMS)
	fmt.Printf("  STT:     %s (%s)\n", cfg.STT.Backend, cfg.STT.Model)
	fmt.Printf("  Log:     %s\n", cfg.LogLevel)
	fmt.Println("===================")
}
