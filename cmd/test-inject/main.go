// Command test-inject is a manual test for the injection engine.
// It waits 3 seconds, then types or pastes test text through the full
// orchestrator. Focus a text editor before the countdown finishes.
//
// Usage:
//
//	go run ./cmd/test-inject [--paste] [--text "..."]
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/voxtype/voxtype/internal/inject"
)

func main() {
	paste := flag.Bool("paste", false, "force the clipboard-paste path")
	text := flag.String("text", "Hello from voxtype!\nSecond line, with a\ttab.", "text to inject")
	focusSettle := flag.Duration("focus-settle", inject.DefaultFocusSettle, "wait between focus release and typing")
	pasteSettle := flag.Duration("paste-settle", inject.DefaultPasteSettle, "wait between clipboard write and paste combo")
	flag.Parse()

	fmt.Printf("Will inject %q in 3 seconds (paste=%v)...\n", *text, *paste)
	fmt.Println("Focus a text editor now!")

	for i := 3; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		time.Sleep(time.Second)
	}

	engine := inject.NewOrchestrator(inject.RobotTypist{}, inject.RobotClipboard{}, inject.Options{
		FocusSettle: *focusSettle,
		PasteSettle: *pasteSettle,
		ForcePaste:  *paste,
		Logger:      log.Default(),
	})
	defer engine.Close()

	out := engine.Inject(inject.NewRequest(*text), nil)
	switch out.Status {
	case inject.StatusTyped:
		fmt.Println("\nDone (typed)!")
	case inject.StatusPasted:
		fmt.Println("\nDone (pasted via clipboard)!")
	case inject.StatusFailed:
		fmt.Printf("\nFailed: %v\n", out.Err)
	}
}
