package inject

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// RobotTypist synthesizes keystrokes with robotgo.
type RobotTypist struct{}

var _ Typist = RobotTypist{}

// TypeText types the whole string into the focused application. robotgo
// handles per-character pacing, so long text preserves the clipboard but
// takes longer to land.
func (RobotTypist) TypeText(text string) error {
	robotgo.Type(text)
	return nil
}

// TapKey presses key with the given modifiers.
func (RobotTypist) TapKey(key string, modifiers ...string) error {
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("inject: key tap %s: %w", key, err)
	}
	return nil
}

// RobotClipboard is the system clipboard via robotgo.
type RobotClipboard struct{}

var _ Clipboard = RobotClipboard{}

func (RobotClipboard) WriteText(text string) error {
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("inject: write to clipboard: %w", err)
	}
	return nil
}

func (RobotClipboard) ReadText() (string, error) {
	return robotgo.ReadAll()
}
