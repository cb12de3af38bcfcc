package inject

import "log"

// releaseFocus hands input focus back to the previously active external
// application: hide the host window if it is visible, blur it if it is
// focused, then minimize it unconditionally. The window being already
// hidden or minimized is not an error, and a step that fails outright is
// logged and skipped; focus problems never stop an injection attempt.
func releaseFocus(w HostWindow, logger *log.Logger) {
	if w == nil || w.IsDestroyed() {
		return
	}

	steps := []struct {
		name   string
		guard  func() bool
		action func() error
	}{
		{"hide", w.IsVisible, w.Hide},
		{"blur", w.IsFocused, w.Blur},
		{"minimize", func() bool { return true }, w.Minimize},
	}

	for _, s := range steps {
		if !s.guard() {
			continue
		}
		if err := s.action(); err != nil {
			logger.Printf("inject: focus release: %s: %v", s.name, err)
		}
	}
}
