package store

import "sync"

// Theme holds the dark-mode flag. Reading a persisted preference at startup
// and writing it back on change is the caller's job.
type Theme struct {
	mu   sync.Mutex
	dark bool
}

func NewTheme(dark bool) *Theme {
	return &Theme{dark: dark}
}

// Toggle flips the mode and returns the new value.
func (t *Theme) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = !t.dark
	return t.dark
}

func (t *Theme) SetMode(dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = dark
}

func (t *Theme) Dark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}
