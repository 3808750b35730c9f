package source

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Window limits a source to events stamped within [Since, Until]. A zero
// bound is open.
type Window struct {
	Since time.Time
	Until time.Time
}

// ParseWindow builds a Window from user supplied bounds in any layout
// dateparse understands. Bounds without a zone are read as UTC. Empty strings
// leave the bound open.
func ParseWindow(since, until string) (Window, error) {
	var w Window
	var err error
	if since != "" {
		if w.Since, err = dateparse.ParseIn(since, time.UTC); err != nil {
			return Window{}, fmt.Errorf("parse since %q: %w", since, err)
		}
	}
	if until != "" {
		if w.Until, err = dateparse.ParseIn(until, time.UTC); err != nil {
			return Window{}, fmt.Errorf("parse until %q: %w", until, err)
		}
	}
	if !w.Since.IsZero() && !w.Until.IsZero() && w.Until.Before(w.Since) {
		return Window{}, fmt.Errorf("until %s is before since %s", until, since)
	}
	return w, nil
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && t.After(w.Until) {
		return false
	}
	return true
}
