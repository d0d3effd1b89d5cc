package tui

import (
	"sync"

	"github.com/hellausefulsoftware/hublaunch/internal/host"
)

// Session collects the side effects the router reports while the TUI runs.
// It serves as the router's Notifier and Dismisser.
type Session struct {
	mu        sync.Mutex
	notes     []host.Notification
	dismissed bool
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// Notify queues n for display
func (s *Session) Notify(n host.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, n)
}

// Dismiss asks the TUI to exit once the current action completes
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = true
}

// Dismissed reports whether an action asked to exit
func (s *Session) Dismissed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissed
}

// Drain returns and clears the queued notifications
func (s *Session) Drain() []host.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.notes
	s.notes = nil
	return notes
}
