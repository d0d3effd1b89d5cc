// Package auth implements the access-token flow: store the token, verify it
// against GitHub and remember who it belongs to.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hellausefulsoftware/hublaunch/internal/host"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"github.com/hellausefulsoftware/hublaunch/internal/prefs"
)

// State is the position of the token flow
type State int

// Token flow states
const (
	StateUnset State = iota
	StatePending
	StateVerified
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StatePending:
		return "pending"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Verifier resolves a token to the login it belongs to
type Verifier interface {
	VerifyIdentity(ctx context.Context, token string) (string, error)
}

// Flow runs token verification against a preference store
type Flow struct {
	store     prefs.Store
	verifier  Verifier
	notifier  host.Notifier
	dismisser host.Dismisser
	// overriddenBy names an environment variable whose token is used for
	// requests instead of the stored one
	overriddenBy string

	mu    sync.Mutex
	state State
}

// NewFlow creates a token flow. The initial state reflects what is already stored.
func NewFlow(store prefs.Store, verifier Verifier, notifier host.Notifier, dismisser host.Dismisser) *Flow {
	f := &Flow{
		store:     store,
		verifier:  verifier,
		notifier:  notifier,
		dismisser: dismisser,
	}

	switch {
	case prefs.Token(store) == "":
		f.state = StateUnset
	case prefs.ViewerHandle(store) != "":
		f.state = StateVerified
	default:
		f.state = StateRejected
	}
	return f
}

// SetOverride records that requests use the token from env instead of the
// stored one, so a successful verification can say so
func (f *Flow) SetOverride(env string) {
	f.overriddenBy = env
}

// State returns the current flow state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// SetToken stores token and verifies it. The token is kept even when
// verification fails; the viewer handle is only written on success and is
// cleared on rejection so it never outlives the token it was verified with.
func (f *Flow) SetToken(ctx context.Context, token string) State {
	logger := logging.WithField("action", "setToken")

	if err := f.store.Set(prefs.KeyToken, token); err != nil {
		logger.Error("Failed to store token", "error", err)
		f.reject()
		return StateRejected
	}
	f.setState(StatePending)

	login, err := f.verifier.VerifyIdentity(ctx, token)
	if err != nil || login == "" {
		logger.Warn("Token verification failed", "error", err)
		f.clearHandle(logger)
		f.reject()
		return StateRejected
	}

	if err := f.store.Set(prefs.KeyViewerHandle, login); err != nil {
		logger.Error("Failed to store viewer handle", "error", err)
		f.clearHandle(logger)
		f.reject()
		return StateRejected
	}

	logger.Info("Token verified", "login", login)
	f.setState(StateVerified)
	body := "Your access token was set successfully."
	if f.overriddenBy != "" {
		logger.Warn("Stored token is overridden by the environment", "env", f.overriddenBy)
		body += " " + f.overriddenBy + " is set and is used for GitHub requests instead."
	}
	f.notifier.Notify(host.Notification{
		Title: "👋 Hi @" + login,
		Body:  body,
	})
	if f.dismisser != nil {
		f.dismisser.Dismiss()
	}
	return StateVerified
}

func (f *Flow) clearHandle(logger *slog.Logger) {
	if prefs.ViewerHandle(f.store) == "" {
		return
	}
	if err := f.store.Set(prefs.KeyViewerHandle, ""); err != nil {
		logger.Error("Failed to clear viewer handle", "error", err)
	}
}

func (f *Flow) reject() {
	f.setState(StateRejected)
	f.notifier.Notify(host.Notification{
		Title: "That looks like an invalid token",
		Body:  "Please try again by going back to settings.",
	})
}
