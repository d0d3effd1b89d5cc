// Package host provides the collaborators the launcher core hands side
// effects to: opening URLs, the clipboard, notifications and hiding the host.
package host

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"github.com/pkg/browser"
)

// Notification is a user-visible message
type Notification struct {
	Title string
	Body  string
}

// URLOpener opens a URL in the user's default handler
type URLOpener interface {
	OpenURL(rawURL string) error
}

// Clipboard reads and writes the system clipboard
type Clipboard interface {
	ReadString() (string, error)
	WriteString(text string) error
}

// Notifier shows a notification
type Notifier interface {
	Notify(n Notification)
}

// Dismisser hides the host after a terminal side effect
type Dismisser interface {
	Dismiss()
}

// Shortener turns a long link into a short one
type Shortener interface {
	Shorten(ctx context.Context, link string) (string, error)
}

// Host bundles the collaborators handed to the router
type Host struct {
	Opener    URLOpener
	Clipboard Clipboard
	Notifier  Notifier
	Dismisser Dismisser
	Shortener Shortener
}

// RedirectBrowserOutput sends the output of browser launches to w. It sets
// package state in pkg/browser, so call it once while wiring.
func RedirectBrowserOutput(w io.Writer) {
	browser.Stdout = w
}

// BrowserOpener opens URLs with the platform's default browser
type BrowserOpener struct{}

// OpenURL opens rawURL
func (BrowserOpener) OpenURL(rawURL string) error {
	logging.Debug("Opening URL", "url", rawURL)
	if err := browser.OpenURL(rawURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	return nil
}

// SystemClipboard uses the platform clipboard
type SystemClipboard struct{}

// ReadString returns the clipboard text
func (SystemClipboard) ReadString() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}

// WriteString replaces the clipboard text
func (SystemClipboard) WriteString(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

var (
	notificationTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5A56E0"))
	notificationBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// WriterNotifier prints notifications to a writer, styled for a terminal
type WriterNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterNotifier creates a notifier writing to out
func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

// Notify prints n
func (w *WriterNotifier) Notify(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()

	logging.Info("Notification", "title", n.Title)
	fmt.Fprintln(w.out, notificationTitleStyle.Render(n.Title))
	if n.Body != "" {
		fmt.Fprintln(w.out, notificationBodyStyle.Render(n.Body))
	}
}

// DismissFunc adapts a function to Dismisser. A nil DismissFunc does nothing.
type DismissFunc func()

// Dismiss calls f
func (f DismissFunc) Dismiss() {
	if f != nil {
		f()
	}
}

// TaskURL fills template (two %s verbs: title then notes) with a
// "Review" task for the resource at link.
func TaskURL(template, title, link string) string {
	todo := `Review "` + title + `"`
	return fmt.Sprintf(template, escapeComponent(todo), escapeComponent(link))
}

// escapeComponent percent-encodes s with spaces as %20
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
