// Package cli is the non-interactive host: it runs one launcher request and
// prints the resulting items.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
)

// Runner is the part of the router the executor drives
type Runner interface {
	Run(ctx context.Context, input string, modifier bool) ([]menu.Item, error)
	RunWithURL(ctx context.Context, rawURL string, modifier bool) ([]menu.Item, error)
	Dispatch(ctx context.Context, action, argument string, modifier bool) ([]menu.Item, error)
	Select(ctx context.Context, item menu.Item, modifier bool) ([]menu.Item, error)
}

// Options controls how results are handled
type Options struct {
	// JSON prints items in the launcher script-output format
	JSON bool
	// Open opens the result when it is a single URL item, as the modifier does
	Open bool
	// Timeout bounds each request; zero means no bound
	Timeout time.Duration
}

// Executor runs launcher requests and renders their results
type Executor struct {
	runner Runner
	out    io.Writer
	opts   Options
}

// NewExecutor creates a new executor writing to out
func NewExecutor(runner Runner, out io.Writer, opts Options) *Executor {
	return &Executor{runner: runner, out: out, opts: opts}
}

func (e *Executor) requestContext() (context.Context, context.CancelFunc) {
	if e.opts.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), e.opts.Timeout)
}

// Execute routes raw input
func (e *Executor) Execute(input string, modifier bool) error {
	ctx, cancel := e.requestContext()
	defer cancel()

	logging.Debug("Executing input", "input", input, "modifier", modifier)
	items, err := e.runner.Run(ctx, input, modifier)
	if err != nil {
		return err
	}
	return e.finish(ctx, items, modifier)
}

// ExecuteURL routes a URL handed to the launcher
func (e *Executor) ExecuteURL(rawURL string, modifier bool) error {
	ctx, cancel := e.requestContext()
	defer cancel()

	items, err := e.runner.RunWithURL(ctx, rawURL, modifier)
	if err != nil {
		return err
	}
	return e.finish(ctx, items, modifier)
}

// ExecuteAction dispatches a named action, as selecting a deferred item does
func (e *Executor) ExecuteAction(action, argument string, modifier bool) error {
	ctx, cancel := e.requestContext()
	defer cancel()

	items, err := e.runner.Dispatch(ctx, action, argument, modifier)
	if err != nil {
		return fmt.Errorf("action %s failed: %w", action, err)
	}
	return e.finish(ctx, items, modifier)
}

// finish opens a lone URL item when asked to, otherwise renders items.
// Nil items mean a terminal action already ran.
func (e *Executor) finish(ctx context.Context, items []menu.Item, modifier bool) error {
	if items == nil {
		if e.opts.JSON {
			return e.writeJSON(map[string]string{"status": "success"})
		}
		return nil
	}

	if (modifier || e.opts.Open) && len(items) == 1 && items[0].IsTerminal() {
		if _, err := e.runner.Select(ctx, items[0], modifier); err != nil {
			return err
		}
		if e.opts.JSON {
			return e.writeJSON(map[string]string{"status": "opened", "url": items[0].URL})
		}
		return nil
	}

	return e.Render(items)
}

// Render prints items as JSON or styled text
func (e *Executor) Render(items []menu.Item) error {
	if e.opts.JSON {
		return e.writeJSON(items)
	}
	_, err := io.WriteString(e.out, RenderText(items))
	return err
}

func (e *Executor) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(e.out, string(data))
	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0072B2"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	targetStyle   = lipgloss.NewStyle().Faint(true)
	drillStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E69F00"))
)

// RenderText formats items one per line: title, subtitle and what
// selecting the item does.
func RenderText(items []menu.Item) string {
	if len(items) == 0 {
		return subtitleStyle.Render("No results") + "\n"
	}

	var s string
	for _, item := range items {
		line := titleStyle.Render(item.Title)
		if item.Subtitle != "" {
			line += "  " + subtitleStyle.Render(item.Subtitle)
		}

		target := item.URL
		if !item.IsTerminal() {
			target = "→ " + item.Action
			if item.ActionArgument != "" {
				target += " " + item.ActionArgument
			}
			if item.ActionReturnsItems {
				target = drillStyle.Render(target)
			}
		}
		s += line + "\n    " + targetStyle.Render(target) + "\n"
	}
	return s
}
