package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hellausefulsoftware/hublaunch/internal/auth"
	"github.com/hellausefulsoftware/hublaunch/internal/builder"
	"github.com/hellausefulsoftware/hublaunch/internal/cli"
	"github.com/hellausefulsoftware/hublaunch/internal/config"
	"github.com/hellausefulsoftware/hublaunch/internal/github"
	"github.com/hellausefulsoftware/hublaunch/internal/host"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"github.com/hellausefulsoftware/hublaunch/internal/prefs"
	"github.com/hellausefulsoftware/hublaunch/internal/router"
	"github.com/hellausefulsoftware/hublaunch/internal/tui"
	"github.com/spf13/cobra"
)

// flags shared by every command
type flags struct {
	modifier bool
	open     bool
	json     bool
	tui      bool
	logLevel string
	logJSON  bool
}

func main() {
	logging.Initialize(nil)
	// stdout carries menu output
	host.RedirectBrowserOutput(os.Stderr)

	f := &flags{}
	rootCmd := newRootCmd(f)
	if err := rootCmd.Execute(); err != nil {
		reportError(f, err)
		os.Exit(1)
	}
}

func newRootCmd(f *flags) *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:   "hublaunch [input...]",
		Short: "Jump to GitHub accounts, repositories, issues and commits from a short query",
		Long: `hublaunch turns a short query into GitHub destinations:
  octocat              account menu
  rails/rails          repository menu
  rails/rails#123      issue or pull request
  rails/rails/pull/7   the same, by path
  a1b2c3d              pull requests containing a commit
  https://…            shorten or add a link to a task manager

With no input the default menu is shown. Use --tui to browse interactively.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}

			level := cfg.Logging.Level
			if cmd.Flags().Changed("log-level") {
				level = f.logLevel
			}
			logging.Initialize(&logging.Config{
				Level:      logging.ParseLevel(level),
				Output:     os.Stderr,
				JSONFormat: f.logJSON || cfg.Logging.JSONFormat,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if f.tui {
				return runTUI(cfg, tui.Options{Query: input})
			}
			executor, err := newExecutor(cfg, f)
			if err != nil {
				return err
			}
			return executor.Execute(input, f.modifier)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&f.modifier, "modifier", "m", false, "Open the result directly, as holding the launcher's modifier key does")
	pf.BoolVar(&f.open, "open", false, "Open the result when it is a single link")
	pf.BoolVar(&f.json, "json", false, "Print items as JSON")
	pf.BoolVar(&f.tui, "tui", false, "Run in Terminal User Interface mode")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Set logging level (debug, info, warn, error)")
	pf.BoolVar(&f.logJSON, "log-json", false, "Output logs in JSON format")

	actionCmd := &cobra.Command{
		Use:   "action <name> [argument]",
		Short: "Run a named action, as selecting a deferred item does",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, argument := args[0], ""
			if len(args) == 2 {
				argument = args[1]
			}
			if f.tui {
				return runTUI(cfg, tui.Options{Action: name, Argument: argument})
			}
			executor, err := newExecutor(cfg, f)
			if err != nil {
				return err
			}
			return executor.ExecuteAction(name, argument, f.modifier)
		},
	}

	urlCmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Handle a URL sent to the launcher, such as hublaunch://action/setToken?token=…",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executor, err := newExecutor(cfg, f)
			if err != nil {
				return err
			}
			return executor.ExecuteURL(args[0], f.modifier)
		},
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the settings menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.tui {
				return runTUI(cfg, tui.Options{Action: builder.ActionSettingsMenu})
			}
			executor, err := newExecutor(cfg, f)
			if err != nil {
				return err
			}
			return executor.ExecuteAction(builder.ActionSettingsMenu, "", f.modifier)
		},
	}

	actionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "List the action names accepted by the action command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRouter(cfg, host.NewWriterNotifier(os.Stderr), host.DismissFunc(nil))
			if err != nil {
				return err
			}
			if f.json {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(r.Actions())
			}
			for _, name := range r.Actions() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(actionCmd, urlCmd, settingsCmd, actionsCmd)
	return rootCmd
}

// newRouter wires the router against GitHub and the local system
func newRouter(cfg *config.Config, notifier host.Notifier, dismisser host.Dismisser) (*router.Router, error) {
	store, err := prefs.OpenFileStore(cfg.Preferences.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	token := func() string {
		if cfg.GitHub.Token != "" {
			return cfg.GitHub.Token
		}
		return prefs.Token(store)
	}
	client, err := github.NewClient(cfg.GitHub.APIURL, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	flow := auth.NewFlow(store, client, notifier, dismisser)
	if cfg.GitHub.Token != "" {
		if prefs.Token(store) != "" && prefs.Token(store) != cfg.GitHub.Token {
			logging.Warn("GITHUB_TOKEN overrides the stored access token")
		}
		flow.SetOverride("GITHUB_TOKEN")
	}

	return router.New(router.Options{
		Builder: builder.New(client, cfg.Search.CommitURL),
		Source:  client,
		Prefs:   store,
		Flow:    flow,
		Host: host.Host{
			Opener:    host.BrowserOpener{},
			Clipboard: host.SystemClipboard{},
			Notifier:  notifier,
			Dismisser: dismisser,
			Shortener: host.NewHTTPShortener(cfg.Shortener.Endpoint),
		},
		TaskManagerURL: cfg.TaskManager.URL,
	}), nil
}

func newExecutor(cfg *config.Config, f *flags) (*cli.Executor, error) {
	r, err := newRouter(cfg, host.NewWriterNotifier(os.Stderr), host.DismissFunc(nil))
	if err != nil {
		return nil, err
	}
	return cli.NewExecutor(r, os.Stdout, cli.Options{
		JSON:    f.json,
		Open:    f.open,
		Timeout: cfg.GitHub.Timeout,
	}), nil
}

func runTUI(cfg *config.Config, opts tui.Options) error {
	session := tui.NewSession()
	r, err := newRouter(cfg, session, session)
	if err != nil {
		return err
	}
	opts.Timeout = cfg.GitHub.Timeout

	err = tui.Run(r, session, opts)

	// Notifications raised by the last action are printed after the screen closes
	notifier := host.NewWriterNotifier(os.Stderr)
	for _, n := range session.Drain() {
		notifier.Notify(n)
	}
	return err
}

func reportError(f *flags, err error) {
	if f.json {
		data, _ := json.Marshal(map[string]string{"status": "error", "message": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
