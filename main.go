package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"streambot/chatbot"
	"streambot/config"
	"streambot/model"
	"streambot/render"
	"streambot/ui"
)

const Version = "v0.1.0"

type flags struct {
	endpoint  string
	csrfToken string
	timeout   time.Duration
	debug     bool
	format    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "streambot",
		Short:         "Chat with the StreamSavvy support bot from your terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.endpoint, "endpoint", "", "chatbot backend base URL (default from settings.toml)")
	pf.StringVar(&f.csrfToken, "csrf-token", "", "value sent in the X-CSRFToken header")
	pf.DurationVar(&f.timeout, "timeout", 0, "per-request timeout, 0 waits forever")
	pf.BoolVar(&f.debug, "debug", false, "write debug.log to the config directory")

	send := &cobra.Command{
		Use:   "send [message...]",
		Short: "Send one message and print the conversation",
		Long: "Send one message to the chatbot and print both sides of the exchange.\n" +
			"With no arguments the message is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, f, args)
		},
	}
	send.Flags().StringVar(&f.format, "format", "text", "output format: text or html")

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List the chat keybindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd, f)
		},
	}

	root.AddCommand(send, keys)
	return root
}

// loadConfig resolves settings.toml, .env and the environment, then applies
// any flags given on the command line.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("endpoint") {
		cfg.Endpoint = f.endpoint
	}
	if fl.Changed("csrf-token") {
		cfg.CSRFToken = f.csrfToken
	}
	if fl.Changed("timeout") {
		if f.timeout < 0 {
			return nil, fmt.Errorf("timeout must not be negative")
		}
		cfg.Timeout = f.timeout
	}

	config.InitDebugLog(cfg.ConfigDir(), f.debug)
	config.Log.Debug().
		Str("endpoint", cfg.Endpoint).
		Bool("csrf_token_set", cfg.CSRFToken != "").
		Dur("timeout", cfg.Timeout).
		Msg("config loaded")
	return cfg, nil
}

func newData(cfg *config.Config) (*model.Model, error) {
	client, err := chatbot.NewClient(cfg.Endpoint, cfg.CSRFToken, chatbot.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}
	return model.NewModel(client), nil
}

func runTUI(cmd *cobra.Command, f *flags) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal, use 'streambot send' instead")
	}

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return showStartupError(err)
	}
	data, err := newData(cfg)
	if err != nil {
		return showStartupError(err)
	}
	defer data.Shutdown()

	p := tea.NewProgram(
		ui.NewAppView(data, ui.NewKeymap(cfg.Keybindings)),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running streambot: %w", err)
	}
	return nil
}

func showStartupError(err error) error {
	errorModal := ui.NewErrorModal("Configuration Error", startupErrorMessage(err))
	if _, runErr := tea.NewProgram(errorModal, tea.WithAltScreen()).Run(); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}
	return err
}

// startupErrorMessage points at the settings file, which is where most
// startup failures are fixed.
func startupErrorMessage(err error) string {
	return fmt.Sprintf("%v\n\nSettings: %s", err, config.GetSettingsFilePath())
}

func runSend(cmd *cobra.Command, f *flags, args []string) error {
	if f.format != "text" && f.format != "html" {
		return fmt.Errorf("unknown format %q, want text or html", f.format)
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read message from stdin: %w", err)
		}
		text = string(raw)
	}

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	data, err := newData(cfg)
	if err != nil {
		return err
	}
	defer data.Shutdown()

	if !data.Exchange(text) {
		return fmt.Errorf("nothing to send")
	}

	out := cmd.OutOrStdout()
	if f.format == "html" {
		fmt.Fprint(out, render.HTMLTranscript(data.Transcript.Messages()))
		return nil
	}
	fmt.Fprint(out, render.PlainTranscript(data.Transcript.Messages()))
	return nil
}

func runKeys(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	kb := cfg.Keybindings

	out := cmd.OutOrStdout()
	for _, action := range config.Actions() {
		display := kb.DisplayActionKey(action)
		if display == "" {
			display = "(unbound)"
		}
		fmt.Fprintf(out, "%-18s %s\n", action, display)
	}

	if valid, warning := kb.Validate(); warning != "" {
		if !valid {
			return fmt.Errorf("invalid keybindings: %s", warning)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}
	return nil
}
