package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/csheth/caseassist/internal/backend"
	"github.com/csheth/caseassist/internal/config"
	"github.com/csheth/caseassist/internal/logging"
	"github.com/csheth/caseassist/internal/prefill"
	"github.com/csheth/caseassist/internal/tui"
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"backend-url":  config.KeyBackendURL,
	"http-timeout": config.KeyHTTPTimeout,
	"workflow":     config.KeyDefaultWorkflow,
	"log-file":     config.KeyLogFile,
	"log-level":    config.KeyLogLevel,
}

type rootOptions struct {
	configPath  string
	prefillPath string
	noAltScreen bool
	verbose     bool
}

// app is the state shared by the root command and its subcommands once
// setup has run.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client backend.Client
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:   "caseassist",
		Short: "Ask for case advice or search similar examples",
		Long: `caseassist is a terminal client for the case assistance backend.

The "LLM Suggestion" tab asks the backend for advice on the described case.
The "Search Examples" tab returns similar cases with their sources.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags(), opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("caseassist {{.Version}}\n")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	persistent.String("backend-url", "", "backend base URL (eg. http://localhost:8000)")
	persistent.Duration("http-timeout", 0, "per-request timeout, 0 waits indefinitely")
	persistent.String("log-file", "", "write JSON logs to this file")
	persistent.String("log-level", "", "debug, info, warn, error or off")
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	local := cmd.Flags()
	local.String("workflow", "", "tab to open first: advice or search")
	local.StringVar(&opts.prefillPath, "prefill", "", "load a .txt, .md or .pdf file into the composer")
	local.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	cmd.AddCommand(newAskCmd(a), newSearchCmd(a), newVersionCmd())
	return cmd
}

func (a *app) setup(flags *pflag.FlagSet, opts *rootOptions) error {
	v := config.New(opts.configPath)
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Verbose: opts.verbose,
	})
	if err != nil {
		return err
	}

	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.client = client
	logger.Info("caseassist starting",
		zap.String("version", Version),
		zap.String("backend", client.BaseURL()),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
	)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) runTUI(cmd *cobra.Command, opts *rootOptions) error {
	var text string
	if opts.prefillPath != "" {
		loaded, err := prefill.Load(opts.prefillPath)
		if err != nil {
			return err
		}
		text = loaded
		a.logger.Info("prefilled composer", zap.String("path", opts.prefillPath), zap.Int("bytes", len(text)))
	}

	programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Backend:    a.client,
			Logger:     a.logger,
			Context:    cmd.Context(),
			InitialTab: a.cfg.DefaultWorkflow,
			Prefill:    text,
		}),
		programOpts...,
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
