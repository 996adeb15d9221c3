package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"example.com/editerako/internal/app"
	"example.com/editerako/pkg/config"
	"example.com/editerako/pkg/logs"
	"example.com/editerako/pkg/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
	telemetry  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "editerako [file...]",
		Short:         "Terminal text editor with syntax highlighting",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, args)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.editerako/config.yaml)")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level to ./editerako.log")
	pf.StringVar(&opts.telemetry, "telemetry", "none", "telemetry exporter: stdout or none")

	root.AddCommand(
		&cobra.Command{
			Use:   "edit [file...]",
			Short: "Open files in the editor",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEdit(cmd, opts, args)
			},
		},
		newHighlightCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "editerako %s\n", version)
			},
		},
	)
	return root
}

func (o *rootOptions) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.path())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// logger opens the log sink. EDITERAKO_LOG and EDITERAKO_LOG_FILE take
// precedence; --debug alone logs to ./editerako.log. The config's
// log_level applies unless the environment names a level.
func (o *rootOptions) logger(cfg *config.Config) *logs.Logger {
	lg := logs.NewFromEnv()
	switch {
	case o.debug:
		if !lg.Enabled() {
			lg = logs.OpenFile("editerako.log", "debug")
		}
		lg.SetLevel("debug")
	case !isLevelName(os.Getenv("EDITERAKO_LOG")):
		lg.SetLevel(cfg.LogLevel)
	}
	return lg
}

func isLevelName(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error", "fatal":
		return true
	}
	return false
}

// telemetryLog receives exporter output while the editor owns the terminal.
var telemetryLog = "editerako-telemetry.log"

// startTelemetry installs the exporters, writing to w. A nil w means stderr.
func (o *rootOptions) startTelemetry(ctx context.Context, w io.Writer) (func(), error) {
	tc := telemetry.ForExporter(o.telemetry)
	tc.ServiceVersion = version
	tc.Writer = w
	shutdown, err := telemetry.Init(ctx, tc)
	if err != nil {
		return nil, err
	}
	return func() { _ = shutdown(context.Background()) }, nil
}

// startEditTelemetry is startTelemetry for the full-screen editor. Any
// exporter output goes to telemetryLog, since the terminal is in use.
func (o *rootOptions) startEditTelemetry(ctx context.Context) (func(), error) {
	if o.telemetry == "" || o.telemetry == "none" {
		return o.startTelemetry(ctx, nil)
	}
	f, err := os.OpenFile(telemetryLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry log: %w", err)
	}
	stop, err := o.startTelemetry(ctx, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		stop()
		_ = f.Close()
	}, nil
}

func runEdit(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	lg := opts.logger(cfg)
	defer lg.Close()
	stop, err := opts.startEditTelemetry(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()

	r := app.New(cfg)
	r.Logger = lg
	for _, path := range args {
		if err := r.OpenFile(path); err != nil {
			return err
		}
	}
	return r.Run(cmd.Context(), opts.path())
}
