package main

import (
	"encoding/json"
	"io"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Offline health journal analytics",
		Long: `journal computes analytics over a YAML or JSON file of daily records,
using the same engine as the API.

Commands:
  analyze         Derived series, correlations, cycle forecast and insights
  score           Health score for a single day
  langfuse-check  Verify Langfuse credentials by writing a test trace`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Analytics policy YAML (default: built-in)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newScoreCmd(opts),
		newLangfuseCheckCmd(opts),
	)
	return cmd
}

func (o *globalOptions) logger() (zerolog.Logger, error) {
	return logger.New(logger.Config{Level: o.logLevel, Format: "console", Output: o.errOut})
}

func (o *globalOptions) engine() (*analytics.Engine, error) {
	cfg, err := analytics.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	return analytics.NewEngine(cfg), nil
}

func (o *globalOptions) printJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
