package main

import (
	"fmt"
	"time"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	records     string
	profile     string
	from        string
	to          string
	granularity string
	today       string
}

func newAnalyzeCmd(g *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute analytics over a records file",
		Example: `  journal analyze --records journal.yaml
  journal analyze --records journal.json --from 2024-01-01 --to 2024-03-31 --granularity weekly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.records, "records", "", "YAML or JSON records file")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "YAML or JSON cycle profile (overrides the one in --records)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Inclusive end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.granularity, "granularity", "daily", "Series bucketing: daily, weekly or monthly")
	cmd.Flags().StringVar(&opts.today, "today", "", "Anchor date for the cycle forecast (default: current date)")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func runAnalyze(g *globalOptions, opts *analyzeOptions) error {
	log, err := g.logger()
	if err != nil {
		return err
	}

	if err := checkDate("from", opts.from); err != nil {
		return err
	}
	if err := checkDate("to", opts.to); err != nil {
		return err
	}
	if opts.from != "" && opts.to != "" && opts.from > opts.to {
		return fmt.Errorf("--from %s is after --to %s", opts.from, opts.to)
	}

	granularity := domain.Granularity(opts.granularity)
	switch granularity {
	case domain.GranularityDaily, domain.GranularityWeekly, domain.GranularityMonthly:
	default:
		return fmt.Errorf("--granularity must be daily, weekly or monthly, got %q", opts.granularity)
	}

	today := time.Now().UTC()
	if opts.today != "" {
		t, ok := analytics.ParseDate(opts.today)
		if !ok {
			return fmt.Errorf("--today %q is not YYYY-MM-DD", opts.today)
		}
		today = t
	}

	journal, err := loadJournal(opts.records)
	if err != nil {
		return err
	}
	profile := journal.Profile
	if opts.profile != "" {
		if profile, err = loadProfile(opts.profile); err != nil {
			return err
		}
	}

	engine, err := g.engine()
	if err != nil {
		return err
	}

	start := time.Now()
	result := engine.Compute(analytics.Input{
		Window:      analytics.Window{Start: opts.from, End: opts.to},
		History:     journal.Records,
		Profile:     profile,
		Granularity: granularity,
		Today:       today,
	})
	log.Debug().
		Int("records", len(journal.Records)).
		Dur("duration", time.Since(start)).
		Msg("analytics computed")

	return g.printJSON(result)
}

func checkDate(flag, value string) error {
	if value != "" && !analytics.ValidDate(value) {
		return fmt.Errorf("--%s %q is not YYYY-MM-DD", flag, value)
	}
	return nil
}
