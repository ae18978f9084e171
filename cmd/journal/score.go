package main

import (
	"github.com/spf13/cobra"
)

func newScoreCmd(g *globalOptions) *cobra.Command {
	var records, date string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the health score for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDate("date", date); err != nil {
				return err
			}
			journal, err := loadJournal(records)
			if err != nil {
				return err
			}
			engine, err := g.engine()
			if err != nil {
				return err
			}
			return g.printJSON(engine.Score(journal.Records, date))
		},
	}

	cmd.Flags().StringVar(&records, "records", "", "YAML or JSON records file")
	cmd.Flags().StringVar(&date, "date", "", "Calendar date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
