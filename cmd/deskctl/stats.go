package main

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection and circulation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.client.Stats(cmd.Context())
			if err != nil {
				return a.describe("stats", err)
			}
			t := a.newTable("Books", "Users", "Active loans", "Overdue")
			t.AppendRow([]any{stats.TotalBooks, stats.TotalUsers, stats.ActiveLoans, stats.OverdueLoans})
			t.Render()
			return nil
		},
	}
}
