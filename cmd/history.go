package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobsched/core/runlog"
	"github.com/kilianp07/jobsched/pkg/export"
)

func newHistoryCmd(newRunner runnerFactory) *cobra.Command {
	var algorithm, since, runID string
	var limit int
	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded scheduling runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			q := runlog.Query{Algorithm: algorithm, RunID: runID, Limit: limit}
			if since != "" {
				ts, err := time.Parse(time.RFC3339, since)
				if err != nil {
					return fmt.Errorf("parse --since: %w", err)
				}
				q.Start = ts
			}
			r, _, err := newRunner(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := r.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			recs, err := r.History(cmd.Context(), q)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []runlog.Record{}
			}
			return export.WriteJSON(cmd.OutOrStdout(), recs)
		},
	}
	c.Flags().StringVar(&algorithm, "algorithm", "", "filter by algorithm (moore or mcnaughton)")
	c.Flags().StringVar(&since, "since", "", "only runs at or after this RFC3339 time")
	c.Flags().StringVar(&runID, "run", "", "filter by run ID")
	c.Flags().IntVar(&limit, "limit", 0, "keep only the most recent runs")
	return c
}
