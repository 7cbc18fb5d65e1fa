package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobsched/core/scheduler"
	"github.com/kilianp07/jobsched/pkg/export"
)

func newMooreCmd(newRunner runnerFactory) *cobra.Command {
	var input, format, output string
	c := &cobra.Command{
		Use:   "moore",
		Short: "Minimise the number of late jobs on one machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			in, err := scheduler.LoadInstance(input)
			if err != nil {
				return fmt.Errorf("load instance: %w", err)
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
			rep, err := r.RunMoore(cmd.Context(), in)
			if err != nil {
				return err
			}
			w, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeOut(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			switch format {
			case "json":
				return export.WriteJSON(w, rep)
			case "csv":
				return export.WriteOrderCSV(w, rep.Completions, rep.Late)
			case "text":
				return export.WriteOrderText(w, rep.Completions, rep.Late)
			default:
				return fmt.Errorf("unknown format %s", format)
			}
		},
	}
	c.Flags().StringVarP(&input, "input", "i", "", "instance file (yaml or json)")
	c.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or csv")
	c.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = c.MarkFlagRequired("input")
	return c
}
