package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobsched/core/scheduler"
	"github.com/kilianp07/jobsched/pkg/export"
)

func newMcNaughtonCmd(newRunner runnerFactory) *cobra.Command {
	var input, format, output string
	var machines int
	c := &cobra.Command{
		Use:   "mcnaughton",
		Short: "Preemptive minimum makespan schedule on parallel machines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			in, err := scheduler.LoadInstance(input)
			if err != nil {
				return fmt.Errorf("load instance: %w", err)
			}
			if machines > 0 {
				in.Machines = machines
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
			rep, err := r.RunMcNaughton(cmd.Context(), in)
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
				return export.WriteAssignmentCSV(w, rep.Assignment)
			case "text":
				return export.WriteAssignmentText(w, rep.Assignment)
			default:
				return fmt.Errorf("unknown format %s", format)
			}
		},
	}
	c.Flags().StringVarP(&input, "input", "i", "", "instance file (yaml or json)")
	c.Flags().IntVarP(&machines, "machines", "m", 0, "machine count, overrides the instance file")
	c.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or csv")
	c.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = c.MarkFlagRequired("input")
	return c
}
