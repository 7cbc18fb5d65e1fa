// Package cmd implements the jobsched command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobsched/app"
	"github.com/kilianp07/jobsched/config"
)

const defaultConfigPath = "jobsched.yaml"

const rootLong = `Single and parallel machine scheduling.

Runs are reported to the metrics sinks listed under metrics.sinks in the
configuration file. Each command exits after one run, so use the
"pushgateway" sink (url, job) to ship Prometheus metrics from the CLI. The
"prometheus" sink only records into the process default registry and is
meant for programs that embed the runner and serve that registry
themselves.`

// Execute runs the CLI.
func Execute() error { return newRootCmd().Execute() }

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "jobsched",
		Short:        "Single and parallel machine scheduling",
		Long:         rootLong,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "configuration file")

	loadConfig := func(cmd *cobra.Command) (*config.Config, error) {
		path := cfgPath
		if !cmd.Flags().Changed("config") {
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				path = ""
			}
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	newRunner := func(cmd *cobra.Command) (*app.Runner, *config.Config, error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, nil, err
		}
		r, err := app.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return r, cfg, nil
	}

	root.AddCommand(
		newMooreCmd(newRunner),
		newMcNaughtonCmd(newRunner),
		newHistoryCmd(newRunner),
	)
	return root
}

type runnerFactory func(cmd *cobra.Command) (*app.Runner, *config.Config, error)

// openOutput returns the writer for --output, falling back to the command's
// stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
