// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Options holds the command-line flags.
type Options struct {
	ConfigPath  string
	CatalogPath string
	LogFile     string
	LogLevel    string
	Text        bool
	DryRun      bool
}

// NewRootCommand builds the enrollhelper command around a.
func NewRootCommand(a *App) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "enrollhelper",
		Short: "Tag this computer with its user, department and building",
		Long: "Collects the user's name, department and building, then runs the " +
			"device-management inventory update with administrator rights so the " +
			"computer is filed correctly.",
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Run(cmd.Context(), *opts)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "TOML configuration file")
	flags.StringVar(&opts.CatalogPath, "catalog", "", "building and department table (overrides config)")
	flags.BoolVarP(&opts.Text, "text", "t", false, "use the line-oriented interface")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "show the command instead of running it")
	flags.StringVar(&opts.LogFile, "log-file", "", "append logs to this file (overrides config)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	return root
}

// Execute runs the root command with args and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	a := NewApp(version, os.Stdout, os.Stderr)
	return a.Execute(ctx, args)
}

// Execute runs the root command for a with args.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := NewRootCommand(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(a.Stderr, err)
	}
	return GetExitCode(err)
}
