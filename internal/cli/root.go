// Package cli implements the themekit command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the root command and releases everything it opened.
func Execute(version string) error {
	a := &app{}
	cmd := newRootCmd(a, version)
	err := cmd.ExecuteContext(context.Background())
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(a *app, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "themekit",
		Short:         "Inspect, switch and preview UI themes",
		Long:          "themekit builds the light, dark, pitch-black and Rosé Pine themes, stores the selected theme and drives theme-change actions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.showMetrics {
				return nil
			}
			return a.writeMetrics(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is $HOME/.config/themekit/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "override logging level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "override logging format (json, console)")
	flags.BoolVar(&a.showMetrics, "metrics", false, "print collected metrics to stderr on exit")

	cmd.AddCommand(
		newThemeCmd(a),
		newActionsCmd(a),
		newPaletteCmd(a),
	)

	return cmd
}
