// Package cmd implements the confwatch CLI commands.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
	"github.com/confwatch/confwatch/internal/cmd/output"
	"github.com/confwatch/confwatch/pkg/logging"
)

// Execute runs the confwatch CLI with the given arguments.
func Execute(ctx context.Context, a *app.App, args []string) error {
	rootCmd := NewRootCommand(a)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand(a *app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "confwatch",
		Short:   "Academic conference deadline tracker",
		Version: a.Version(),
		Long: `Confwatch tracks academic conference and journal metadata reported by
multiple independent data sources, cross-checks the sources against each
other, and maintains a verified local catalog.

Records are grouped by normalized name, disagreements on deadlines and
ranks are flagged as conflicts, and each group is scored for confidence
based on source count, authority and priority.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(a, cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flag defaults come from the loaded config so env and config-file
	// values survive flag registration; setup routes the parsed values
	// back through UpdateFromFlags.
	config := a.Config()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&config.ConfigFile, "config", "", "config file (default is $HOME/.confwatch.yaml)")
	flags.BoolP("verbose", "v", config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", config.NoColor, "disable colored output")
	flags.StringP("format", "o", config.Format, "output format: table, json, yaml")
	flags.String("log-level", config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&config.DataPath, "data", config.DataPath, "catalog data file")
	flags.StringVar(&config.SourcesPath, "sources", config.SourcesPath, "source configuration file")

	rootCmd.SetVersionTemplate("confwatch {{.Version}}\n")

	rootCmd.AddCommand(NewValidateCommand(a))
	rootCmd.AddCommand(NewFixCommand(a))
	rootCmd.AddCommand(NewListCommand(a))
	rootCmd.AddCommand(NewStatsCommand(a))
	rootCmd.AddCommand(NewBackupsCommand(a))
	rootCmd.AddCommand(NewVersionCommand(a))

	return rootCmd
}

// setup runs before every command: fold parsed flag values back into the
// config, validate the output format, rebuild the logger and install it as
// the package default.
func setup(a *app.App, cmd *cobra.Command) error {
	config := a.Config()
	config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)
	if _, err := output.ParseFormat(config.Format); err != nil {
		return err
	}
	a.ReloadLogger()
	logging.SetDefault(*a.Logger())
	return nil
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't
// exist. Only for flags registered in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't
// exist. Only for flags registered in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// outputFormat resolves the effective output format for a command run.
func outputFormat(a *app.App) output.Format {
	return output.DetectFormat(a.Config().Format)
}
