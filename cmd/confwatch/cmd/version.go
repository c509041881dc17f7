package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("confwatch %s\n", a.Version())
			fmt.Printf("  commit: %s\n", a.Commit())
			fmt.Printf("  built:  %s\n", a.Date())
		},
	}
}
