package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
	"github.com/confwatch/confwatch/internal/cmd/output"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog summary statistics",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			catalog, err := client.Catalog()
			if err != nil {
				return err
			}
			return output.FormatAny(catalog.Statistics(time.Now()), outputFormat(a))
		},
	}
}
