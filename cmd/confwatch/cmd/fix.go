package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
	"github.com/confwatch/confwatch/internal/store"
	"github.com/confwatch/confwatch/pkg/logging"
	"github.com/confwatch/confwatch/pkg/validate"
)

// NewFixCommand creates the fix command.
func NewFixCommand(a *app.App) *cobra.Command {
	var (
		inputFile string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Apply recommended data for conflicted entries",
		Long: `Fix validates the given multi-source dump (or the stored catalog),
then writes each conflicted group's recommended data back into the
catalog. The previous catalog file is backed up first.

The recommendation follows the default resolution strategy: the
highest-precedence authoritative source wins a conflicted group.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), a.Logger())

			var report *validate.Report
			if inputFile != "" {
				multi, err := store.LoadMultiSource(inputFile)
				if err != nil {
					return err
				}
				report, err = client.Validate(ctx, multi)
				if err != nil {
					return err
				}
			} else {
				report, err = client.ValidateCatalog(ctx)
				if err != nil {
					return err
				}
			}

			if len(report.Conflicts) == 0 {
				fmt.Println("No conflicts to fix")
				return nil
			}

			if dryRun {
				fmt.Printf("Would fix %d conflicted entries:\n", len(report.Conflicts))
				for _, res := range report.Conflicts {
					fmt.Printf("  %s -> %v\n", res.Name, res.RecommendedData)
				}
				return nil
			}

			applied, err := client.Fix(ctx, report)
			if err != nil {
				return err
			}
			fmt.Printf("Fixed %d of %d conflicted entries\n", applied, len(report.Conflicts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "multi-source JSON dump to validate first")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")

	return cmd
}
