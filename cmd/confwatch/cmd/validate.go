package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
	"github.com/confwatch/confwatch/internal/cmd/output"
	"github.com/confwatch/confwatch/internal/store"
	"github.com/confwatch/confwatch/pkg/logging"
	"github.com/confwatch/confwatch/pkg/validate"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(a *app.App) *cobra.Command {
	var (
		inputFile  string
		reportFile string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Cross-check multi-source conference data",
		Long: `Validate groups records by normalized conference name, compares what
each source reports, flags deadline and rank disagreements as conflicts,
and scores the confidence of every group.

With --input it reads a multi-source JSON dump (record lists keyed by
source ID); without it, the stored catalog's own source records are
validated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(a, cmd, inputFile, reportFile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "multi-source JSON dump to validate")
	cmd.Flags().StringVar(&reportFile, "report", "", "write the full JSON report to this file")

	return cmd
}

func runValidate(a *app.App, cmd *cobra.Command, inputFile, reportFile string) error {
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

	if reportFile != "" {
		if err := writeReport(report, reportFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportFile)
	}

	return output.FormatReport(report, outputFormat(a))
}

func writeReport(report *validate.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
