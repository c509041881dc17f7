package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
	"github.com/confwatch/confwatch/internal/cmd/output"
	"github.com/confwatch/confwatch/pkg/catalogs"
)

// NewListCommand creates the list command.
func NewListCommand(a *app.App) *cobra.Command {
	var (
		days int
		rank string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming submission deadlines",
		Long: `List shows catalog entries whose submission deadline falls within the
next N days (default 30), soonest first. Entries without a parseable
deadline are skipped.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			catalog, err := client.Catalog()
			if err != nil {
				return err
			}

			now := time.Now()
			upcoming := catalog.Upcoming(now, days)
			if rank != "" {
				upcoming = filterByRank(upcoming, rank)
			}
			if len(upcoming) == 0 {
				fmt.Printf("No deadlines in the next %d days\n", days)
				return nil
			}

			return output.FormatDeadlines(upcoming, outputFormat(a))
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "how many days ahead to look")
	cmd.Flags().StringVarP(&rank, "rank", "r", "", "only show entries with this rank (A/B/C)")

	return cmd
}

func filterByRank(deadlines []catalogs.Deadline, rank string) []catalogs.Deadline {
	var out []catalogs.Deadline
	for _, d := range deadlines {
		if d.Conference.Rank == rank {
			out = append(out, d)
		}
	}
	return out
}
