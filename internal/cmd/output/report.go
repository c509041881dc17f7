package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/confwatch/confwatch/pkg/catalogs"
	"github.com/confwatch/confwatch/pkg/validate"
)

// FormatReport renders a validation report: table formats get the summary
// plus a per-group listing, structured formats get the full report.
func FormatReport(report *validate.Report, format Format) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, "":
		if err := formatter.Format(os.Stdout, StatisticsToTableData(report.Statistics)); err != nil {
			return err
		}
		return formatter.Format(os.Stdout, ResultsToTableData(report.Results()))
	default:
		return formatter.Format(os.Stdout, report)
	}
}

// FormatDeadlines renders upcoming deadlines for output.
func FormatDeadlines(deadlines []catalogs.Deadline, format Format) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, "":
		return formatter.Format(os.Stdout, DeadlinesToTableData(deadlines))
	default:
		return formatter.Format(os.Stdout, deadlines)
	}
}

// FormatAny handles the common pattern of formatting any data type.
func FormatAny(data any, format Format) error {
	return NewFormatter(format).Format(os.Stdout, data)
}

// StatisticsToTableData converts run statistics to a key-value table.
func StatisticsToTableData(stats validate.Statistics) Data {
	return Data{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total", fmt.Sprintf("%d", stats.TotalConferences)},
			{"Verified", fmt.Sprintf("%d", stats.VerifiedCount)},
			{"Conflicts", fmt.Sprintf("%d", stats.ConflictCount)},
			{"Unverified", fmt.Sprintf("%d", stats.UnverifiedCount)},
			{"Outdated", fmt.Sprintf("%d", stats.OutdatedCount)},
			{"Verification Rate", stats.VerificationRate},
			{"Conflict Rate", stats.ConflictRate},
			{"Avg Confidence", fmt.Sprintf("%.2f", stats.AverageConfidence)},
		},
	}
}

// ResultsToTableData converts per-group results to table rows.
func ResultsToTableData(results []*validate.Result) Data {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.Name,
			string(res.Status),
			fmt.Sprintf("%d", len(res.Sources)),
			summarizeConflicts(res.Conflicts),
			fmt.Sprintf("%.2f", res.Confidence),
		})
	}
	return Data{
		Headers: []string{"Name", "Status", "Sources", "Conflicts", "Confidence"},
		Rows:    rows,
	}
}

// DeadlinesToTableData converts upcoming deadlines to table rows.
func DeadlinesToTableData(deadlines []catalogs.Deadline) Data {
	rows := make([][]string, 0, len(deadlines))
	for _, d := range deadlines {
		rows = append(rows, []string{
			d.Conference.Name,
			d.Conference.Rank,
			d.Conference.Deadline,
			fmt.Sprintf("%d", d.DaysUntil),
		})
	}
	return Data{
		Headers: []string{"Name", "Rank", "Deadline", "Days Left"},
		Rows:    rows,
	}
}

// summarizeConflicts compacts a conflict list into one cell.
func summarizeConflicts(conflicts []validate.Conflict) string {
	if len(conflicts) == 0 {
		return "-"
	}
	kinds := make([]string, len(conflicts))
	for i, c := range conflicts {
		kinds[i] = string(c.Kind)
	}
	return strings.Join(kinds, ", ")
}
