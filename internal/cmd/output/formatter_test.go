package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/confwatch/confwatch/pkg/validate"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "JSON", ""} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) = %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml): expected error")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)
	if err := f.Format(&buf, map[string]int{"total": 3}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), `"total": 3`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatYAML)
	if err := f.Format(&buf, map[string]string{"status": "verified"}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "status: verified") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestTableFormatterWithData(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)
	data := Data{
		Headers: []string{"Name", "Status"},
		Rows:    [][]string{{"ICML", "verified"}},
	}
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ICML") || !strings.Contains(out, "verified") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestTableFormatterStructSlice(t *testing.T) {
	type row struct {
		Name      string `json:"name"`
		DaysUntil int    `json:"days_until"`
	}
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)
	if err := f.Format(&buf, []row{{Name: "CVPR", DaysUntil: 12}}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	// tablewriter uppercases headers when rendering.
	out := buf.String()
	if !strings.Contains(strings.ToUpper(out), "DAYS UNTIL") {
		t.Errorf("json tag header missing: %s", out)
	}
	if !strings.Contains(out, "CVPR") {
		t.Errorf("row missing: %s", out)
	}
}

func TestResultsToTableData(t *testing.T) {
	results := []*validate.Result{
		{
			Name:       "ICML",
			Status:     validate.StatusConflict,
			Confidence: 0.64,
			Conflicts: []validate.Conflict{
				{Kind: validate.KindDeadlineMismatch},
				{Kind: validate.KindRankMismatch},
			},
		},
	}
	data := ResultsToTableData(results)
	if len(data.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(data.Rows))
	}
	if got := data.Rows[0][3]; got != "deadline_mismatch, rank_mismatch" {
		t.Errorf("conflicts cell = %q", got)
	}
}

func TestStatisticsToTableData(t *testing.T) {
	stats := validate.Statistics{
		TotalConferences: 2,
		VerifiedCount:    1,
		VerificationRate: "50.0%",
	}
	data := StatisticsToTableData(stats)
	if len(data.Rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(data.Rows))
	}
	if data.Rows[5][1] != "50.0%" {
		t.Errorf("verification rate cell = %q", data.Rows[5][1])
	}
}
