package confwatch_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/confwatch/confwatch"
	"github.com/confwatch/confwatch/pkg/catalogs"
	"github.com/confwatch/confwatch/pkg/sources"
	"github.com/confwatch/confwatch/pkg/validate"
)

func testSourceConfigs() *sources.Configs {
	return sources.NewConfigs([]sources.Config{
		{ID: "ccf_official", Name: "CCF Official", Priority: 1, Enabled: true, Authoritative: true},
		{ID: "ccfddl", Name: "CCF DDL", Priority: 5, Enabled: true},
	})
}

func newTestClient(t *testing.T, opts ...confwatch.Option) confwatch.Client {
	t.Helper()
	dir := t.TempDir()
	opts = append([]confwatch.Option{
		confwatch.WithDataPath(filepath.Join(dir, "conferences.json")),
		confwatch.WithSourceConfigs(testSourceConfigs()),
	}, opts...)
	cw, err := confwatch.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cw
}

func TestClientValidate(t *testing.T) {
	cw := newTestClient(t)

	multi := validate.MultiSource{
		"ccf_official": {{Name: "ICML", Deadline: "2025-01-15", Rank: "A"}},
		"ccfddl":       {{Name: "ICML", Deadline: "2025-01-15", Rank: "A"}},
	}
	report, err := cw.Validate(context.Background(), multi)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Statistics.VerifiedCount != 1 {
		t.Errorf("verified = %d, want 1", report.Statistics.VerifiedCount)
	}

	if _, err := cw.Validate(context.Background(), nil); err == nil {
		t.Error("nil input: expected error")
	}
}

func TestClientCatalogStartsEmpty(t *testing.T) {
	cw := newTestClient(t)

	cat, err := cw.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("Len = %d, want 0", cat.Len())
	}
}

func TestClientSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conferences.json")

	cw, err := confwatch.New(
		confwatch.WithDataPath(path),
		confwatch.WithSourceConfigs(testSourceConfigs()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cat, err := cw.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if err := cat.Add(&catalogs.Conference{Name: "ICML", Rank: "A"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := cw.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := confwatch.New(
		confwatch.WithDataPath(path),
		confwatch.WithSourceConfigs(testSourceConfigs()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cat2, err := reopened.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if cat2.Len() != 1 {
		t.Errorf("Len = %d, want 1", cat2.Len())
	}
}

func TestClientFix(t *testing.T) {
	cw := newTestClient(t)

	cat, err := cw.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if err := cat.Add(&catalogs.Conference{Name: "ICSE", Rank: "B"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	multi := validate.MultiSource{
		"ccf_official": {{Name: "ICSE", Rank: "A"}},
		"ccfddl":       {{Name: "ICSE", Rank: "B"}},
	}
	report, err := cw.Validate(context.Background(), multi)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(report.Conflicts))
	}

	applied, err := cw.Fix(context.Background(), report)
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	got, err := cat.Find("icse")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// Authoritative source wins the rank disagreement.
	if got.Rank != "A" {
		t.Errorf("rank = %q, want A", got.Rank)
	}
	if got.Verification == nil || got.Verification.Status != validate.StatusConflict {
		t.Errorf("verification not updated: %+v", got.Verification)
	}
}

func TestClientValidateCatalog(t *testing.T) {
	cw := newTestClient(t)

	cat, err := cw.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if err := cat.Add(&catalogs.Conference{Name: "CVPR", Rank: "A"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	report, err := cw.ValidateCatalog(context.Background())
	if err != nil {
		t.Fatalf("ValidateCatalog: %v", err)
	}
	// A single fallback source cannot verify anything.
	if report.Statistics.UnverifiedCount != 1 {
		t.Errorf("unverified = %d, want 1", report.Statistics.UnverifiedCount)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := confwatch.New(confwatch.WithDataPath("")); err == nil {
		t.Error("empty data path: expected error")
	}
	if _, err := confwatch.New(confwatch.WithSourceConfigs(nil)); err == nil {
		t.Error("nil source configs: expected error")
	}
}
