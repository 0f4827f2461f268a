package haiku

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/parnell/pi-haiku/internal/manifest"
	"github.com/parnell/pi-haiku/internal/rewrite"
)

func sampleResults() []ProjectChanges {
	return []ProjectChanges{
		{
			Package: &manifest.Package{Name: "package2", Version: "0.2.0", Path: "/repo/package2/pyproject.toml"},
		},
		{
			Package: &manifest.Package{Name: "package1", Version: "0.1.0", Path: "/repo/package1/pyproject.toml"},
			Changes: []rewrite.Change{
				{Old: "package2 = \"^0.2.0\"\n", New: "package2 = {develop = true, path = \"../package2\"}\n"},
			},
		},
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(ToLocal, sampleResults())

	if report.Direction != "local" {
		t.Errorf("Direction = %q, want local", report.Direction)
	}
	if len(report.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(report.Projects))
	}
	if len(report.Projects[0].Changes) != 0 {
		t.Errorf("package2 should have no changes")
	}
	changes := report.Projects[1].Changes
	if len(changes) != 1 {
		t.Fatalf("package1 should have 1 change, got %d", len(changes))
	}
	if changes[0].From != `package2 = "^0.2.0"` {
		t.Errorf("From = %q, want trimmed original line", changes[0].From)
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := WriteReport(path, ToLocal, sampleResults()); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshaling report: %v", err)
	}
	if report.Direction != "local" {
		t.Errorf("Direction = %q, want local", report.Direction)
	}
	if len(report.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(report.Projects))
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}
