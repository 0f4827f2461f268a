package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parnell/pi-haiku/internal/manifest"
)

func writeProject(t testing.TB, root, rel, name, version string) string {
	t.Helper()
	dir := filepath.Join(root, rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	content := fmt.Sprintf(`[build-system]
requires = ["poetry-core>=1.0.0"]
build-backend = "poetry.core.masonry.api"

[tool.poetry]
name = %q
version = %q

[tool.poetry.dependencies]
python = "^3.9"
`, name, version)
	path := filepath.Join(dir, manifest.FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "package1", "package1", "0.1.0")
	writeProject(t, root, "nested/package2", "package2", "0.2.0")

	found, err := Find(root, Options{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d manifests, want 2: %v", len(found), found)
	}
}

func TestFindSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "package1", "package1", "0.1.0")
	writeProject(t, root, "__pycache__/stale", "stale", "0.0.1")
	writeProject(t, root, "dist/built", "built", "0.0.1")
	writeProject(t, root, "docker_staging/staged", "staged", "0.0.1")

	found, err := Find(root, Options{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d manifests, want 1: %v", len(found), found)
	}
	if !strings.Contains(found[0], "package1") {
		t.Errorf("unexpected manifest %s", found[0])
	}
}

func TestFindSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, ".hidden/secret", "secret", "0.0.1")
	writeProject(t, root, "visible", "visible", "0.1.0")

	found, err := Find(root, Options{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d manifests, want 1: %v", len(found), found)
	}

	found, err = Find(root, Options{IncludeHidden: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d manifests with hidden, want 2: %v", len(found), found)
	}
}

func TestFindCustomExcludes(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "vendor/dep", "dep", "0.0.1")
	writeProject(t, root, "dist/built", "built", "0.0.1")

	// Custom exclusions replace the defaults entirely.
	found, err := Find(root, Options{ExcludeDirs: []string{"vendor"}})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("found %d manifests, want 1: %v", len(found), found)
	}
	if !strings.Contains(found[0], "dist") {
		t.Errorf("unexpected manifest %s", found[0])
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "package1", "package1", "0.1.0")
	writeProject(t, root, "package2", "package2", "0.2.0")

	packages, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(packages) != 2 {
		t.Fatalf("loaded %d packages, want 2", len(packages))
	}
	if packages["package1"].Version != "0.1.0" {
		t.Errorf("package1 version = %q, want 0.1.0", packages["package1"].Version)
	}
}

func TestLoadSkipsNonPoetry(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "package1", "package1", "0.1.0")

	dir := filepath.Join(root, "setuptools-proj")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `[project]
name = "setuptools-proj"
version = "0.1.0"
`
	if err := os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	packages, err := Load(root, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(packages) != 1 {
		t.Fatalf("loaded %d packages, want 1", len(packages))
	}
}

func TestLoadDuplicateNames(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "a/package1", "package1", "0.1.0")
	writeProject(t, root, "b/package1", "package1", "0.2.0")

	_, err := Load(root, Options{})
	if err == nil {
		t.Fatal("expected error for duplicate package names")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error %q does not mention duplicates", err)
	}
}

func BenchmarkFind(b *testing.B) {
	root := b.TempDir()
	for i := 0; i < 50; i++ {
		writeProject(b, root, fmt.Sprintf("group%d/package%d", i%5, i), fmt.Sprintf("package%d", i), "0.1.0")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Find(root, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
