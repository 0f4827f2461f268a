package rewrite

import (
	"strings"
	"testing"
)

func TestSortSections(t *testing.T) {
	input := `[tool.poetry]
name = "package1"
version = "0.1.0"

[tool.poetry.dependencies]
requests = "^2.25.1"
numpy = "^1.21.0"
package2 = { path = "../package2" }
`
	got := SortSections(input)

	deps := got[strings.Index(got, "[tool.poetry.dependencies]"):]
	numpyIdx := strings.Index(deps, "numpy")
	package2Idx := strings.Index(deps, "package2")
	requestsIdx := strings.Index(deps, "requests")
	if !(numpyIdx < package2Idx && package2Idx < requestsIdx) {
		t.Errorf("dependency keys not sorted:\n%s", got)
	}
}

func TestSortSectionsKeepsTableOrder(t *testing.T) {
	input := `[build-system]
requires = ["poetry-core"]

[tool.poetry]
name = "package1"
`
	got := SortSections(input)
	if strings.Index(got, "[build-system]") > strings.Index(got, "[tool.poetry]") {
		t.Errorf("table order changed:\n%s", got)
	}
}

func TestSortSectionsPreservesCommentsAndBlanks(t *testing.T) {
	input := `[tool.poetry.dependencies]
# pinned for CVE
zlib-wrapper = "1.0.0"
aiohttp = "^3.8"
`
	got := SortSections(input)
	if !strings.Contains(got, "# pinned for CVE") {
		t.Error("comment dropped")
	}
	if strings.Count(got, "\n") != strings.Count(input, "\n") {
		t.Errorf("line count changed:\n%s", got)
	}
	if strings.Index(got, "aiohttp") > strings.Index(got, "zlib-wrapper") {
		t.Errorf("keys not sorted:\n%s", got)
	}
}

func TestSortSectionsSortedInputUnchanged(t *testing.T) {
	input := `[tool.poetry.dependencies]
alpha = "^1.0"
beta = "^2.0"
`
	if got := SortSections(input); got != input {
		t.Errorf("already-sorted input changed:\n%s", got)
	}
}
