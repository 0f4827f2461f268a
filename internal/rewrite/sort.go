package rewrite

import (
	"sort"
	"strings"
)

// SortSections alphabetically sorts "key = value" lines within each [table]
// of a TOML document. Table order, comments, and blank lines keep their
// positions; only the key lines of a table are reordered among themselves.
func SortSections(content string) string {
	lines := splitLines(content)

	sortRange := func(start, end int) {
		var kvIdx []int
		var kvLines []string
		for i := start; i < end; i++ {
			if isKeyValueLine(lines[i]) {
				kvIdx = append(kvIdx, i)
				kvLines = append(kvLines, lines[i])
			}
		}
		sort.SliceStable(kvLines, func(a, b int) bool {
			return keyOf(kvLines[a]) < keyOf(kvLines[b])
		})
		for n, i := range kvIdx {
			lines[i] = kvLines[n]
		}
	}

	sectionStart := 0
	for i, line := range lines {
		if isTableHeader(line) {
			sortRange(sectionStart, i)
			sectionStart = i + 1
		}
	}
	sortRange(sectionStart, len(lines))

	return strings.Join(lines, "")
}

func isTableHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
}

func isKeyValueLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	key, _, found := strings.Cut(trimmed, "=")
	return found && strings.TrimSpace(key) != ""
}

func keyOf(line string) string {
	key, _, _ := strings.Cut(strings.TrimSpace(line), "=")
	return strings.TrimSpace(key)
}
