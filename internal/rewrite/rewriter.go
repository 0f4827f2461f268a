package rewrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parnell/pi-haiku/internal/manifest"
)

// Change records one rewritten line.
type Change struct {
	Old string
	New string
}

// Options controls a single conversion.
type Options struct {
	// Matches are explicit rewrite rules. When empty, rules are derived
	// from Packages instead.
	Matches []Match
	// Packages to derive exact-name rules from when Matches is empty.
	Packages []*manifest.Package

	// DestFile writes the result to a separate file. Mutually exclusive
	// with InPlace.
	DestFile string
	// InPlace overwrites the source manifest.
	InPlace bool
	// BackupDir, when set, additionally writes the result to
	// <BackupDir>/<name>_pyproject.toml. It may stand alone as the only
	// destination. No file is written when nothing changed.
	BackupDir string
	// DryRun computes changes without writing anything.
	DryRun bool
	// Sort applies SortSections to the output before writing.
	Sort bool
}

// Rewriter rewrites dependency lines of one project's manifest. The
// packages index resolves matched dependency names to their projects for
// placeholder substitution.
type Rewriter struct {
	pkg      *manifest.Package
	packages map[string]*manifest.Package
}

// New loads the manifest at src (file or project directory) and returns a
// Rewriter over it.
func New(src string, packages map[string]*manifest.Package) (*Rewriter, error) {
	pkg, err := manifest.Load(src)
	if err != nil {
		return nil, err
	}
	return ForPackage(pkg, packages), nil
}

// ForPackage returns a Rewriter over an already-loaded package.
func ForPackage(pkg *manifest.Package, packages map[string]*manifest.Package) *Rewriter {
	if packages == nil {
		packages = map[string]*manifest.Package{}
	}
	return &Rewriter{pkg: pkg, packages: packages}
}

// Package returns the package being rewritten.
func (r *Rewriter) Package() *manifest.Package {
	return r.pkg
}

// ConvertToLocal rewrites matched dependencies to local path form.
func (r *Rewriter) ConvertToLocal(opts Options) ([]Change, error) {
	return r.convert(localVersionTo, opts)
}

// ConvertToRemote rewrites matched dependencies to published version form.
func (r *Rewriter) ConvertToRemote(opts Options) ([]Change, error) {
	return r.convert(VersionPlaceholder, opts)
}

func (r *Rewriter) convert(versionTo string, opts Options) ([]Change, error) {
	if len(opts.Matches) == 0 && len(opts.Packages) == 0 {
		return nil, errors.New("either matches or packages must be provided")
	}
	if opts.DestFile != "" && opts.InPlace {
		return nil, errors.New("only one of dest file or in place can be specified")
	}
	if !opts.DryRun && opts.DestFile == "" && !opts.InPlace && opts.BackupDir == "" {
		return nil, errors.New("a destination is required: dest file, in place, or backup dir")
	}

	matches := opts.Matches
	if len(matches) == 0 {
		matches = matchesForPackages(opts.Packages, versionTo)
	}
	compiled := make([]compiledMatch, 0, len(matches))
	for _, m := range matches {
		cm, err := m.compile()
		if err != nil {
			return nil, fmt.Errorf("compiling match %q: %w", m.PackageRegex, err)
		}
		compiled = append(compiled, cm)
	}

	data, err := os.ReadFile(r.pkg.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.pkg.Path, err)
	}

	var changes []Change
	lines := splitLines(string(data))
	for i, line := range lines {
		newLine, changed := r.rewriteLine(line, compiled)
		if changed {
			changes = append(changes, Change{Old: line, New: newLine})
			lines[i] = newLine
		}
	}

	if len(changes) == 0 || opts.DryRun {
		return changes, nil
	}

	content := strings.Join(lines, "")
	if opts.Sort {
		content = SortSections(content)
	}

	dest := opts.DestFile
	if opts.InPlace {
		dest = r.pkg.Path
	}
	if dest != "" {
		if err := writeFile(dest, content); err != nil {
			return nil, err
		}
	}
	if opts.BackupDir != "" {
		backup := filepath.Join(opts.BackupDir, r.pkg.Name+"_"+manifest.FileName)
		if err := writeFile(backup, content); err != nil {
			return nil, err
		}
	}

	log.Debug().Str("package", r.pkg.Name).Int("changes", len(changes)).Msg("rewrote manifest")
	return changes, nil
}

// rewriteLine applies the first matching rule to a "name = value" line.
// Lines without "=", lines whose key matches no rule, and matched keys that
// resolve to no known package are returned unchanged.
func (r *Rewriter) rewriteLine(line string, matches []compiledMatch) (string, bool) {
	if !strings.Contains(line, "=") {
		return line, false
	}
	trimmed := strings.TrimSpace(line)
	key, value, _ := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	for _, m := range matches {
		if !m.pkg.MatchString(key) {
			continue
		}
		target, ok := r.packages[key]
		if !ok {
			continue
		}
		newValue := m.version.ReplaceAllLiteralString(value, m.versionTo)
		newValue = r.substitute(newValue, target)
		newLine := key + " = " + newValue + lineEnding(line)
		if newLine != line {
			return newLine, true
		}
		return line, false
	}
	return line, false
}

// substitute expands placeholders in a rewritten value.
func (r *Rewriter) substitute(value string, target *manifest.Package) string {
	if strings.Contains(value, VersionPlaceholder) {
		value = strings.ReplaceAll(value, VersionPlaceholder, `"`+target.Version+`"`)
	}
	if strings.Contains(value, RelPathPlaceholder) {
		rel, err := filepath.Rel(r.pkg.Dir(), target.Dir())
		if err != nil {
			rel = target.Dir()
		}
		value = strings.ReplaceAll(value, RelPathPlaceholder, filepath.ToSlash(rel))
	}
	return value
}

// splitLines splits content into lines, each keeping its terminator.
func splitLines(content string) []string {
	var lines []string
	for len(content) > 0 {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}

// lineEnding returns the terminator of a line, if any.
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return "\n"
	}
	return ""
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
