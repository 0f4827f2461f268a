package rewrite

import (
	"regexp"

	"github.com/parnell/pi-haiku/internal/manifest"
)

// Placeholders substituted into a Match's VersionTo template.
const (
	// VersionPlaceholder expands to the matched package's version, quoted.
	VersionPlaceholder = "{package.version}"
	// RelPathPlaceholder expands to the matched package's directory
	// relative to the project being rewritten.
	RelPathPlaceholder = "{package.path.relative}"
)

// localVersionTo is the table form written when converting to local.
const localVersionTo = `{develop = true, path = "` + RelPathPlaceholder + `"}`

// Match describes one dependency rewrite rule. PackageRegex selects
// dependency keys (anchored at both ends), VersionRegex selects the part of
// the value to replace, and VersionTo is the replacement template.
type Match struct {
	PackageRegex string
	VersionRegex string
	VersionTo    string
}

// ToLocalMatch returns a Match converting the selected packages to local
// path dependencies.
func ToLocalMatch(packageRegex string) Match {
	return Match{
		PackageRegex: packageRegex,
		VersionRegex: `^.*$`,
		VersionTo:    localVersionTo,
	}
}

// ToRemoteMatch returns a Match converting the selected packages to their
// published versions.
func ToRemoteMatch(packageRegex string) Match {
	return Match{
		PackageRegex: packageRegex,
		VersionRegex: `^.*$`,
		VersionTo:    VersionPlaceholder,
	}
}

// matchesForPackages builds one exact-name Match per package with the given
// replacement template.
func matchesForPackages(packages []*manifest.Package, versionTo string) []Match {
	matches := make([]Match, 0, len(packages))
	for _, pkg := range packages {
		matches = append(matches, Match{
			PackageRegex: regexp.QuoteMeta(pkg.Name),
			VersionRegex: `^.*$`,
			VersionTo:    versionTo,
		})
	}
	return matches
}

// compiledMatch holds a Match with its compiled expressions.
type compiledMatch struct {
	pkg       *regexp.Regexp
	version   *regexp.Regexp
	versionTo string
}

// compile anchors PackageRegex at both ends and compiles both expressions.
func (m Match) compile() (compiledMatch, error) {
	pkgRe, err := regexp.Compile("^(?:" + m.PackageRegex + ")$")
	if err != nil {
		return compiledMatch{}, err
	}
	verRe, err := regexp.Compile(m.VersionRegex)
	if err != nil {
		return compiledMatch{}, err
	}
	return compiledMatch{pkg: pkgRe, version: verRe, versionTo: m.VersionTo}, nil
}
