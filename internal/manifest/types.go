package manifest

import (
	"path/filepath"
	"sort"
)

// Package represents a single Poetry project parsed from its pyproject.toml.
type Package struct {
	Name         string
	Version      string
	Path         string // absolute path to the pyproject.toml file
	Dependencies map[string]Dependency
}

// Dependency is one entry from a dependency table. Poetry declares
// dependencies either as a bare constraint string (requests = "^2.25.1")
// or as an inline table (pkg = {path = "../pkg", develop = true}).
type Dependency struct {
	Constraint string // set for the bare string form
	Path       string // set for path dependencies
	Develop    bool
	Version    string // version key inside the table form, if present
}

// IsLocal reports whether the dependency points at a local path.
func (d Dependency) IsLocal() bool {
	return d.Path != ""
}

// Dir returns the project directory containing the manifest.
func (p *Package) Dir() string {
	return filepath.Dir(p.Path)
}

// LocalDependencies returns name -> path for every path-form dependency.
func (p *Package) LocalDependencies() map[string]string {
	local := make(map[string]string)
	for name, dep := range p.Dependencies {
		if dep.IsLocal() {
			local[name] = dep.Path
		}
	}
	return local
}

// DependencyNames returns the declared dependency names in sorted order.
func (p *Package) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Package) String() string {
	return p.Name + " v" + p.Version
}
