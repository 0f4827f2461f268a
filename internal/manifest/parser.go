package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file name Poetry projects use.
const FileName = "pyproject.toml"

// ErrNotPoetry marks a pyproject.toml whose build system is not Poetry.
// Discovery skips such manifests instead of failing.
var ErrNotPoetry = errors.New("manifest does not use the poetry build system")

// pyprojectFile mirrors the subset of pyproject.toml haiku reads.
type pyprojectFile struct {
	Tool struct {
		Poetry struct {
			Name            string         `toml:"name"`
			Version         string         `toml:"version"`
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Load parses a pyproject.toml into a Package. The path may be either the
// manifest file itself or the project directory containing it.
func Load(path string) (*Package, error) {
	manifestPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	var raw pyprojectFile
	if _, err := toml.DecodeFile(manifestPath, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	poetry := raw.Tool.Poetry
	if poetry.Name == "" {
		return nil, fmt.Errorf("%s: %w", manifestPath, ErrNotPoetry)
	}

	deps := make(map[string]Dependency)
	addDependencies(deps, poetry.Dependencies)
	addDependencies(deps, poetry.DevDependencies)
	for _, group := range poetry.Group {
		addDependencies(deps, group.Dependencies)
	}

	return &Package{
		Name:         poetry.Name,
		Version:      poetry.Version,
		Path:         manifestPath,
		Dependencies: deps,
	}, nil
}

// resolvePath normalizes a file-or-directory argument to an absolute
// manifest file path and verifies it exists.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("could not find %s: %w", abs, err)
	}
	if info.IsDir() {
		abs = filepath.Join(abs, FileName)
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("could not find %s: %w", abs, err)
		}
	}
	return abs, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// addDependencies converts raw TOML dependency values into Dependency
// entries. Unrecognized value shapes are skipped rather than failing the
// whole manifest.
func addDependencies(dst map[string]Dependency, src map[string]any) {
	for name, value := range src {
		switch v := value.(type) {
		case string:
			dst[name] = Dependency{Constraint: v}
		case map[string]any:
			dep := Dependency{}
			if path, ok := v["path"].(string); ok {
				dep.Path = path
			}
			if develop, ok := v["develop"].(bool); ok {
				dep.Develop = develop
			}
			if version, ok := v["version"].(string); ok {
				dep.Version = version
			}
			dst[name] = dep
		}
	}
}
