package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parnell/pi-haiku/internal/manifest"
)

// DefaultExcludeDirs are directory names skipped during discovery.
var DefaultExcludeDirs = []string{"__pycache__", "dist", "docker_staging"}

// Options controls discovery behavior.
type Options struct {
	// ExcludeDirs lists directory names to skip. Nil means
	// DefaultExcludeDirs; an empty non-nil slice excludes nothing.
	ExcludeDirs []string
	// IncludeHidden walks into dot-directories when set.
	IncludeHidden bool
}

func (o Options) excludeSet() map[string]bool {
	dirs := o.ExcludeDirs
	if dirs == nil {
		dirs = DefaultExcludeDirs
	}
	set := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		set[d] = true
	}
	return set
}

// Find walks root and returns the path of every pyproject.toml found,
// in sorted order.
func Find(root string, opts Options) ([]string, error) {
	base, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	exclude := opts.excludeSet()
	var found []string

	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if path == base {
				return nil
			}
			name := d.Name()
			if exclude[name] {
				return filepath.SkipDir
			}
			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == manifest.FileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", base, err)
	}

	sort.Strings(found)
	return found, nil
}

// Load discovers and parses every Poetry project under root, keyed by
// package name. Manifests that do not use Poetry are skipped. Two projects
// declaring the same package name is an error.
func Load(root string, opts Options) (map[string]*manifest.Package, error) {
	paths, err := Find(root, opts)
	if err != nil {
		return nil, err
	}

	packages := make(map[string]*manifest.Package, len(paths))
	var duplicates []string

	for _, path := range paths {
		pkg, err := manifest.Load(path)
		if err != nil {
			if errors.Is(err, manifest.ErrNotPoetry) {
				log.Debug().Str("path", path).Msg("skipping non-poetry manifest")
				continue
			}
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		if existing, ok := packages[pkg.Name]; ok {
			duplicates = append(duplicates, fmt.Sprintf("%s (%s, %s)", pkg.Name, existing.Path, pkg.Path))
			continue
		}
		packages[pkg.Name] = pkg
		log.Debug().Str("name", pkg.Name).Str("version", pkg.Version).Msg("discovered project")
	}

	if len(duplicates) > 0 {
		return nil, fmt.Errorf("found duplicate packages: %s", strings.Join(duplicates, "; "))
	}
	return packages, nil
}
