package haiku

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parnell/pi-haiku/internal/depgraph"
	"github.com/parnell/pi-haiku/internal/manifest"
	"github.com/parnell/pi-haiku/internal/project"
	"github.com/parnell/pi-haiku/internal/pyenv"
	"github.com/parnell/pi-haiku/internal/rewrite"
)

// Direction selects which dependency form manifests are converted to.
type Direction string

const (
	ToLocal  Direction = "local"
	ToRemote Direction = "remote"
)

// Options controls a whole-tree conversion.
type Options struct {
	// Exclude skips the named projects entirely.
	Exclude []string
	// Include, when non-empty, restricts conversion to the named projects.
	Include []string
	// OnlyChange, when non-empty, restricts which dependency names may be
	// rewritten inside each manifest.
	OnlyChange []string

	// DryRun computes and reports changes without writing.
	DryRun bool
	// Verbose prints each project and its line changes.
	Verbose bool
	// Update runs poetry update in each changed project after a remote
	// conversion.
	Update bool

	BackupDir string
	Sort      bool

	// Discovery passes through to project discovery.
	Discovery project.Options

	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer
}

// ProjectChanges pairs a project with the line changes applied to it.
type ProjectChanges struct {
	Package *manifest.Package
	Changes []rewrite.Change
}

// ConvertAll discovers every project under dir and converts each manifest in
// topological order, dependencies first. Results keep that order and include
// projects with no changes.
func ConvertAll(ctx context.Context, dir string, direction Direction, opts Options) ([]ProjectChanges, error) {
	packages, err := project.Load(dir, opts.Discovery)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return nil, fmt.Errorf("no poetry projects found under %s", dir)
	}

	dag := depgraph.Build(packages)
	order, err := depgraph.TopoSort(dag)
	if err != nil {
		return nil, err
	}

	targets := targetPackages(packages, opts.OnlyChange)
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	shouldPrint := opts.Verbose || opts.DryRun

	exclude := toSet(opts.Exclude)
	include := toSet(opts.Include)

	var results []ProjectChanges
	for _, name := range order {
		pkg, ok := packages[name]
		if !ok {
			continue // external dependency, not part of the tree
		}
		if exclude[name] {
			continue
		}
		if len(include) > 0 && !include[name] {
			continue
		}

		if shouldPrint {
			fmt.Fprintf(out, " =============== %s =============== \n", pkg)
		}

		rw := rewrite.ForPackage(pkg, packages)
		rwOpts := rewrite.Options{
			Packages:  targets,
			InPlace:   !opts.DryRun,
			DryRun:    opts.DryRun,
			BackupDir: opts.BackupDir,
			Sort:      opts.Sort,
		}

		var changes []rewrite.Change
		switch direction {
		case ToLocal:
			changes, err = rw.ConvertToLocal(rwOpts)
		case ToRemote:
			changes, err = rw.ConvertToRemote(rwOpts)
		default:
			return nil, fmt.Errorf("unknown direction %q", direction)
		}
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", name, err)
		}

		if shouldPrint {
			for _, c := range changes {
				fmt.Fprintf(out, "%s  ->  %s\n", strings.TrimSpace(c.Old), strings.TrimSpace(c.New))
			}
		}

		results = append(results, ProjectChanges{Package: pkg, Changes: changes})

		if opts.Update && direction == ToRemote && !opts.DryRun && len(changes) > 0 {
			helper := pyenv.NewHelper(pkg)
			helper.Out = out
			if _, _, err := helper.Update(ctx); err != nil {
				log.Warn().Err(err).Str("package", name).Msg("poetry update failed")
			}
		}
	}

	return results, nil
}

// targetPackages returns the packages whose dependency entries may be
// rewritten, honoring an OnlyChange restriction.
func targetPackages(packages map[string]*manifest.Package, onlyChange []string) []*manifest.Package {
	only := toSet(onlyChange)
	var targets []*manifest.Package
	for name, pkg := range packages {
		if len(only) > 0 && !only[name] {
			continue
		}
		targets = append(targets, pkg)
	}
	return targets
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
