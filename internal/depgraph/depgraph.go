// Package depgraph builds the inter-project dependency graph and orders it
// topologically so manifests are rewritten dependencies-first.
package depgraph

import (
	"fmt"
	"sort"

	"github.com/parnell/pi-haiku/internal/manifest"
)

// Build returns an adjacency map from package name to its declared
// dependency names. All declared dependencies are included; callers filter
// the sorted order down to known packages.
func Build(packages map[string]*manifest.Package) map[string][]string {
	dag := make(map[string][]string, len(packages))
	for name, pkg := range packages {
		dag[name] = pkg.DependencyNames()
	}
	return dag
}

// TopoSort returns the nodes of dag in topological order, dependencies
// before dependents. Nodes referenced as dependencies but absent from the
// map are treated as having none of their own. Ties break lexicographically
// so the order is deterministic. A cycle is an error.
func TopoSort(dag map[string][]string) ([]string, error) {
	remaining := make(map[string]map[string]bool)
	addNode := func(name string) {
		if _, ok := remaining[name]; !ok {
			remaining[name] = make(map[string]bool)
		}
	}
	for name, deps := range dag {
		addNode(name)
		for _, dep := range deps {
			addNode(dep)
			remaining[name][dep] = true
		}
	}

	order := make([]string, 0, len(remaining))
	for len(remaining) > 0 {
		var ready []string
		for name, deps := range remaining {
			if len(deps) == 0 {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			return nil, fmt.Errorf("dependency cycle detected involving %s", anyNode(remaining))
		}
		sort.Strings(ready)

		for _, name := range ready {
			order = append(order, name)
			delete(remaining, name)
			for _, deps := range remaining {
				delete(deps, name)
			}
		}
	}
	return order, nil
}

// anyNode returns a deterministic representative from the remaining set,
// used in cycle error messages.
func anyNode(remaining map[string]map[string]bool) string {
	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}
